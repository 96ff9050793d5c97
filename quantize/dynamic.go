package quantize

import (
	"math"
	"sort"

	"github.com/jsphweid/pianoscribe/model"
	"github.com/pkg/errors"
)

type DynamicResult struct {
	Measures        []model.Measure
	BeatsPerMeasure int
	// state the next measure would have started from
	Final model.TempoState
}

func (r *DynamicResult) Positions() [][]float64 {
	res := make([][]float64, len(r.Measures))
	for i, m := range r.Measures {
		res[i] = m.Positions
	}
	return res
}

func (r *DynamicResult) NumOnsets() int {
	var n int
	for _, m := range r.Measures {
		n += len(m.Onsets)
	}
	return n
}

// RhythmValues turns beat positions into durations in eighth counts, one per
// onset, the last one being terminator. Onsets that snapped onto the same
// grid point get 0.
func (r *DynamicResult) RhythmValues(terminator model.RhythmValue) []model.RhythmValue {
	var beats []float64
	for i, m := range r.Measures {
		for _, p := range m.Positions {
			beats = append(beats, float64(i*r.BeatsPerMeasure)+p)
		}
	}
	res := make([]model.RhythmValue, 0, len(beats))
	for i := 0; i+1 < len(beats); i++ {
		v := model.RhythmValue(math.Round((beats[i+1] - beats[i]) * 2))
		if v < 0 {
			v = 0
		}
		res = append(res, v)
	}
	if len(beats) > 0 {
		res = append(res, terminator)
	}
	return res
}

// NearestNeighbor snaps each onset to the closest grid point under the given
// tempo and offset. Positions are in beats, multiples of 1/2^tolerance.
func NearestNeighbor(onsets []float64, state model.TempoState, tolerance int) []float64 {
	subdivisions := math.Ldexp(1, tolerance)
	block := 60 / (state.Tempo * subdivisions)
	res := make([]float64, len(onsets))
	for i, t := range onsets {
		p := math.Round((t-state.Offset)/block) / subdivisions
		if p == 0 {
			// no negative zero
			p = 0
		}
		res[i] = p
	}
	return res
}

func (q *Quantizer) Dynamic(onsets []float64) (*DynamicResult, error) {
	remaining := q.prepare(onsets)
	if len(remaining) == 0 {
		return nil, ErrNoOnsets
	}

	cfg := q.cfg
	weights := Weights{Alpha: cfg.Alpha, Beta: cfg.Beta, Gamma: cfg.Gamma}
	state := model.TempoState{Tempo: cfg.TempoGuess, Offset: remaining[0]}
	res := &DynamicResult{BeatsPerMeasure: cfg.BeatsPerMeasure}

	for i := 0; len(remaining) > 0; i++ {
		cutoff := cfg.Boundary(state, cfg.BeatsPerMeasure, remaining)
		if !finite(cutoff) {
			return nil, &ArithmeticError{Op: "measure cutoff", Value: cutoff}
		}
		n := sort.SearchFloat64s(remaining, cutoff)
		if n == 0 {
			return nil, &DesyncError{
				Measure:   i,
				Tempo:     state.Tempo,
				Offset:    state.Offset,
				Cutoff:    cutoff,
				Remaining: len(remaining),
				NextOnset: remaining[0],
			}
		}
		batch := remaining[:n:n]
		remaining = remaining[n:]

		m := model.Measure{
			Index:     i,
			Start:     state.Offset,
			Tempo:     state.Tempo,
			Onsets:    batch,
			Positions: NearestNeighbor(batch, state, cfg.Tolerance),
		}

		offset, spb := state.Offset, state.SecondsPerBeat()
		if n >= cfg.MinRefitOnsets {
			var err error
			offset, spb, err = Refit(state, batch, m.Positions, weights)
			if err != nil {
				return nil, errors.Wrapf(err, "measure %d", i)
			}
		}
		state = model.TempoState{
			Tempo:  60 / spb,
			Offset: offset + float64(cfg.BeatsPerMeasure)*spb,
		}
		m.FittedTempo = state.Tempo

		q.log.Debug().
			Int("measure", i).
			Int("onsets", n).
			Float64("tempo", m.Tempo).
			Float64("fitted_tempo", state.Tempo).
			Float64("start", m.Start).
			Float64("next_start", state.Offset).
			Msg("quantized measure")

		res.Measures = append(res.Measures, m)
	}
	res.Final = state
	return res, nil
}
