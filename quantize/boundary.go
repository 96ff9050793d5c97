package quantize

import (
	"math"
	"sort"

	"github.com/jsphweid/pianoscribe/model"
)

// BoundaryFunc returns the time before which the remaining onsets belong to
// the current measure. remaining is sorted and never empty.
type BoundaryFunc func(state model.TempoState, beatsPerMeasure int, remaining []float64) float64

// MeasureBoundary ends the measure a fixed number of beats after its start at
// the current tempo.
func MeasureBoundary(state model.TempoState, beatsPerMeasure int, remaining []float64) float64 {
	return state.Offset + float64(beatsPerMeasure)*state.SecondsPerBeat()
}

// how far, in beats, PitchBoundary looks by default
const DefaultPitchWindow = 0.5

// PitchBoundary moves the nominal bar line onto the lowest note sounding within
// window beats of it, on the assumption that the bass marks the downbeat.
// Without a candidate note the nominal boundary is kept.
func PitchBoundary(notes []model.Note, window float64) BoundaryFunc {
	sorted := append([]model.Note{}, notes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	return func(state model.TempoState, beatsPerMeasure int, remaining []float64) float64 {
		nominal := MeasureBoundary(state, beatsPerMeasure, remaining)
		slack := window * state.SecondsPerBeat()
		lo := math.Max(nominal-slack, remaining[0])
		hi := nominal + slack

		start := sort.Search(len(sorted), func(i int) bool {
			return sorted[i].Time > lo
		})
		best := -1
		for i := start; i < len(sorted) && sorted[i].Time <= hi; i++ {
			if best < 0 || sorted[i].Pitch < sorted[best].Pitch {
				best = i
			}
		}
		if best < 0 {
			return nominal
		}
		return sorted[best].Time
	}
}
