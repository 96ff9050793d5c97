// Package quantize turns note onset times into rhythm values.
//
// Static mode clusters the gaps between onsets and expresses each gap as a
// multiple of the most common one. Dynamic mode walks the performance a
// measure at a time, snapping onsets to a beat grid and refitting tempo and
// phase after every measure so that rubato does not throw off later measures.
package quantize

import (
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/onset"
	"github.com/rs/zerolog"
)

type Quantizer struct {
	cfg Config
	log zerolog.Logger
}

func New(cfg Config) (*Quantizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeStatic
	}
	if cfg.Boundary == nil {
		cfg.Boundary = MeasureBoundary
	}
	return &Quantizer{cfg: cfg, log: zerolog.Nop()}, nil
}

func (q *Quantizer) WithLogger(l zerolog.Logger) *Quantizer {
	q.log = l
	return q
}

func (q *Quantizer) Config() Config {
	return q.cfg
}

type Result struct {
	Mode         Mode
	NumOnsets    int
	RhythmValues []model.RhythmValue
	// only set in dynamic mode
	Dynamic *DynamicResult
}

func (q *Quantizer) Quantize(onsets []float64) (*Result, error) {
	if q.cfg.Mode == ModeDynamic {
		dr, err := q.Dynamic(onsets)
		if err != nil {
			return nil, err
		}
		return &Result{
			Mode:         ModeDynamic,
			NumOnsets:    dr.NumOnsets(),
			RhythmValues: dr.RhythmValues(q.cfg.Terminator),
			Dynamic:      dr,
		}, nil
	}

	values, err := q.Static(onsets)
	if err != nil {
		return nil, err
	}
	return &Result{
		Mode:         ModeStatic,
		NumOnsets:    len(q.prepare(onsets)),
		RhythmValues: values,
	}, nil
}

// prepare sorts a copy of the onsets and merges chords if configured.
func (q *Quantizer) prepare(onsets []float64) []float64 {
	sorted := onset.Sorted(onsets)
	if q.cfg.ChordWindow > 0 {
		return onset.MergeChords(sorted, q.cfg.ChordWindow)
	}
	return sorted
}
