package quantize

import (
	"math"
	"strings"

	"github.com/jsphweid/pianoscribe/model"
)

type Mode string

const (
	ModeStatic  Mode = "static"
	ModeDynamic Mode = "dynamic"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStatic, "":
		return ModeStatic, nil
	case ModeDynamic:
		return ModeDynamic, nil
	}
	return "", &ConfigError{Field: "mode", Value: s, Reason: "expected static or dynamic"}
}

type Config struct {
	Mode Mode

	// static
	Clusters int
	Seed     int64
	// Value appended for the last note, which has no following onset.
	Terminator model.RhythmValue

	// dynamic
	TempoGuess      float64
	BeatsPerMeasure int
	// log2 of the subdivisions per beat: 0 quarters, 1 eighths, 2 sixteenths
	Tolerance int
	Alpha     float64 // data fit
	Beta      float64 // tempo change penalty
	Gamma     float64 // offset change penalty
	// Measures with fewer onsets keep the current tempo and offset.
	MinRefitOnsets int
	// nil means MeasureBoundary
	Boundary BoundaryFunc

	// Onsets closer than this are merged into one. 0 disables merging.
	ChordWindow float64
}

func DefaultConfig() Config {
	return Config{
		Mode:            ModeStatic,
		Clusters:        4,
		Seed:            0,
		Terminator:      2,
		TempoGuess:      120,
		BeatsPerMeasure: 4,
		Tolerance:       1,
		Alpha:           1,
		Beta:            1,
		Gamma:           1,
		MinRefitOnsets:  2,
	}
}

const maxTolerance = 8

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	switch {
	case c.Clusters <= 0:
		return &ConfigError{Field: "clusters", Value: c.Clusters, Reason: "must be positive"}
	case c.Terminator < 0:
		return &ConfigError{Field: "terminator", Value: c.Terminator, Reason: "must not be negative"}
	case !finite(c.TempoGuess) || c.TempoGuess <= 0:
		return &ConfigError{Field: "tempo", Value: c.TempoGuess, Reason: "must be positive"}
	case c.BeatsPerMeasure <= 0:
		return &ConfigError{Field: "beats per measure", Value: c.BeatsPerMeasure, Reason: "must be positive"}
	case c.Tolerance < 0 || c.Tolerance > maxTolerance:
		return &ConfigError{Field: "tolerance", Value: c.Tolerance, Reason: "must be between 0 and 8"}
	case c.MinRefitOnsets < 0:
		return &ConfigError{Field: "min refit onsets", Value: c.MinRefitOnsets, Reason: "must not be negative"}
	case !finite(c.ChordWindow) || c.ChordWindow < 0:
		return &ConfigError{Field: "chord window", Value: c.ChordWindow, Reason: "must not be negative"}
	}
	weights := []struct {
		name  string
		value float64
	}{{"alpha", c.Alpha}, {"beta", c.Beta}, {"gamma", c.Gamma}}
	for _, w := range weights {
		if !finite(w.value) || w.value < 0 {
			return &ConfigError{Field: w.name, Value: w.value, Reason: "must not be negative"}
		}
	}
	return nil
}
