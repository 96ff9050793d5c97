package model

// RhythmValue is a duration counted in eighth notes: 1 is an eighth, 2 a
// quarter, 8 a whole note. 0 marks "no note".
type RhythmValue int

type TempoState struct {
	Tempo  float64 // beats per minute
	Offset float64 // seconds
}

// SecondsPerBeat is undefined for a non-positive tempo; callers guard that.
func (s TempoState) SecondsPerBeat() float64 {
	return 60 / s.Tempo
}

type Measure struct {
	Index int
	// Start and Tempo are the hypothesis the positions were snapped under,
	// before the measure's refit.
	Start float64
	Tempo float64
	// Tempo after the refit, used for the following measure.
	FittedTempo float64
	Onsets      []float64
	// Beat positions relative to Start, multiples of 1/2^tolerance.
	Positions []float64
}
