package model

// Chord is a group of notes struck together, timed by its first note.
type Chord struct {
	Time float64
	// ascending
	Pitches []uint8
}
