package model

type QuantizeRequestBody struct {
	Onsets []float64 `json:"onsets"`
	// Pitches are optional. When present they must line up with Onsets and
	// are used for naming notes and for the pitch measure boundary.
	Pitches []uint8 `json:"pitches,omitempty"`
	Mode    string  `json:"mode"`

	Clusters        *int     `json:"clusters,omitempty"`
	Seed            *int64   `json:"seed,omitempty"`
	Terminator      *int     `json:"terminator,omitempty"`
	Tempo           *float64 `json:"tempo,omitempty"`
	BeatsPerMeasure *int     `json:"beats_per_measure,omitempty"`
	Tolerance       *int     `json:"tolerance,omitempty"`
	Alpha           *float64 `json:"alpha,omitempty"`
	Beta            *float64 `json:"beta,omitempty"`
	Gamma           *float64 `json:"gamma,omitempty"`
	MinRefit        *int     `json:"min_refit,omitempty"`
	ChordWindow     *float64 `json:"chord_window,omitempty"`
	PitchBoundary   bool     `json:"pitch_boundary,omitempty"`
	PitchWindow     *float64 `json:"pitch_window,omitempty"`
}

type MeasureResult struct {
	Index       int       `json:"index"`
	Start       float64   `json:"start"`
	Tempo       float64   `json:"tempo"`
	FittedTempo float64   `json:"fitted_tempo"`
	Positions   []float64 `json:"positions"`
}

type Transcription struct {
	Id           string          `json:"id"`
	Source       string          `json:"source,omitempty"`
	Mode         string          `json:"mode"`
	NumOnsets    int             `json:"num_onsets"`
	RhythmValues []RhythmValue   `json:"rhythm_values"`
	Measures     []MeasureResult `json:"measures,omitempty"`
	// average fitted tempo over all measures, dynamic mode only
	MeanTempo    float64         `json:"mean_tempo,omitempty"`
	LilyPond     string          `json:"lilypond,omitempty"`
	Metadata     *PieceMetadata  `json:"metadata,omitempty"`
}

type PitchResponse struct {
	Pitch  int    `json:"pitch"`
	Letter string `json:"letter"`
	Octave int    `json:"octave"`
	Name   string `json:"name"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
