package model

type Note struct {
	Time     float64 // seconds
	Pitch    uint8
	Velocity uint8
}

type Notes = []Note

func NoteTimes(notes Notes) []float64 {
	res := make([]float64, len(notes))
	for i, n := range notes {
		res[i] = n.Time
	}
	return res
}

type PieceMetadata struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Release string `json:"release"`
	Year    uint   `json:"year,omitempty"`
}
