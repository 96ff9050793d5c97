package onset

import "sort"

// Sorted returns an ascending copy; the input is left alone.
func Sorted(onsets []float64) []float64 {
	res := make([]float64, len(onsets))
	copy(res, onsets)
	sort.Float64s(res)
	return res
}

// Deltas expects sorted onsets. Fewer than two onsets give no deltas.
func Deltas(onsets []float64) []float64 {
	if len(onsets) < 2 {
		return []float64{}
	}
	res := make([]float64, len(onsets)-1)
	for i := range res {
		res[i] = onsets[i+1] - onsets[i]
	}
	return res
}

// MergeChords collapses runs of sorted onsets whose gaps are below window
// into the first onset of the run, so a rolled chord counts as one onset.
// A window <= 0 returns a copy.
func MergeChords(onsets []float64, window float64) []float64 {
	if window <= 0 || len(onsets) == 0 {
		return append([]float64{}, onsets...)
	}
	res := []float64{onsets[0]}
	prev := onsets[0]
	for _, t := range onsets[1:] {
		// compare against the previous onset, not the run start, so a
		// chord is chained note by note
		if t-prev >= window {
			res = append(res, t)
		}
		prev = t
	}
	return res
}
