package chord

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/pianoscribe/model"
)

// Group gathers notes into chords with the same chaining rule as
// onset.MergeChords, so it yields one chord per merged onset. A window <= 0
// gives one chord per note.
func Group(notes model.Notes, window float64) []model.Chord {
	sorted := append(model.Notes{}, notes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	var res []model.Chord
	var prev float64
	for i, n := range sorted {
		if i == 0 || window <= 0 || n.Time-prev >= window {
			res = append(res, model.Chord{Time: n.Time})
		}
		c := &res[len(res)-1]
		c.Pitches = append(c.Pitches, n.Pitch)
		prev = n.Time
	}
	for i := range res {
		p := res[i].Pitches
		sort.Slice(p, func(a, b int) bool {
			return p[a] < p[b]
		})
	}
	return res
}

// Pitches returns the pitches of every chord, or nil when no note carries a
// pitch.
func Pitches(chords []model.Chord) [][]uint8 {
	res := make([][]uint8, len(chords))
	var pitched bool
	for i, c := range chords {
		res[i] = c.Pitches
		for _, p := range c.Pitches {
			pitched = pitched || p > 0
		}
	}
	if !pitched {
		return nil
	}
	return res
}

// CreateChordKey is a stable text key for a set of pitches, e.g. "48-64-67".
func CreateChordKey(pitches []uint8) string {
	sorted := append([]uint8{}, pitches...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, "-")
}
