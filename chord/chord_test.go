package chord

import (
	"testing"

	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/onset"
	"github.com/stretchr/testify/assert"
)

var rolled = model.Notes{
	{Time: 1.0, Pitch: 67},
	{Time: 0.0, Pitch: 60},
	{Time: 0.01, Pitch: 64},
	{Time: 0.02, Pitch: 48},
	{Time: 0.5, Pitch: 62},
	{Time: 1.0, Pitch: 55},
}

func TestGroupChainsNearbyNotes(t *testing.T) {
	got := Group(rolled, 0.03)
	assert.Equal(t, []model.Chord{
		{Time: 0, Pitches: []uint8{48, 60, 64}},
		{Time: 0.5, Pitches: []uint8{62}},
		{Time: 1.0, Pitches: []uint8{55, 67}},
	}, got)
}

func TestGroupMatchesMergedOnsets(t *testing.T) {
	for _, window := range []float64{0, 0.005, 0.015, 0.03, 0.6} {
		merged := onset.MergeChords(onset.Sorted(model.NoteTimes(rolled)), window)
		groups := Group(rolled, window)
		if assert.Len(t, groups, len(merged), "window %v", window) {
			for i := range groups {
				assert.Equal(t, merged[i], groups[i].Time)
			}
		}
	}
}

func TestGroupWithoutWindowKeepsEveryNote(t *testing.T) {
	got := Group(rolled, 0)
	assert.Len(t, got, len(rolled))
	assert.Equal(t, []uint8{67}, got[4].Pitches)
}

func TestPitches(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([][]uint8{{48, 60, 64}, {62}, {55, 67}}, Pitches(Group(rolled, 0.03)))
	assert.Nil(Pitches(Group(model.Notes{{Time: 0}, {Time: 1}}, 0)))
}

func TestCreateChordKey(t *testing.T) {
	pitches := []uint8{67, 48, 64}
	assert.Equal(t, "48-64-67", CreateChordKey(pitches))
	// input is not reordered
	assert.Equal(t, []uint8{67, 48, 64}, pitches)
}
