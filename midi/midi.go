package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/pianoscribe/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	return ReadMidi(bytes.NewReader(dat))
}

func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = errors.New(fmt.Sprintf("midi parser panicked: %v", rec))
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

// NoteStarts collects the note-on events (velocity > 0) of every track,
// ordered by time and then pitch.
func NoteStarts(s *smf.SMF) model.Notes {
	var notes model.Notes
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			if event.Message.GetNoteStart(&channel, &key, &velocity) {
				notes = append(notes, model.Note{
					// TimeAt is in microseconds
					Time:     float64(s.TimeAt(absTicks)) / 1e6,
					Pitch:    key,
					Velocity: velocity,
				})
			}
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Time != notes[j].Time {
			return notes[i].Time < notes[j].Time
		}
		return notes[i].Pitch < notes[j].Pitch
	})
	return notes
}

func ReadNotes(filepath string) (model.Notes, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	return NoteStarts(s), nil
}
