package cmd

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/pianoscribe/audio"
	"github.com/jsphweid/pianoscribe/chord"
	"github.com/jsphweid/pianoscribe/midi"
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/notation"
	"github.com/jsphweid/pianoscribe/quantize"
	"github.com/jsphweid/pianoscribe/util"
	"github.com/pkg/errors"
)

// loadNotes reads note starts from a MIDI file or detects onsets in a WAV
// recording. Detected onsets carry no pitch.
func loadNotes(path string, tempo float64, tolerance int) (model.Notes, error) {
	switch {
	case util.IsMidiPath(path):
		return midi.ReadNotes(path)
	case util.IsWavPath(path):
		sig, err := audio.ReadWavFile(path)
		if err != nil {
			return nil, err
		}
		times := audio.DetectOnsets(sig, audio.MinSeparation(tempo, tolerance))
		notes := make(model.Notes, len(times))
		for i, t := range times {
			notes[i] = model.Note{Time: t}
		}
		return notes, nil
	}
	return nil, errors.Errorf("unsupported file type: %v", filepath.Ext(path))
}

// transcribe quantizes notes and packs the result for output. Notation is
// best effort: values outside the notation table only produce a warning.
func transcribe(source string, notes model.Notes, cfg quantize.Config) (*model.Transcription, error) {
	q, err := quantize.New(cfg)
	if err != nil {
		return nil, err
	}
	q.WithLogger(log.With().Str("source", source).Logger())

	res, err := q.Quantize(model.NoteTimes(notes))
	if err != nil {
		return nil, err
	}

	t := &model.Transcription{
		Id:           uuid.NewString(),
		Source:       source,
		Mode:         string(res.Mode),
		NumOnsets:    res.NumOnsets,
		RhythmValues: res.RhythmValues,
	}
	if res.Dynamic != nil {
		tempos := make([]float64, len(res.Dynamic.Measures))
		for i, m := range res.Dynamic.Measures {
			tempos[i] = m.FittedTempo
			t.Measures = append(t.Measures, model.MeasureResult{
				Index:       m.Index,
				Start:       m.Start,
				Tempo:       m.Tempo,
				FittedTempo: m.FittedTempo,
				Positions:   m.Positions,
			})
		}
		t.MeanTempo = util.Mean(tempos)
	}

	var pitches [][]uint8
	if chords := chord.Group(notes, cfg.ChordWindow); len(chords) == len(res.RhythmValues) {
		pitches = chord.Pitches(chords)
	}
	ly, err := notation.LilyPond(pitches, res.RhythmValues)
	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("skipping notation")
	} else {
		t.LilyPond = ly
	}
	return t, nil
}
