// Package sample renders note onsets back into a standard MIDI file, for
// listening to a performance or producing fixtures.
package sample

import (
	"io"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/pianoscribe/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter  = 960
	defaultPitch     = 60
	defaultVelocity  = 80
	maxNoteLenQuarts = 1
)

type event struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// Create writes every note into one track at a fixed tempo. Each note lasts
// until the next onset, at most a quarter. Pitch 0 means unpitched, as for
// audio onsets, and is written as middle C. Velocity 0 gets a medium velocity.
func Create(notes model.Notes, bpm float64) (*smf.SMF, error) {
	if math.IsNaN(bpm) || math.IsInf(bpm, 0) || bpm <= 0 {
		return nil, errors.Errorf("tempo must be positive, got %v", bpm)
	}
	clock := smf.MetricTicks(ticksPerQuarter)
	sorted := append(model.Notes{}, notes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	toTicks := func(seconds float64) uint32 {
		return uint32(math.Round(math.Max(seconds, 0) * bpm / 60 * ticksPerQuarter))
	}

	var events []event
	for i, n := range sorted {
		start := toTicks(n.Time)
		length := uint32(maxNoteLenQuarts * ticksPerQuarter)
		for j := i + 1; j < len(sorted); j++ {
			if next := toTicks(sorted[j].Time); next > start {
				length = min(length, next-start)
				break
			}
		}
		key, vel := n.Pitch, n.Velocity
		if key == 0 {
			key = defaultPitch
		}
		if vel == 0 {
			vel = defaultVelocity
		}
		events = append(events,
			event{tick: start, msg: midi.NoteOn(0, key, vel)},
			event{tick: start + length, off: true, msg: midi.NoteOff(0, key)},
		)
	}
	// offs before ons so a repeated key is released before it is struck again
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(bpm))
	var last uint32
	for _, e := range events {
		tr.Add(e.tick-last, e.msg)
		last = e.tick
	}
	tr.Close(0)

	res := smf.New()
	res.TimeFormat = clock
	if err := res.Add(tr); err != nil {
		return nil, errors.Wrap(err, "could not add track")
	}
	return res, nil
}

func Write(w io.Writer, notes model.Notes, bpm float64) error {
	s, err := Create(notes, bpm)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return errors.Wrap(err, "could not write midi")
}

func WriteFile(path string, notes model.Notes, bpm float64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %v", path)
	}
	if err := Write(f, notes, bpm); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "could not close %v", path)
}
