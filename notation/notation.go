// Package notation maps rhythm values to LilyPond durations and renders a
// quantized single-line melody as a LilyPond document.
package notation

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/pitch"
	"github.com/jsphweid/pianoscribe/util"
	"github.com/pkg/errors"
)

// Durations in LilyPond syntax keyed by eighth counts. 0 has no symbol: the
// note is dropped.
var RhythmMap = map[model.RhythmValue]string{
	0:  "",
	1:  "8",
	2:  "4",
	3:  "4.",
	4:  "2",
	6:  "2.",
	8:  "1",
	12: "1.",
}

type UnmappedRhythmError struct {
	Index int
	Value model.RhythmValue
}

func (e *UnmappedRhythmError) Error() string {
	return fmt.Sprintf("rhythm value %d at note %d has no notation symbol, expected one of %v", e.Value, e.Index, util.GetKeys(RhythmMap))
}

func Symbol(v model.RhythmValue) (string, bool) {
	s, ok := RhythmMap[v]
	return s, ok
}

// lilyLetter converts a letter name from the pitch table to LilyPond's
// english note names ("Bb" -> "bf").
func lilyLetter(letter string) string {
	l := strings.ToLower(letter)
	if len(l) == 2 && l[1] == 'b' {
		return l[:1] + "f"
	}
	return l
}

// Melody renders one token per note, skipping zero-length notes. Without
// pitches every note is written as a "c".
func Melody(pitches []uint8, values []model.RhythmValue) (string, error) {
	if pitches == nil {
		return Chords(nil, values)
	}
	chords := make([][]uint8, len(pitches))
	for i := range pitches {
		chords[i] = pitches[i : i+1]
	}
	return Chords(chords, values)
}

func chordToken(pitches []uint8) (string, error) {
	letters := make([]string, len(pitches))
	for i, p := range pitches {
		n, err := pitch.ToName(int(p))
		if err != nil {
			return "", err
		}
		letters[i] = lilyLetter(n.Letter)
	}
	if len(letters) == 1 {
		return letters[0], nil
	}
	return "<" + strings.Join(letters, " ") + ">", nil
}

// Chords is Melody for chords: a chord with several pitches is written as
// <c e g>. A nil chords slice writes every onset as a "c".
func Chords(chords [][]uint8, values []model.RhythmValue) (string, error) {
	if chords != nil && len(chords) != len(values) {
		return "", errors.Errorf("got %d chords for %d rhythm values", len(chords), len(values))
	}
	var tokens []string
	for i, v := range values {
		sym, ok := Symbol(v)
		if !ok {
			return "", &UnmappedRhythmError{Index: i, Value: v}
		}
		if sym == "" {
			continue
		}
		token := "c"
		if chords != nil && len(chords[i]) > 0 {
			var err error
			if token, err = chordToken(chords[i]); err != nil {
				return "", err
			}
		}
		tokens = append(tokens, token+sym)
	}
	return strings.Join(tokens, " "), nil
}

var document = template.Must(template.New("ly").Parse(`\version "2.16.2"
\language "english"

notes = \relative c' {
{{ .Notes }}
\bar "|."
}

\score {
  \new PianoStaff <<
    \new Staff = "upper" {
      \clef treble
      \notes
    }
  >>
  \layout {
    #(layout-set-staff-size 25.2)
    \context {
      \Score
      \override SpacingSpanner
        #'base-shortest-duration = #(ly:make-moment 1 16)
    }
  }
}
`))

// LilyPond renders a whole document. chords may be nil, see Chords.
func LilyPond(chords [][]uint8, values []model.RhythmValue) (string, error) {
	melody, err := Chords(chords, values)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := document.Execute(&b, struct{ Notes string }{melody}); err != nil {
		return "", err
	}
	return b.String(), nil
}
