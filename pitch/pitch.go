// Package pitch converts between MIDI pitch numbers and letter-name/octave
// pairs. Octaves are counted from A: pitch 21 is A0, pitch 24 is C0 and
// pitch 33 is A1.
package pitch

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinPitch = 0
	MaxPitch = 127

	// Reference pitch for letter index 0, octave 0.
	Offset = 21
)

var LetterNames = [12]string{"A", "Bb", "B", "C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab"}

var sharpNames = [12]string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"}

type DomainError struct {
	Pitch int
	Name  string
}

func (e *DomainError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("pitch name %q is outside MIDI range %d-%d", e.Name, MinPitch, MaxPitch)
	}
	return fmt.Sprintf("pitch %d is outside MIDI range %d-%d", e.Pitch, MinPitch, MaxPitch)
}

type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("could not parse pitch name %q", e.Name)
}

type Name struct {
	Letter string
	Octave int
}

func (n Name) String() string {
	return n.Letter + strconv.Itoa(n.Octave)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func ToName(p int) (Name, error) {
	if p < MinPitch || p > MaxPitch {
		return Name{}, &DomainError{Pitch: p}
	}
	octave := floorDiv(p-Offset, 12)
	return Name{
		Letter: LetterNames[p-Offset-octave*12],
		Octave: octave,
	}, nil
}

func letterIndex(letter string) (int, bool) {
	for i := range LetterNames {
		if strings.EqualFold(letter, LetterNames[i]) || strings.EqualFold(letter, sharpNames[i]) {
			return i, true
		}
	}
	return 0, false
}

func FromName(n Name) (int, error) {
	idx, ok := letterIndex(n.Letter)
	if !ok {
		return 0, &NameError{Name: n.String()}
	}
	p := Offset + n.Octave*12 + idx
	if p < MinPitch || p > MaxPitch {
		return 0, &DomainError{Pitch: p, Name: n.String()}
	}
	return p, nil
}

// Parse reads names like "C4", "bb3", "F#2" or "ab-1".
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	split := strings.IndexFunc(s, func(r rune) bool {
		return r == '-' || (r >= '0' && r <= '9')
	})
	if split <= 0 {
		return 0, &NameError{Name: s}
	}
	octave, err := strconv.Atoi(s[split:])
	if err != nil {
		return 0, &NameError{Name: s}
	}
	return FromName(Name{Letter: s[:split], Octave: octave})
}
