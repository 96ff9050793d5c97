package quantize

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoOnsets means there is nothing to seed a tempo hypothesis from.
var ErrNoOnsets = errors.New("no onsets to quantize")

// ArithmeticError is returned instead of letting NaN or Inf leak into rhythm
// values, e.g. for a zero unit duration or a non-positive fitted beat length.
type ArithmeticError struct {
	Op    string
	Value float64
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s: invalid value %v", e.Op, e.Value)
}

// DesyncError reports a measure window that caught no onsets, which means the
// beat model has drifted away from the performance.
type DesyncError struct {
	Measure   int
	Tempo     float64
	Offset    float64
	Cutoff    float64
	Remaining int
	NextOnset float64
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf(
		"measure %d is empty (tempo %.3f bpm, offset %.3fs, cutoff %.3fs): next onset at %.3fs, %d onsets left",
		e.Measure, e.Tempo, e.Offset, e.Cutoff, e.NextOnset, e.Remaining,
	)
}

type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
