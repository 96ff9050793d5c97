// Package audio finds note onsets in a WAV recording. The signal's power
// envelope is differentiated and the peaks of that derivative, the moments
// where loudness rises fastest, are reported as onsets.
package audio

import (
	"io"
	"math"
	"os"
	"sort"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// envelope window in seconds; windows overlap by half
	Window = 0.05
	// peaks must rise this fraction of the way from the smallest to the
	// largest derivative value
	PeakThreshold = 0.3
)

var ErrInvalidWav = errors.New("not a valid wav file")

type Signal struct {
	SampleRate int
	Samples    []float64
}

func ReadWavFile(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open wav file")
	}
	defer f.Close()
	return ReadWav(f)
}

// ReadWav decodes the first channel of a PCM wav stream.
func ReadWav(r io.ReadSeeker) (*Signal, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrInvalidWav
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "could not decode wav file")
	}
	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}
	samples := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		samples = append(samples, float64(buf.Data[i]))
	}
	return &Signal{SampleRate: int(d.SampleRate), Samples: samples}, nil
}

// MinSeparation is the shortest gap expected between onsets for a tempo guess
// and rhythmic tolerance, allowing 20% early playing.
func MinSeparation(tempo float64, tolerance int) float64 {
	return 1 / (tempo / 60 * math.Ldexp(1, tolerance)) * 0.8
}

// PowerEnvelope returns the envelope's frame rate and the standard deviation
// of each window.
func PowerEnvelope(sig *Signal) (float64, []float64) {
	window := int(float64(sig.SampleRate) * Window)
	stride := window / 2
	if window < 2 || stride < 1 || len(sig.Samples) < window {
		return 0, nil
	}
	n := (len(sig.Samples)-window)/stride + 1
	env := make([]float64, n)
	for i := range env {
		env[i] = stat.StdDev(sig.Samples[i*stride:i*stride+window], nil)
	}
	return float64(sig.SampleRate) / float64(stride), env
}

func derivative(rate float64, data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	res := make([]float64, len(data)-1)
	for i := range res {
		res[i] = (data[i+1] - data[i]) * rate
	}
	return res
}

// peaks returns the indices of local maxima above the relative threshold,
// keeping the highest peak when two are closer than minDist.
func peaks(data []float64, threshold float64, minDist int) []int {
	if len(data) < 3 {
		return nil
	}
	lo, hi := floats.Min(data), floats.Max(data)
	if hi == lo {
		return nil
	}
	cut := lo + threshold*(hi-lo)

	var candidates []int
	for i := 1; i < len(data)-1; i++ {
		if data[i] > data[i-1] && data[i] >= data[i+1] && data[i] >= cut {
			candidates = append(candidates, i)
		}
	}
	if minDist <= 1 {
		return candidates
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return data[candidates[a]] > data[candidates[b]]
	})
	var kept []int
	for _, c := range candidates {
		ok := true
		for _, k := range kept {
			if abs(c-k) < minDist {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, c)
		}
	}
	sort.Ints(kept)
	return kept
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// DetectOnsets returns onset times in seconds, ascending.
func DetectOnsets(sig *Signal, minSeparation float64) []float64 {
	rate, env := PowerEnvelope(sig)
	d := derivative(rate, env)
	minDist := int(minSeparation * rate)

	idx := peaks(d, PeakThreshold, minDist)
	res := make([]float64, len(idx))
	for i, v := range idx {
		res[i] = float64(v) / rate
	}
	return res
}
