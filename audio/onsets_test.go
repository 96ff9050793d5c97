package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRate = 8000

// decaying 440 Hz tones starting at each onset, left to ring under the next
func synth(onsets []float64, length float64) []int {
	data := make([]int, int(length*sampleRate))
	for i := range data {
		t := float64(i) / sampleRate
		var v float64
		for _, o := range onsets {
			if t >= o {
				v += 12000 * math.Exp(-(t-o)/0.3) * math.Sin(2*math.Pi*440*(t-o))
			}
		}
		data[i] = int(v)
	}
	return data
}

func writeWav(t *testing.T, data []int, channels int) string {
	path := filepath.Join(t.TempDir(), "take.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	return path
}

func TestDetectOnsetsFindsEachNote(t *testing.T) {
	want := []float64{0.3, 0.8, 1.3, 1.8}
	sig, err := ReadWavFile(writeWav(t, synth(want, 2.5), 1))
	require.NoError(t, err)
	assert.Equal(t, sampleRate, sig.SampleRate)

	got := DetectOnsets(sig, MinSeparation(120, 1))
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 0.06)
	}
}

func TestReadWavKeepsFirstChannel(t *testing.T) {
	mono := synth([]float64{0.1}, 0.5)
	stereo := make([]int, 0, 2*len(mono))
	for _, v := range mono {
		stereo = append(stereo, v, 0)
	}
	sig, err := ReadWavFile(writeWav(t, stereo, 2))
	require.NoError(t, err)
	require.Len(t, sig.Samples, len(mono))
	assert.Equal(t, float64(mono[1000]), sig.Samples[1000])
}

func TestReadWavRejectsJunk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not riff data"), 0666))
	_, err := ReadWavFile(path)
	assert.Error(t, err)
}

func TestSilenceHasNoOnsets(t *testing.T) {
	sig := &Signal{SampleRate: sampleRate, Samples: make([]float64, sampleRate)}
	assert.Empty(t, DetectOnsets(sig, 0.2))
}

func TestMinSeparation(t *testing.T) {
	assert.InDelta(t, 0.4, MinSeparation(120, 0), 1e-12)
	assert.InDelta(t, 0.2, MinSeparation(120, 1), 1e-12)
}

func TestPeaksSuppressesNeighbours(t *testing.T) {
	data := []float64{0, 5, 0, 4, 0, 0, 0, 6, 0}
	assert.Equal(t, []int{1, 3, 7}, peaks(data, 0.3, 1))
	assert.Equal(t, []int{1, 7}, peaks(data, 0.3, 3))
}
