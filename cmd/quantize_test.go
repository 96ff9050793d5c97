package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/pianoscribe/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	onsetsArg, asJSON, lilyPondTo = "", false, ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestQuantizeCommandOnsets(t *testing.T) {
	out, err := execute(t, "quantize", "--onsets", "0, 0.5, 1, 1.5, 2")
	require.NoError(t, err)
	assert.Contains(t, out, "rhythm values: [2 2 2 2 2]")
}

func TestQuantizeCommandMidiFileAsJSON(t *testing.T) {
	dir := t.TempDir()
	song := filepath.Join(dir, "song.mid")
	ly := filepath.Join(dir, "song.ly")

	_, err := execute(t, "sample", "--onsets", "0,0.5,1,2", "--tempo", "120", song)
	require.NoError(t, err)

	out, err := execute(t, "quantize", "--json", "--lilypond", ly, song)
	require.NoError(t, err)

	var got model.Transcription
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert := assert.New(t)
	assert.Equal(song, got.Source)
	assert.Equal([]model.RhythmValue{2, 2, 4, 2}, got.RhythmValues)

	buf, err := os.ReadFile(ly)
	require.NoError(t, err)
	assert.Contains(string(buf), "c4 c4 c2 c4")
}

func TestQuantizeCommandNeedsInput(t *testing.T) {
	_, err := execute(t, "quantize")
	assert.Error(t, err)
}

func TestPitchCommand(t *testing.T) {
	out, err := execute(t, "pitch", "60", "A0")
	require.NoError(t, err)
	assert.Equal(t, "60\tC3\n21\tA0\n", out)
}
