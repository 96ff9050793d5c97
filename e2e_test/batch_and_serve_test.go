//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/pianoscribe/batch"
	"github.com/jsphweid/pianoscribe/cmd"
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/quantize"
	"github.com/jsphweid/pianoscribe/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// two bars of quarters and eighths at 100 bpm
func performance() model.Notes {
	beats := []float64{0, 1, 1.5, 2, 3, 4, 5, 5.5, 6, 7}
	pitches := []uint8{48, 64, 65, 67, 64, 48, 62, 64, 65, 62}
	notes := make(model.Notes, len(beats))
	for i, b := range beats {
		notes[i] = model.Note{Time: b * 0.6, Pitch: pitches[i], Velocity: 80}
	}
	return notes
}

func TestBatchE2E(t *testing.T) {
	media := t.TempDir()
	out := t.TempDir()
	require.NoError(t, sample.WriteFile(filepath.Join(media, "etude.mid"), performance(), 100))

	summary, err := cmd.Batch(batch.Options{MediaDir: media, OutDir: out}, quantize.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)

	buf, err := os.ReadFile(filepath.Join(out, "etude.json"))
	require.NoError(t, err)
	var got model.Transcription
	require.NoError(t, json.Unmarshal(buf, &got))

	assert := assert.New(t)
	assert.Equal("etude.mid", got.Source)
	assert.Equal([]model.RhythmValue{2, 1, 1, 2, 2, 2, 1, 1, 2, 2}, got.RhythmValues)
	assert.Contains(got.LilyPond, "c4 e8 f8 g4 e4")
}

func TestQuantizeHandlerE2E(t *testing.T) {
	notes := performance()
	body := model.QuantizeRequestBody{Mode: "dynamic"}
	tempo := 100.0
	body.Tempo = &tempo
	for _, n := range notes {
		body.Onsets = append(body.Onsets, n.Time)
		body.Pitches = append(body.Pitches, n.Pitch)
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/quantize", bytes.NewReader(data))
	w := httptest.NewRecorder()
	cmd.HandleQuantize(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var got model.Transcription
	require.NoError(t, json.Unmarshal(respBody, &got))
	assert.Equal(len(notes), got.NumOnsets)
	require.NotEmpty(t, got.Measures)
	assert.Equal([]float64{0, 1, 1.5, 2, 3}, got.Measures[0].Positions)
}
