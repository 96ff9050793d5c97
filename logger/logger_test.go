package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(zerolog.DebugLevel, New("DEBUG", &bytes.Buffer{}).GetLevel())
	assert.Equal(zerolog.WarnLevel, New("warn", &bytes.Buffer{}).GetLevel())
	assert.Equal(zerolog.InfoLevel, New("chatty", &bytes.Buffer{}).GetLevel())
	assert.Equal(zerolog.InfoLevel, New("", &bytes.Buffer{}).GetLevel())
}

func TestNewWrites(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", &buf)
	l.Debug().Msg("hidden")
	l.Info().Str("file", "a.mid").Msg("processed")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "processed")
	assert.Contains(t, buf.String(), "a.mid")
}
