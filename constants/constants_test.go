package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("OUT_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("METADATA_TABLE", "")

	assert := assert.New(t)
	assert.Equal("./out", GetOutDir())
	assert.Equal("8080", GetPort())
	assert.Equal("pianoscribe-metadata", GetMetadataTable())
}

func TestOverrides(t *testing.T) {
	t.Setenv("OUT_PATH", "/tmp/scores")
	t.Setenv("MEDIA_PATH", "/media")
	t.Setenv("LOG_LEVEL", "debug")

	assert := assert.New(t)
	assert.Equal("/tmp/scores", GetOutDir())
	assert.Equal("/media", GetMediaDir())
	assert.Equal("debug", GetLogLevel())
}
