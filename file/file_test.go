package file

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativeName(t *testing.T) {
	assert := assert.New(t)
	root := filepath.Join("media", "piano")
	assert.Equal("chopin/op28.mid", RelativeName(root, filepath.Join(root, "chopin", "op28.mid")))
	assert.Equal("elsewhere/a.mid", RelativeName(root, filepath.Join("elsewhere", "a.mid")))
}

func TestOutputName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("chopin__op28.json", OutputName("chopin/op28.mid"))
	assert.Equal("take1.json", OutputName("take1.wav"))
}

func TestCreateOutputNameMap(t *testing.T) {
	root := "media"
	paths := []string{filepath.Join(root, "a.mid"), filepath.Join(root, "b", "c.midi")}
	assert.Equal(t, map[string]string{
		paths[0]: "a.json",
		paths[1]: "b__c.json",
	}, CreateOutputNameMap(root, paths))
}
