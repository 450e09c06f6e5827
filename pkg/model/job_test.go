package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtlasDirectory(t *testing.T) {
	for _, toPin := range []struct {
		atlas    string
		expected string
	}{
		{atlas: "output/packed.atlas", expected: "output"},
		{atlas: filepath.Join("a", "b", "c", "x.atlas"), expected: filepath.Join("a", "b", "c")},
		{atlas: "packed.atlas", expected: "."},
		{atlas: "/abs/packed.atlas", expected: "/abs"},
	} {
		testcase := toPin
		t.Run(testcase.atlas, func(t *testing.T) {
			assert.Equal(t, testcase.expected, UnpackJob{AtlasToUnpack: testcase.atlas}.AtlasDirectory())
		})
	}
}

func TestDefaultJobConfig(t *testing.T) {
	c := DefaultJobConfig()
	assert.Len(t, c.PackingConfigs, 1)
	assert.Empty(t, c.UnpackingConfigs)
	assert.NotNil(t, c.UnpackingConfigs)
	assert.Equal(t, PackJob{Name: "Pack 1", RawDirectory: "input", OutputDirectory: "output", PackName: "packed"}, c.PackingConfigs[0])
}

func TestNormalize(t *testing.T) {
	var c JobConfig
	c.Normalize()
	assert.NotNil(t, c.PackingConfigs)
	assert.NotNil(t, c.UnpackingConfigs)
}
