package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHKold/konsolid8-Studio/apu"
)

func writeFile(t *testing.T, path string, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
}

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.NoError(cfg.Validate())
	assert.Equal(705600, cfg.Output.Cycles)
	assert.Equal(FORMAT_SOUND, cfg.Output.Format)
	assert.Equal(apu.DefaultConfig(), cfg.ApuConfig())
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), FILE_NAME)
	writeFile(t, path, `
[apu]
sampling-ratio = 8
mixer-mode = 1

[output]
format = "wav"
`)

	cfg, err := Load(path)
	assert.NoError(err)
	if assert.NotNil(cfg) {
		assert.Equal(path, cfg.Path)
		assert.Equal(8, cfg.Apu.SamplingRatio)
		assert.Equal(FORMAT_WAV, cfg.Output.Format)
		assert.Equal(DEFAULT_SAMPLE_RATE, cfg.Output.SampleRate)

		ac := cfg.ApuConfig()
		assert.Equal(8, ac.SamplingRatio)
		assert.Equal(apu.MIXER_AVERAGE, ac.MixerMode)
		assert.NoError(ac.Validate())
	}
}

func TestLoad_Errors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	table := [...]struct {
		text   string
		expect error
	}{
		{"[apu]\nvolume = 3\n", ErrUnknownKey},
		{"[apu]\nsampling-ratio = 0\n", ErrSamplingRatio},
		{"[apu]\nmixer-mode = 2\n", ErrMixerMode},
		{"[output]\nsample-rate = -1\n", ErrSampleRate},
		{"[output]\ncycles = -1\n", ErrCycles},
		{"[output]\nformat = \"mp3\"\n", ErrOutputFormat},
	}

	for n, entry := range table {
		path := filepath.Join(dir, "bad.toml")
		writeFile(t, path, entry.text)
		cfg, err := Load(path)
		assert.Nil(cfg, "case %d", n)
		assert.ErrorIs(err, entry.expect, "case %d", n)
	}

	writeFile(t, filepath.Join(dir, "broken.toml"), "[apu\n")
	_, err := Load(filepath.Join(dir, "broken.toml"))
	assert.Error(err)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestFindAndLoad(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	writeFile(t, filepath.Join(root, FILE_NAME), "[output]\nsample-rate = 8000\n")

	cfg, err := FindAndLoad(nested)
	assert.NoError(err)
	if assert.NotNil(cfg) {
		assert.Equal(8000, cfg.Output.SampleRate)
		assert.Equal(filepath.Join(root, FILE_NAME), cfg.Path)
	}
}
