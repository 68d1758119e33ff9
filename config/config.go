// Package config loads the kapu.toml simulator configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/DHKold/konsolid8-Studio/apu"
)

// FILE_NAME is the configuration file searched by FindAndLoad.
const FILE_NAME = "kapu.toml"

// Output formats.
const (
	FORMAT_WAV   = "wav"
	FORMAT_RAW   = "raw"
	FORMAT_SOUND = "sound"
)

// Formats lists the known output formats.
var Formats = []string{FORMAT_WAV, FORMAT_RAW, FORMAT_SOUND}

// DEFAULT_SAMPLE_RATE is the playback rate, in Hz.
const DEFAULT_SAMPLE_RATE = 44100

// DEFAULT_CYCLES is sixteen seconds of ticks at the default sample rate.
const DEFAULT_CYCLES = DEFAULT_SAMPLE_RATE * 16

// ApuConfig is the [apu] table.
type ApuConfig struct {
	SamplingRatio int `toml:"sampling-ratio"`
	MixerMode     int `toml:"mixer-mode"`
}

// OutputConfig is the [output] table.
type OutputConfig struct {
	SampleRate int    `toml:"sample-rate"`
	Cycles     int    `toml:"cycles"`
	Format     string `toml:"format"`
}

// Config is a complete simulator configuration.
type Config struct {
	Path string `toml:"-"` // File the configuration was read from, if any.

	Apu    ApuConfig    `toml:"apu"`
	Output OutputConfig `toml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Apu: ApuConfig{
			SamplingRatio: apu.SAMPLING_RATIO,
			MixerMode:     int(apu.MIXER_SUM),
		},
		Output: OutputConfig{
			SampleRate: DEFAULT_SAMPLE_RATE,
			Cycles:     DEFAULT_CYCLES,
			Format:     FORMAT_SOUND,
		},
	}
}

// Load reads a configuration file. Missing keys keep their default value,
// unknown keys are rejected.
func Load(path string) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		cfg = nil
		err = fmt.Errorf("%s: %w", path, err)
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		cfg = nil
		err = fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
		err = fmt.Errorf("%s: %w", path, err)
		return
	}

	cfg.Path = path

	return
}

// FindAndLoad walks up from startDir to the first kapu.toml, and loads it.
// It returns nil, and no error, if there is none.
func FindAndLoad(startDir string) (cfg *Config, err error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return
	}

	for {
		path := filepath.Join(dir, FILE_NAME)
		if _, serr := os.Stat(path); serr == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// Validate checks the configuration values.
func (cfg *Config) Validate() (err error) {
	if cfg.Apu.SamplingRatio < 1 {
		err = errors.Join(err, ErrSamplingRatio)
	}
	if !apu.MixerMode(cfg.Apu.MixerMode).Valid() {
		err = errors.Join(err, ErrMixerMode)
	}
	if cfg.Output.SampleRate <= 0 {
		err = errors.Join(err, ErrSampleRate)
	}
	if cfg.Output.Cycles < 0 {
		err = errors.Join(err, ErrCycles)
	}
	if !slices.Contains(Formats, cfg.Output.Format) {
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrOutputFormat, cfg.Output.Format))
	}
	return
}

// ApuConfig returns the interpreter constants of the configuration.
func (cfg *Config) ApuConfig() apu.Config {
	ac := apu.DefaultConfig()
	ac.SamplingRatio = cfg.Apu.SamplingRatio
	ac.MixerMode = apu.MixerMode(cfg.Apu.MixerMode)
	return ac
}
