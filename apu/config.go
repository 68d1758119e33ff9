package apu

import (
	"errors"
)

// MixerMode selects how channel samples are combined.
type MixerMode int

const (
	MIXER_SUM     = MixerMode(0) // sum
	MIXER_AVERAGE = MixerMode(1) // average
)

func (mode MixerMode) String() string {
	switch mode {
	case MIXER_SUM:
		return "sum"
	case MIXER_AVERAGE:
		return "average"
	}
	return f("MixerMode(%d)", int(mode))
}

// Valid returns true for a known mixer mode.
func (mode MixerMode) Valid() bool {
	return mode == MIXER_SUM || mode == MIXER_AVERAGE
}

// Default configuration values.
const (
	SAMPLING_RATIO = 16
	AMPLITUDE_MIN  = 0
	AMPLITUDE_MAX  = 255
	AMPLITUDE_MID  = 128
)

// Config holds the constants of an APU instance.
type Config struct {
	SamplingRatio int       // Instruction ticks per emitted sample.
	MixerMode     MixerMode // Initial mixer mode.
	AmplitudeMin  int       // Lowest amplitude and sample value.
	AmplitudeMax  int       // Highest amplitude and sample value.
	AmplitudeMid  int       // Neutral sample value of a disabled channel.
}

// DefaultConfig returns the KAPU8 reference configuration.
func DefaultConfig() Config {
	return Config{
		SamplingRatio: SAMPLING_RATIO,
		MixerMode:     MIXER_SUM,
		AmplitudeMin:  AMPLITUDE_MIN,
		AmplitudeMax:  AMPLITUDE_MAX,
		AmplitudeMid:  AMPLITUDE_MID,
	}
}

// Validate checks the configuration for consistency.
func (cfg Config) Validate() (err error) {
	if cfg.SamplingRatio < 1 {
		err = errors.Join(err, ErrConfigSamplingRatio)
	}
	if !cfg.MixerMode.Valid() {
		err = errors.Join(err, ErrConfigMixerMode)
	}
	if cfg.AmplitudeMin < 0 || cfg.AmplitudeMax > 255 ||
		cfg.AmplitudeMin > cfg.AmplitudeMid || cfg.AmplitudeMid > cfg.AmplitudeMax {
		err = errors.Join(err, ErrConfigAmplitude)
	}
	return
}

// clamp limits an amplitude to the configured bounds.
func (cfg *Config) clamp(value int) uint8 {
	return uint8(min(max(value, cfg.AmplitudeMin), cfg.AmplitudeMax))
}
