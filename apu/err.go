package apu

import (
	"errors"

	"github.com/DHKold/konsolid8-Studio/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrConfigSamplingRatio = errors.New(f("sampling ratio must be positive"))
	ErrConfigMixerMode     = errors.New(f("mixer mode unknown"))
	ErrConfigAmplitude     = errors.New(f("amplitude bounds invalid"))

	// Runtime errors
	ErrChannelIndex = errors.New(f("channel index out of range"))
)
