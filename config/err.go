package config

import (
	"errors"

	"github.com/DHKold/konsolid8-Studio/translate"
)

var f = translate.From

var (
	ErrUnknownKey    = errors.New(f("unknown configuration key"))
	ErrSampleRate    = errors.New(f("sample rate must be positive"))
	ErrCycles        = errors.New(f("cycle count must not be negative"))
	ErrOutputFormat  = errors.New(f("output format unknown"))
	ErrSamplingRatio = errors.New(f("sampling ratio must be at least 1"))
	ErrMixerMode     = errors.New(f("mixer mode must be 0 or 1"))
)
