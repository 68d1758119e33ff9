package io

import (
	"errors"

	"github.com/DHKold/konsolid8-Studio/translate"
)

var f = translate.From

var (
	// Sink errors
	ErrSinkClosed = errors.New(f("sink closed"))
	ErrSampleRate = errors.New(f("sample rate must be positive"))

	// Snapshot errors
	ErrSnapshotVersion = errors.New(f("snapshot version unsupported"))
	ErrSnapshotState   = errors.New(f("snapshot state invalid"))
)
