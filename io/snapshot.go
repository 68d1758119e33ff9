package io

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/DHKold/konsolid8-Studio/apu"
)

// SNAPSHOT_VERSION is the snapshot layout written by MarshalState.
const SNAPSHOT_VERSION = 1

// Snapshot is the persisted form of an interpreter state.
type Snapshot struct {
	Version int       `cbor:"1,keyasint"`
	State   apu.State `cbor:"2,keyasint"`
}

var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("io: cbor mode: %v", err))
	}
	snapshotEncMode = em
}

// MarshalState encodes an interpreter state as canonical CBOR.
func MarshalState(state apu.State) ([]byte, error) {
	return snapshotEncMode.Marshal(&Snapshot{
		Version: SNAPSHOT_VERSION,
		State:   state,
	})
}

// UnmarshalState decodes an interpreter state written by MarshalState.
func UnmarshalState(data []byte) (state apu.State, err error) {
	var snap Snapshot
	err = cbor.Unmarshal(data, &snap)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSnapshotState, err)
		return
	}

	if snap.Version != SNAPSHOT_VERSION {
		err = fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
		return
	}

	s := &snap.State
	switch {
	case s.Pc < 0, s.WaitCountdown < 0, s.Divider < 0:
		err = fmt.Errorf("%w: negative counter", ErrSnapshotState)
	case s.LoopCountdown < 0, s.LoopLength < 0, s.LoopCommandCountdown < 0, s.LoopAddress < 0:
		err = fmt.Errorf("%w: negative loop field", ErrSnapshotState)
	case !s.MixerMode.Valid():
		err = fmt.Errorf("%w: mixer mode %d", ErrSnapshotState, s.MixerMode)
	}
	if err != nil {
		return
	}

	state = snap.State
	return
}
