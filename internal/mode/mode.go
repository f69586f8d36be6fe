// Package mode decides whether a run wipes the drive or updates it in
// place.
package mode

import (
	"errors"
	"fmt"

	"multistick/internal/blockdev"
)

// OperationMode is the resolved decision for one run. It is computed once
// and immutable afterwards.
type OperationMode int

const (
	// Wipe re-provisions the drive destructively.
	Wipe OperationMode = iota
	// Update resyncs payloads and regenerates the menu without
	// repartitioning.
	Update
)

// String returns the mode name.
func (m OperationMode) String() string {
	if m == Update {
		return "update"
	}
	return "wipe"
}

// Preference is the user's requested mode before resolution.
type Preference string

const (
	PrefAuto   Preference = "auto"
	PrefWipe   Preference = "wipe"
	PrefUpdate Preference = "update"
)

// ParsePreference validates a --mode flag value.
func ParsePreference(s string) (Preference, error) {
	switch Preference(s) {
	case PrefAuto, PrefWipe, PrefUpdate:
		return Preference(s), nil
	}
	return "", fmt.Errorf("invalid mode %q (use auto, wipe, or update)", s)
}

// ErrAborted reports that the user declined to choose a mode.
var ErrAborted = errors.New("aborted")

// Chooser asks a human to pick between updating and wiping a provisioned
// drive. Implementations return Update or Wipe, or an error wrapping
// ErrAborted when the user backs out.
type Chooser interface {
	ChooseMode(device string) (OperationMode, error)
}

// Resolve turns the probed layout state and the user's intent into the
// operating mode for this run.
//
// An explicit wipe/update preference always wins. On a fresh drive auto
// means wipe, the only sane choice. On a provisioned drive auto defers to
// the human via chooser, except under automation (assumeYes), which must
// never take the destructive path on its own and therefore resolves to
// update.
func Resolve(device string, state blockdev.LayoutState, pref Preference, assumeYes bool, chooser Chooser) (OperationMode, error) {
	switch pref {
	case PrefWipe:
		return Wipe, nil
	case PrefUpdate:
		return Update, nil
	}

	if state == blockdev.Fresh {
		return Wipe, nil
	}
	if assumeYes {
		return Update, nil
	}
	if chooser == nil {
		return Update, fmt.Errorf("%w: no interactive chooser available", ErrAborted)
	}
	return chooser.ChooseMode(device)
}
