package runengine

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmer mistakes — bad run IDs, calling an
// operation from a status that doesn't permit it. Callers match these
// with errors.Is; an executor failure is never reported this way, it
// is recorded on the Run itself and emitted as run:failed.
var (
	ErrRunNotFound   = errors.New("runengine: run not found")
	ErrInvalidStatus = errors.New("runengine: invalid status for this operation")
)

func errRunNotFound(runID string) error {
	return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
}

func errInvalidStatus(runID string, got Status, want Status) error {
	return fmt.Errorf("%w: run %s is %s, want %s", ErrInvalidStatus, runID, got, want)
}
