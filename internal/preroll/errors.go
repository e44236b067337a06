package preroll

import (
	"errors"
	"fmt"
)

// Sentinel errors for estimation failures. All of them mean the record's
// pre-roll cannot be computed from the given inputs; none is transient.
var (
	ErrMissingSpliceCommand = errors.New("preroll: record has no splice command")
	ErrOutOfRange           = errors.New("preroll: packet index outside timing table")
	ErrTargetNotFound       = errors.New("preroll: no frame with splice PTS in timing table")
)

// EstimationError records which splice record an estimation failed for.
// It wraps one of the sentinel errors above.
type EstimationError struct {
	PacketIndex int64
	// SpliceTime is the target PTS, or splice.ImmediateSpliceTime. It is
	// zero when the record has no splice command.
	SpliceTime int64
	Err        error
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("%v (packet %d, splice time %d)", e.Err, e.PacketIndex, e.SpliceTime)
}

func (e *EstimationError) Unwrap() error {
	return e.Err
}
