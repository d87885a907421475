package engine

import (
	"errors"
	"fmt"
)

// ErrSourceMalformed is returned when the dump or a patch file cannot be parsed.
var ErrSourceMalformed = errors.New("source malformed")

// ErrPatchTargetMissing is returned when a patch file names a class or
// property the dump never defined.
var ErrPatchTargetMissing = errors.New("patch target missing")

// ErrProtocolViolation is returned when a probe message cannot be decoded.
var ErrProtocolViolation = errors.New("protocol violation")

// ErrValidationFailed is returned when the merged database breaks an invariant.
var ErrValidationFailed = errors.New("validation failed")

// ErrHostTimeout is returned when the live host does not exit in time.
var ErrHostTimeout = errors.New("live host timed out")

// ErrHostFailed is returned when the live host exits unsuccessfully.
var ErrHostFailed = errors.New("live host failed")

// ProtocolViolationError carries the raw payload that failed to decode.
type ProtocolViolationError struct {
	// Index is the position of the message in the received sequence.
	Index   int
	Payload []byte
	Err     error
}

func (e *ProtocolViolationError) Error() string {
	return fmt.Sprintf("couldn't deserialize message %d: %v\n%s", e.Index, e.Err, e.Payload)
}

func (e *ProtocolViolationError) Unwrap() []error {
	return []error{ErrProtocolViolation, e.Err}
}
