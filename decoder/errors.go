package decoder

import (
	"errors"
	"fmt"

	"github.com/rony4d/go-restaking-clearsign/checksum"
)

var (
	// ErrUnsupportedOperation is returned for an unknown selector or a word the active machine cannot take.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrMalformedField is returned when a numeric or address word has dirty padding.
	ErrMalformedField = errors.New("malformed field")
	// ErrUnexpectedOffset is returned when an offset disagrees with the layout of the call.
	ErrUnexpectedOffset = errors.New("unexpected offset")
	// ErrWithdrawerMismatch is returned when withdrawal elements name different withdrawers.
	ErrWithdrawerMismatch = errors.New("withdrawer mismatch")
	// ErrTokenStrategyMismatch is returned when a token does not belong to its paired strategy.
	ErrTokenStrategyMismatch = errors.New("token does not match strategy")
	// ErrCapacityExceeded is returned when a bounded list would overflow.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrLengthMismatch is returned when a parallel array is longer than the withdrawals array.
	ErrLengthMismatch = errors.New("array length exceeds withdrawals")
	// ErrIncompleteStream is returned when a result is requested before the last word.
	ErrIncompleteStream = errors.New("incomplete parameter stream")
	// ErrContextFailed is returned for any word fed after a failure.
	ErrContextFailed = errors.New("decoding context already failed")

	// ErrChecksumMismatch is returned when an offset table disagrees with the element positions.
	ErrChecksumMismatch = checksum.ErrChecksumMismatch
	// ErrHashPrimitiveFailure is returned when the digest cannot be computed.
	ErrHashPrimitiveFailure = checksum.ErrHashPrimitiveFailure
)

// FieldError locates a decoding failure.
type FieldError struct {
	Op     Kind
	Field  string
	Offset uint32
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %s at offset %d: %v", e.Op, e.Field, e.Offset, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
