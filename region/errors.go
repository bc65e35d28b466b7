package region

import "github.com/pkg/errors"

var (
	// ErrOutOfMemory is returned when a buffer has fewer bytes left than
	// were requested. The buffer is left untouched.
	ErrOutOfMemory = errors.New("region: out of memory")

	// ErrReservation is returned when the operating system refuses to
	// reserve a span.
	ErrReservation = errors.New("region: reservation failed")

	// ErrInvalidSize is returned when a zero-byte reservation is requested.
	ErrInvalidSize = errors.New("region: invalid reservation size")

	// ErrNotOwner is returned by Release on a sub-region.
	ErrNotOwner = errors.New("region: buffer does not own its span")
)

const (
	msgNilBuffer = "region: nil buffer"
)
