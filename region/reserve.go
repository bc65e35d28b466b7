package region

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// reserve obtains size bytes of zero-filled, read-write memory from the
// operating system.
func reserve(size uint64) ([]byte, error) {
	if size == 0 {
		return nil, ErrInvalidSize
	}
	if size > math.MaxInt {
		return nil, errors.Wrapf(ErrReservation, "%d bytes exceeds the addressable range", size)
	}
	mem, err := mmap(int(size))
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %w", ErrReservation, size, err)
	}
	return mem, nil
}

// release gives a span obtained from reserve back to the operating system.
// It must be passed the exact slice reserve returned.
func release(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := munmap(mem); err != nil {
		return errors.Wrap(err, "region: release")
	}
	return nil
}
