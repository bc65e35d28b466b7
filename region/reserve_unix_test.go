//go:build unix

package region

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestReserveKeepsErrno(t *testing.T) {
	_, err := reserve(1 << 62)
	assert.ErrorIs(t, err, ErrReservation)

	var errno unix.Errno
	if assert.True(t, errors.As(err, &errno), "no errno in %v", err) {
		assert.NotZero(t, errno)
	}
	assert.Contains(t, err.Error(), "4611686018427387904 bytes")
}
