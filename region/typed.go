package region

import (
	"math/bits"
	"unsafe"
)

// Sizeof returns the number of bytes a T occupies in a region.
func Sizeof[T any]() uint64 {
	var zero T
	return uint64(unsafe.Sizeof(zero))
}

func alignof[T any]() uint64 {
	var zero T
	return uint64(unsafe.Alignof(zero))
}

// Allocate places a zero T in b, aligned for T. Alignment padding is
// taken from b like any other byte.
//
// T must not contain pointers into the Go heap; see the package
// documentation.
func Allocate[T any](b *Buffer) (*T, error) {
	mem, err := b.alloc(Sizeof[T](), alignof[T]())
	if err != nil {
		return nil, err
	}
	if len(mem) == 0 {
		return new(T), nil
	}
	p := (*T)(unsafe.Pointer(unsafe.SliceData(mem)))
	var zero T
	*p = zero
	return p, nil
}

// AllocateSlice places n zero elements of T in b. It returns nil for n == 0
// and panics for n < 0.
func AllocateSlice[T any](b *Buffer, n int) ([]T, error) {
	if n < 0 {
		panic("region: negative slice length")
	}
	if n == 0 {
		b.mustNotBeNil()
		return nil, nil
	}

	hi, size := bits.Mul64(Sizeof[T](), uint64(n))
	if hi != 0 {
		return nil, ErrOutOfMemory
	}
	mem, err := b.alloc(size, alignof[T]())
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return make([]T, n), nil
	}
	s := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(mem))), n)
	clear(s)
	return s, nil
}

// EmplaceValue places a copy of v in b and returns a pointer to it.
func EmplaceValue[T any](b *Buffer, v T) (*T, error) {
	p, err := Allocate[T](b)
	if err != nil {
		return nil, err
	}
	*p = v
	return p, nil
}
