package region

import (
	"fmt"
	"unsafe"
)

// Buffer is a fixed-capacity span of memory plus a bump cursor.
//
// A Buffer returned by New or Create owns its span. A Buffer returned by
// Carve is a view into its parent's span: it has its own cursor, but it never
// gives memory back and must not outlive the buffer that owns the span.
type Buffer struct {
	span   []byte // len(span) is the capacity
	offset uint64 // bytes handed out since the last reset
	owned  bool
}

// New reserves size bytes from the operating system and returns a buffer
// that owns them.
func New(size uint64) (*Buffer, error) {
	mem, err := reserve(size)
	if err != nil {
		return nil, err
	}
	return &Buffer{span: mem, owned: true}, nil
}

// Create is like New, but a failed reservation yields an empty buffer
// instead of an error. Every allocation from an empty buffer fails with
// ErrOutOfMemory, so callers that skip the check still fail safely.
func Create(size uint64) *Buffer {
	b, err := New(size)
	if err != nil {
		return &Buffer{}
	}
	return b
}

// Alloc hands out the next size bytes of the buffer. If fewer than size
// bytes remain, it returns ErrOutOfMemory and the cursor does not move.
//
// The returned memory is not cleared. It was zero when the span was
// reserved, but after a Reset it may still hold whatever an earlier
// allocation wrote there.
//
// A zero size is a valid request: it returns a non-nil slice with zero length
// and zero capacity and leaves the cursor where it is. Its address says
// nothing about the cursor. An empty buffer refuses every request.
func (b *Buffer) Alloc(size uint64) ([]byte, error) {
	return b.alloc(size, 1)
}

// Emplace allocates len(data) bytes and copies data into them. Nothing is
// copied if the allocation fails.
func (b *Buffer) Emplace(data []byte) ([]byte, error) {
	mem, err := b.Alloc(uint64(len(data)))
	if err != nil {
		return nil, err
	}
	copy(mem, data)
	return mem, nil
}

// Carve allocates size bytes from b and returns them as a new buffer with its
// own cursor starting at zero. The parent's cursor moves past the carved
// bytes. Resetting either buffer afterwards does not affect the other.
//
// Carve panics if size is larger than b.Remaining().
func (b *Buffer) Carve(size uint64) *Buffer {
	b.mustNotBeNil()
	if size > b.Remaining() {
		panic(fmt.Sprintf("region: carve of %d bytes exceeds the %d bytes remaining", size, b.Remaining()))
	}
	start := b.offset
	b.offset += size
	return &Buffer{span: b.span[start:b.offset:b.offset]}
}

// Reset moves the cursor back to the start of the span. Memory is not
// cleared and nothing is returned to the operating system. Anything handed
// out before the reset must no longer be used.
func (b *Buffer) Reset() {
	b.mustNotBeNil()
	b.offset = 0
}

// Release returns an owned span to the operating system and leaves b empty.
// Calling it again, or on an empty buffer, does nothing. Sub-regions cannot
// be released and report ErrNotOwner. If the operating system refuses, b is
// left as it was and Release may be retried.
//
// Every sub-region carved from b becomes invalid once b is released.
func (b *Buffer) Release() error {
	b.mustNotBeNil()
	if b.span == nil {
		return nil
	}
	if !b.owned {
		return ErrNotOwner
	}
	if err := release(b.span); err != nil {
		return err
	}
	b.span, b.offset, b.owned = nil, 0, false
	return nil
}

// Cap returns the size of the span.
func (b *Buffer) Cap() uint64 {
	b.mustNotBeNil()
	return uint64(len(b.span))
}

// Offset returns how many bytes have been handed out since the last reset.
func (b *Buffer) Offset() uint64 {
	b.mustNotBeNil()
	return b.offset
}

// Remaining returns how many bytes can still be handed out.
func (b *Buffer) Remaining() uint64 {
	b.mustNotBeNil()
	return uint64(len(b.span)) - b.offset
}

// Owned reports whether b owns its span.
func (b *Buffer) Owned() bool {
	b.mustNotBeNil()
	return b.owned
}

// alloc bumps the cursor past size bytes, first skipping whatever padding is
// needed to bring the address to a multiple of align. align must be a power
// of two.
func (b *Buffer) alloc(size, align uint64) ([]byte, error) {
	b.mustNotBeNil()
	if b.span == nil {
		return nil, ErrOutOfMemory
	}

	remaining := b.Remaining()
	addr := uint64(uintptr(unsafe.Pointer(unsafe.SliceData(b.span)))) + b.offset
	pad := -addr & (align - 1)
	if pad > remaining || size > remaining-pad {
		return nil, ErrOutOfMemory
	}

	start := b.offset + pad
	b.offset = start + size
	return b.span[start:b.offset:b.offset], nil
}

func (b *Buffer) mustNotBeNil() {
	if b == nil {
		panic(msgNilBuffer)
	}
}
