// Package region implements a region (arena) allocator over memory reserved
// directly from the operating system.
//
// A Buffer is created once from a single reservation and then serves any
// number of allocations by bumping an offset cursor. Nothing is freed
// individually: Reset hands the whole span back to the cursor in O(1), and
// Release returns it to the operating system.
//
//	buf := region.Create(1 << 20)
//	defer buf.Release()
//
//	hdr, err := buf.Alloc(64)
//	if err != nil {
//		// region exhausted
//	}
//
//	scratch := buf.Carve(4096) // independent cursor over the next 4 KiB
//	scratch.Reset()
//
// # Memory contents
//
// Reserved memory is zero-filled by the operating system, once. Alloc never
// clears what it returns, so after a Reset a new allocation may observe bytes
// written before the reset. The typed helpers (Allocate, AllocateSlice,
// EmplaceValue) always zero or overwrite their result.
//
// # Errors and panics
//
// Running out of room is an ordinary condition and is reported as
// ErrOutOfMemory. Calling a method on a nil *Buffer or carving more than a
// buffer has left is a bug in the caller and panics.
//
// # Concurrency
//
// A Buffer is not safe for concurrent use. Give each goroutine its own
// buffer, for example by carving one sub-region per goroutine before
// starting them, or guard a shared buffer with a mutex.
//
// # Garbage collection
//
// Region memory lives outside the Go heap and is not scanned by the garbage
// collector. Values placed in a region must not hold the only reference to
// anything on the Go heap. Pointers from one region value to another are
// fine.
package region
