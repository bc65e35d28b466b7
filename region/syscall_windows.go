//go:build windows

package region

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Committed pages from VirtualAlloc are zero-filled by the OS.
func mmap(length int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(
		0,
		uintptr(length),
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE,
	)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length), nil
}

func munmap(mem []byte) error {
	// dwSize must be 0 with MEM_RELEASE; the whole reservation goes.
	return windows.VirtualFree(uintptr(unsafe.Pointer(unsafe.SliceData(mem))), 0, windows.MEM_RELEASE)
}
