//go:build unix

package region

import (
	"golang.org/x/sys/unix"
)

// Anonymous private mappings are zero-filled by the kernel and backed
// lazily, so nothing is touched here.
func mmap(length int) ([]byte, error) {
	return unix.Mmap(
		-1, // fd: anonymous
		0,
		length,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
}

func munmap(mem []byte) error {
	return unix.Munmap(mem)
}
