//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package mmal

import "golang.org/x/sys/unix"

// osmmap maps size bytes of private anonymous memory.
func osmmap(size int64) ([]byte, error) {
	return unix.Mmap(
		-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
}

func osmunmap(mem []byte) error {
	return unix.Munmap(mem)
}
