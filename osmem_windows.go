//go:build windows

package mmal

import "unsafe"

import "golang.org/x/sys/windows"

// osmmap reserves and commits size bytes of private memory.
func osmmap(size int64) ([]byte, error) {
	addr, err := windows.VirtualAlloc(
		0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func osmunmap(mem []byte) error {
	addr := uintptr(unsafe.Pointer(&mem[0]))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
