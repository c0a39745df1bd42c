//go:build linux || darwin

package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) (*Region, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &Region{
		data: data,
		closer: func(b []byte) error {
			if len(b) == 0 {
				return nil
			}
			return unix.Munmap(b)
		},
	}, nil
}
