package fadvise

import "golang.org/x/sys/unix"

func sequential(fd uintptr) error {
	return unix.Fadvise(int(fd), 0, 0, unix.FADV_SEQUENTIAL)
}
