// Package fadvise tells the kernel how input files will be read.
// Archiving reads every input twice from start to end.
package fadvise

import (
	"errors"
	"os"
)

var ErrUnsupported = errors.New("fadvise: not supported on this platform")

// Sequential hints that f will be read front to back, from the beginning.
// It is only a hint: callers may ignore the error.
func Sequential(f *os.File) error {
	conn, err := f.SyscallConn()
	if err != nil {
		return err
	}
	var inerr error
	err = conn.Control(func(fd uintptr) {
		inerr = sequential(fd)
	})
	if err != nil {
		return err
	}
	return inerr
}
