//go:build !linux

package fadvise

func sequential(fd uintptr) error { return ErrUnsupported }
