package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/therootcompany/xz"
)

type readCloser struct {
	io.Reader
	io.Closer
}

// openArchive opens an archive for reading, unwrapping an xz container if there is one.
func openArchive(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(f, bufSize)
	matchAt := func(s string, offset int) bool {
		header, _ := br.Peek(offset + len(s))
		return len(header) >= offset+len(s) && string(header[offset:][:len(s)]) == s
	}

	switch {
	case matchAt("\xfd7zXZ\x00", 0): // xz
		r, err := xz.NewReader(br, xz.DefaultDictMax)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: xz: %w", name, err)
		}
		return readCloser{r, f}, nil
	}
	return readCloser{br, f}, nil
}
