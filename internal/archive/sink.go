// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// A Sink creates the output for each decoded file.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}

// DirSink extracts files beneath a directory.
// Names that would escape it are refused.
type DirSink struct {
	root *os.Root
}

func OpenDir(dir string) (*DirSink, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &DirSink{root: root}, nil
}

// Create strips leading slashes the way tar does, then creates any parent directories.
func (s *DirSink) Create(name string) (io.WriteCloser, error) {
	rel := filepath.FromSlash(strings.TrimLeft(name, "/"))
	if rel == "" {
		return nil, fmt.Errorf("%q: %w", name, ErrEmptyName)
	}
	if dir := filepath.Dir(rel); dir != "." {
		if err := s.root.MkdirAll(dir, 0o777); err != nil {
			return nil, err
		}
	}
	return s.root.Create(rel)
}

func (s *DirSink) Close() error { return s.root.Close() }

// Discard accepts every file and keeps nothing.
var Discard Sink = discard{}

type discard struct{}

func (discard) Create(string) (io.WriteCloser, error) { return nopCloser{io.Discard}, nil }

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// FilterSink passes files whose names match any of the doublestar
// Patterns on to Sink, and discards the rest.
type FilterSink struct {
	Sink     Sink
	Patterns []string
}

func NewFilterSink(s Sink, patterns ...string) (*FilterSink, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("bad pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return &FilterSink{Sink: s, Patterns: patterns}, nil
}

func (f *FilterSink) Match(name string) bool {
	if len(f.Patterns) == 0 {
		return true
	}
	for _, p := range f.Patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

func (f *FilterSink) Create(name string) (io.WriteCloser, error) {
	if !f.Match(name) {
		return Discard.Create(name)
	}
	return f.Sink.Create(name)
}
