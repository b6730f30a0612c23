// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/elliotnunn/hufarc/internal/archive"
)

// extractArchive writes the archive's files beneath dir.
// Files already extracted when an error strikes are left in place.
func extractArchive(archiveName, dir string, patterns []string) error {
	in, err := openArchive(archiveName)
	if err != nil {
		return err
	}
	defer in.Close()

	root, err := archive.OpenDir(dir)
	if err != nil {
		return err
	}
	defer root.Close()
	sink, err := archive.NewFilterSink(root, patterns...)
	if err != nil {
		return err
	}

	dec := archive.NewDecoder(in, sink, archive.WithBufferSize(bufSize))
	if err := dec.DecodeAll(); err != nil {
		return err
	}
	for _, e := range dec.Entries() {
		if !sink.Match(e.Name) {
			slog.Debug("skipUnmatched", "name", e.Name)
		}
	}
	return nil
}

func listArchive(archiveName string, w io.Writer) error {
	in, err := openArchive(archiveName)
	if err != nil {
		return err
	}
	defer in.Close()

	dec := archive.NewDecoder(in, archive.Discard, archive.WithBufferSize(bufSize))
	if err := dec.DecodeAll(); err != nil {
		return err
	}
	for _, e := range dec.Entries() {
		fmt.Fprintf(w, "%016x %12d %s\n", e.Digest, e.Size, e.Name)
	}
	return nil
}
