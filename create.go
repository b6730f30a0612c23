// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/elliotnunn/hufarc/internal/archive"
	"github.com/elliotnunn/hufarc/internal/fadvise"
	"github.com/elliotnunn/hufarc/internal/walk"
)

func createArchive(archiveName string, inputs []string) (err error) {
	files, err := expandInputs(inputs)
	if err != nil {
		return err
	}

	out, err := os.Create(archiveName)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	self, err := out.Stat()
	if err != nil {
		return err
	}

	t := time.Now()
	enc := archive.NewEncoder(out, archive.WithBufferSize(bufSize))
	for _, name := range files {
		if err := encodeOne(enc, self, name); err != nil {
			enc.Close()
			return err
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}
	slog.Info("createDone", "archive", archiveName, "files", enc.Blocks(), "duration", time.Since(t).String())
	return nil
}

func encodeOne(enc *archive.Encoder, self fs.FileInfo, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if s, err := f.Stat(); err == nil && os.SameFile(s, self) {
		slog.Warn("skipArchiveItself", "path", name)
		return nil
	}
	if err := fadvise.Sequential(f); err != nil {
		slog.Debug("fadviseError", "path", name, "err", err)
	}
	_, err = enc.EncodeFile(f, filepath.ToSlash(name))
	return err
}

// expandInputs turns command-line inputs into a list of regular files.
// A directory contributes every file beneath it, a glob every file it matches,
// and anything else is taken to be a file name.
func expandInputs(inputs []string) ([]string, error) {
	var files []string
	for _, in := range inputs {
		s, err := os.Stat(in)
		switch {
		case err == nil && s.IsDir():
			waysort, list := walk.FilesInDiskOrder(os.DirFS(in))
			slog.Debug("walkDir", "path", in, "sortorder", waysort, "files", len(list))
			for _, rel := range list {
				files = append(files, filepath.FromSlash(path.Join(filepath.ToSlash(in), rel)))
			}
		case err == nil:
			files = append(files, in)
		case errors.Is(err, fs.ErrNotExist) && isGlob(in):
			matches, gerr := doublestar.FilepathGlob(in, doublestar.WithFilesOnly())
			if gerr != nil {
				return nil, fmt.Errorf("%s: %w", in, gerr)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%s: no files match", in)
			}
			files = append(files, matches...)
		default:
			return nil, err
		}
	}
	return files, nil
}

func isGlob(s string) bool { return strings.ContainsAny(s, "*?[{") }
