package walk

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
)

func TestMapFSSortsByPath(t *testing.T) {
	fsys := fstest.MapFS{
		"b/two.txt":    {Data: []byte("2")},
		"a/one.txt":    {Data: []byte("1")},
		"a/deep/x.bin": {Data: []byte("x")},
		"top":          {Data: []byte("t")},
		"emptydir":     {Mode: os.ModeDir},
		"link":         {Mode: os.ModeSymlink, Data: []byte("top")},
	}
	way, files := FilesInDiskOrder(fsys)
	if way != "path" {
		t.Errorf("expected path ordering for a MapFS, got %q", way)
	}
	expect := "a/deep/x.bin a/one.txt b/two.txt top"
	if got := strings.Join(files, " "); got != expect {
		t.Errorf("expected %q got %q", expect, got)
	}
}

func TestNoFiles(t *testing.T) {
	way, files := FilesInDiskOrder(fstest.MapFS{"d": {Mode: os.ModeDir}})
	if way != "no-files" || len(files) != 0 {
		t.Errorf("expected no files, got %q %v", way, files)
	}
}

func TestDirFS(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"x", "sub/y", "sub/sub/z"} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		os.MkdirAll(filepath.Dir(p), 0o777)
		if err := os.WriteFile(p, []byte(name), 0o666); err != nil {
			t.Fatal(err)
		}
	}
	_, files := FilesInDiskOrder(os.DirFS(dir))
	slices.Sort(files)
	if got := strings.Join(files, " "); got != "sub/sub/z sub/y x" {
		t.Errorf("unexpected listing %q", got)
	}
}
