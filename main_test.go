// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
)

func TestCreateExtract(t *testing.T) {
	src := t.TempDir()
	t.Chdir(src)
	writeFiles(t, map[string]string{
		"x":                 "A",
		"y":                 "",
		"tree/a.go":         "package a",
		"tree/deep/b.go":    "package b",
		"tree/deep/c.txt":   strings.Repeat("c", 1000),
		"globbed/one.md":    "# one",
		"globbed/sub/2.md":  "# two",
		"globbed/ignore.go": "package ignore",
	})

	code, stdout, stderr := runCapture("-c", "out.huf", "x", "y", "tree", "globbed/**/*.md")
	if code != 0 {
		t.Fatalf("create failed: %s", stderr)
	}
	if !strings.Contains(stdout, "Archive created successfully!") {
		t.Errorf("unexpected stdout %q", stdout)
	}

	dst := t.TempDir()
	t.Chdir(dst)
	code, stdout, stderr = runCapture("-d", filepath.Join(src, "out.huf"))
	if code != 0 {
		t.Fatalf("extract failed: %s", stderr)
	}
	if !strings.Contains(stdout, "Files extracted successfully!") {
		t.Errorf("unexpected stdout %q", stdout)
	}
	expectFiles(t, dst, map[string]string{
		"x":                "A",
		"y":                "",
		"tree/a.go":        "package a",
		"tree/deep/b.go":   "package b",
		"tree/deep/c.txt":  strings.Repeat("c", 1000),
		"globbed/one.md":   "# one",
		"globbed/sub/2.md": "# two",
	})
	if _, err := os.Stat(filepath.Join(dst, "globbed", "ignore.go")); err == nil {
		t.Error("glob should not have matched ignore.go")
	}
}

func TestExtractWithPatterns(t *testing.T) {
	src := t.TempDir()
	t.Chdir(src)
	writeFiles(t, map[string]string{"keep.txt": "keep", "drop.bin": "drop"})
	if code, _, stderr := runCapture("-c", "a.huf", "keep.txt", "drop.bin"); code != 0 {
		t.Fatal(stderr)
	}

	dst := t.TempDir()
	t.Chdir(dst)
	if code, _, stderr := runCapture("-d", filepath.Join(src, "a.huf"), "*.txt"); code != 0 {
		t.Fatal(stderr)
	}
	expectFiles(t, dst, map[string]string{"keep.txt": "keep"})
	if _, err := os.Stat("drop.bin"); err == nil {
		t.Error("drop.bin should not have been extracted")
	}
}

func TestArchiveSkipsItself(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFiles(t, map[string]string{"a": "aaa", "self.huf": "stale archive"})
	if code, _, stderr := runCapture("-c", "self.huf", "."); code != 0 {
		t.Fatal(stderr)
	}
	code, stdout, stderr := runCapture("-l", "self.huf")
	if code != 0 {
		t.Fatal(stderr)
	}
	expect := "a"
	if got := listedNames(stdout); got != expect {
		t.Errorf("expected listing %q, got %q", expect, got)
	}
}

func TestList(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFiles(t, map[string]string{"one": "first file", "two": "second"})
	if code, _, stderr := runCapture("-c", "l.huf", "one", "two"); code != 0 {
		t.Fatal(stderr)
	}
	code, stdout, _ := runCapture("-l", "l.huf")
	if code != 0 {
		t.Fatal("list failed")
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", stdout)
	}
	fields := strings.Fields(lines[0])
	if len(fields) != 3 || fields[1] != "10" || fields[2] != "one" {
		t.Errorf("unexpected line %q", lines[0])
	}
	if fields[0] != fmt.Sprintf("%016x", xxhash.Sum64String("first file")) {
		t.Errorf("expected digest of %q, got %s", "first file", fields[0])
	}
}

func TestEmptyArchiveFile(t *testing.T) {
	t.Chdir(t.TempDir())
	os.WriteFile("empty.huf", nil, 0o666)
	code, _, stderr := runCapture("-d", "empty.huf")
	if code != 0 {
		t.Errorf("expected an empty archive to extract cleanly, got %s", stderr)
	}
}

func TestTruncatedArchiveFile(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFiles(t, map[string]string{"big": strings.Repeat("some text to compress ", 500)})
	runCapture("-c", "t.huf", "big")
	data, err := os.ReadFile("t.huf")
	if err != nil {
		t.Fatal(err)
	}
	os.WriteFile("t.huf", data[:len(data)/2], 0o666)

	code, _, stderr := runCapture("-l", "t.huf")
	if code != 1 || !strings.HasPrefix(stderr, "Error!\n") {
		t.Errorf("expected a reported failure, got code %d stderr %q", code, stderr)
	}
}

func TestNotAnArchive(t *testing.T) {
	t.Chdir(t.TempDir())
	os.WriteFile("zeros.huf", make([]byte, 16), 0o666)
	code, _, stderr := runCapture("-d", "zeros.huf")
	if code != 1 || !strings.HasPrefix(stderr, "Error!\n") {
		t.Errorf("expected a reported failure, got code %d stderr %q", code, stderr)
	}
}

func TestBadXZ(t *testing.T) {
	t.Chdir(t.TempDir())
	os.WriteFile("bad.huf.xz", []byte("\xfd7zXZ\x00garbage that is not a stream"), 0o666)
	if code, _, _ := runCapture("-l", "bad.huf.xz"); code != 1 {
		t.Errorf("expected failure for a corrupt xz container, got %d", code)
	}
}

func TestMissingInput(t *testing.T) {
	t.Chdir(t.TempDir())
	code, _, stderr := runCapture("-c", "m.huf", "does-not-exist")
	if code != 1 || !strings.Contains(stderr, "does-not-exist") {
		t.Errorf("expected failure naming the input, got %d %q", code, stderr)
	}
	if _, err := os.Stat("m.huf"); err == nil {
		t.Error("archive should not be created when inputs are missing")
	}

	code, _, _ = runCapture("-c", "m.huf", "nothing/**/*.zz")
	if code != 1 {
		t.Errorf("expected failure for a glob matching nothing, got %d", code)
	}
}

func TestInvalidInput(t *testing.T) {
	t.Chdir(t.TempDir())
	cases := [][]string{
		nil,
		{"-c", "only-archive"},
		{"-d"},
		{"-x", "a", "b"},
		{"c", "a", "b"},
	}
	for _, args := range cases {
		code, stdout, _ := runCapture(args...)
		if code != 0 || !strings.HasPrefix(stdout, "Invalid input.") {
			t.Errorf("%q: expected the invalid input message, got %d %q", args, code, stdout)
		}
	}
	entries, _ := os.ReadDir(".")
	if len(entries) != 0 {
		t.Errorf("invalid input should perform no I/O, found %d files", len(entries))
	}
}

func TestHelp(t *testing.T) {
	code, stdout, _ := runCapture("-h")
	if code != 0 || !strings.HasPrefix(stdout, "HELP:") {
		t.Errorf("unexpected help output %d %q", code, stdout)
	}
}

func runCapture(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFiles(t *testing.T, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.FromSlash(name)
		if err := os.MkdirAll(filepath.Dir(p), 0o777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o666); err != nil {
			t.Fatal(err)
		}
	}
}

func expectFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, expect := range files {
		got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("%s: %v", name, err)
		} else if string(got) != expect {
			t.Errorf("%s: expected %q got %q", name, expect, got)
		}
	}
}

func listedNames(listing string) string {
	var names []string
	for _, l := range strings.Split(strings.TrimSpace(listing), "\n") {
		if f := strings.Fields(l); len(f) == 3 {
			names = append(names, f[2])
		}
	}
	return strings.Join(names, " ")
}
