// Package walk lists the regular files beneath a directory,
// ordered to approximate their layout on disk.
package walk

import (
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"sync"
)

// FilesInDiskOrder returns the regular files in fsys and a word on how they were sorted.
// Directories are listed concurrently, so without a disk-order key
// the files are sorted by path to keep the result reproducible.
func FilesInDiskOrder(fsys fs.FS) (string, []string) {
	var files fileSlice
	for p := range walkAsync(fsys) {
		f := file{path: p}
		if info, err := fs.Stat(fsys, p); err == nil {
			f.key, f.haskey = getkey(info)
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return "no-files", nil
	}

	waysort := "inode-number"
	for _, f := range files {
		if !f.haskey {
			waysort = "path"
			break
		}
	}
	if waysort == "path" {
		sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	} else {
		sort.Stable(files)
	}

	ret := make([]string, len(files))
	for i, f := range files {
		ret[i] = f.path
	}
	return waysort, ret
}

func walkAsync(fsys fs.FS) <-chan string {
	ch, wg := make(chan string), new(sync.WaitGroup)
	wg.Add(1)
	go recurse(fsys, ".", ch, wg)
	go func() { wg.Wait(); close(ch) }()
	return ch
}

func recurse(fsys fs.FS, name string, ch chan<- string, wg *sync.WaitGroup) {
	defer wg.Done()
	list, err := fs.ReadDir(fsys, name)
	if err != nil {
		slog.Warn("walkReadDirError", "dir", name, "err", err)
	}
	for _, de := range list {
		switch de.Type() {
		case fs.ModeDir:
			wg.Add(1)
			go recurse(fsys, path.Join(name, de.Name()), ch, wg)
		case 0: // regular file
			ch <- path.Join(name, de.Name())
		}
	}
}

type fileSlice []file
type file struct {
	path   string
	key    uint64
	haskey bool
}

func (x fileSlice) Len() int { return len(x) }
func (x fileSlice) Less(i, j int) bool {
	if x[i].key != x[j].key {
		return x[i].key < x[j].key
	}
	return x[i].path < x[j].path // hard links share an inode
}
func (x fileSlice) Swap(i, j int) { x[i], x[j] = x[j], x[i] }

func getkey(i fs.FileInfo) (uint64, bool) {
	if ino, ok := tryInode(i); ok { // intended as a vague proxy for "order on disk"
		return ino, true
	}
	if t, ok := i.Sys().(interface{ Inode() uint64 }); ok {
		return t.Inode(), true
	}
	return 0, false
}

var tryInode = func(i fs.FileInfo) (uint64, bool) { return 0, false }
