package node

import (
	"io/fs"
	"os"
)

// Kind classifies a filesystem path without following symlinks
type Kind int

const (
	Missing Kind = iota
	File
	Dir
	Symlink
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Dir:
		return "directory"
	case Symlink:
		return "symlink"
	default:
		return "missing"
	}
}

// Lstater is the metadata query Classify needs. *os.File-free so the
// engine's fake filesystem can satisfy it in tests.
type Lstater interface {
	Lstat(path string) (fs.FileInfo, error)
}

// Classify determines what is currently at path. A missing path is a
// valid classification, not an error. Symlinks are classified as links,
// never dereferenced into their targets.
func Classify(fsys Lstater, path string) (Kind, fs.FileInfo, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Missing, nil, nil
		}
		return Missing, nil, err
	}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return Symlink, info, nil
	case info.IsDir():
		return Dir, info, nil
	default:
		return File, info, nil
	}
}
