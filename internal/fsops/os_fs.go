package fsops

import (
	"io/fs"
	"os"
)

// OSFS implements FS using real os package calls
type OSFS struct{}

func (OSFS) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

func (OSFS) ReadDirNames(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

func (OSFS) Remove(path string) error {
	return os.Remove(path)
}
