package fsops

import "io/fs"

// FS abstracts the filesystem syscalls the removal engine issues
// Enables mocking in tests to prove retry and fail-fast behavior
type FS interface {
	Lstat(path string) (fs.FileInfo, error)
	ReadDirNames(path string) ([]string, error)
	Remove(path string) error
}
