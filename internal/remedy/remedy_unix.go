//go:build !windows

// Package remedy widens a single node's permission metadata just enough
// for a pending deletion or directory listing to be retried once.
package remedy

import (
	"io/fs"
	"os"
)

// Fix adds the owner bits the pending operation needs: rwx on a
// directory (required to list and unlink entries inside it), write on a
// file. Symlink permissions are irrelevant to unlinking, so links are a
// no-op. A chmod failure is a hard failure for the caller.
func Fix(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil
	}
	mode := info.Mode().Perm()
	if info.IsDir() {
		mode |= 0o700
	} else {
		mode |= 0o200
	}
	return os.Chmod(path, mode)
}
