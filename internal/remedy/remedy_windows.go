//go:build windows

package remedy

import "syscall"

// Fix clears the read-only attribute, which is what blocks deletion of
// files and directories on Windows. Other attributes are left alone.
func Fix(path string) error {
	p, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	attrs, err := syscall.GetFileAttributes(p)
	if err != nil {
		return err
	}
	if attrs&syscall.FILE_ATTRIBUTE_READONLY == 0 {
		return nil
	}
	return syscall.SetFileAttributes(p, attrs&^syscall.FILE_ATTRIBUTE_READONLY)
}
