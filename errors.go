package forceremove

import (
	"errors"
	"io/fs"

	"force-remove/internal/guard"
)

var (
	// ErrNotFound reports that the removal target does not exist. Fatal
	// for Remove, success for EnsureRemoved.
	ErrNotFound = errors.New("target does not exist")

	// ErrInvalidTarget reports an empty or unresolvable target path.
	ErrInvalidTarget = guard.ErrInvalidTarget

	// ErrProtectedPath reports a target the guard refuses to remove.
	ErrProtectedPath = guard.ErrProtectedPath

	// ErrOutsideRoots reports a target outside the configured allowed roots.
	ErrOutsideRoots = guard.ErrOutsideAllowed
)

// IsNotFound reports whether err means the target was absent
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// IsPermissionDenied reports whether err is an access failure that
// survived remediation. The underlying OS error stays in the chain, so
// errors.Is(err, fs.ErrPermission) holds for these.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
