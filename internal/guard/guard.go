// Package guard validates removal targets before the engine touches
// them: system paths are refused and targets can be confined to a set
// of allowed roots.
package guard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidTarget  = errors.New("invalid removal target")
	ErrProtectedPath  = errors.New("protected path")
	ErrOutsideAllowed = errors.New("outside allowed roots")
)

// Guard enforces the target contract for all removal operations
type Guard struct {
	AllowedRoots   []string // empty means anywhere outside protected paths
	ProtectedPaths []string
}

// New creates a guard with allowed roots and optional additional
// protected paths on top of the system defaults
func New(allowed []string, extraProtected []string) *Guard {
	return &Guard{
		AllowedRoots:   normalizeRoots(allowed),
		ProtectedPaths: defaultProtected(extraProtected),
	}
}

// Minimal creates a guard that only refuses the filesystem root. Used
// by the zero-config package-level functions.
func Minimal() *Guard {
	return &Guard{}
}

// Check is the single source of truth for removal authorization
// Returns a typed error on violation
func (g *Guard) Check(path string) error {
	p, err := Normalize(path)
	if err != nil {
		return err
	}

	// Hard block: the filesystem root, always
	if p == string(os.PathSeparator) || filepath.VolumeName(p)+string(os.PathSeparator) == p {
		return ErrProtectedPath
	}

	if IsProtected(p, g.ProtectedPaths) {
		return ErrProtectedPath
	}

	if len(g.AllowedRoots) > 0 && !IsWithinRoots(p, g.AllowedRoots) {
		return ErrOutsideAllowed
	}

	return nil
}

// Normalize converts path to absolute, cleaned form
func Normalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrInvalidTarget
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ErrInvalidTarget
	}
	return filepath.Clean(abs), nil
}

// IsWithinRoots checks if path is within any allowed root
func IsWithinRoots(path string, roots []string) bool {
	p := filepath.Clean(path)
	for _, r := range roots {
		if hasPathPrefix(p, r) {
			return true
		}
	}
	return false
}

// IsProtected checks if path matches or lies under a protected path
func IsProtected(path string, protected []string) bool {
	p := filepath.Clean(path)
	for _, prot := range protected {
		prot = filepath.Clean(prot)
		if p == prot || hasPathPrefix(p, prot) {
			return true
		}
	}
	return false
}

// hasPathPrefix checks if path has the given prefix
func hasPathPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)

	if prefix == string(os.PathSeparator) {
		return true
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+string(os.PathSeparator))
}

// normalizeRoots converts slice of roots to absolute, cleaned paths
func normalizeRoots(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		if strings.TrimSpace(r) == "" {
			continue
		}
		abs, err := filepath.Abs(r)
		if err != nil {
			continue
		}
		out = append(out, filepath.Clean(abs))
	}
	return out
}

// defaultProtected returns the base set of protected paths plus any extras
func defaultProtected(extra []string) []string {
	base := []string{
		"/bin",
		"/boot",
		"/dev",
		"/etc",
		"/lib",
		"/lib64",
		"/proc",
		"/sbin",
		"/sys",
		"/usr",
	}
	return append(base, extra...)
}
