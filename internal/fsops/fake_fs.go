package fsops

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// FakeFS implements FS against an in-memory tree for testing
// Records all remove calls and supports injected per-path failures
type FakeFS struct {
	Nodes map[string]FakeNode // keyed by slash-separated path
	Calls []string

	RemoveErr  map[string]error // returned once, then cleared if RemoveErrOnce
	ReadDirErr map[string]error

	RemoveErrOnce  bool
	ReadDirErrOnce bool
}

// FakeNode describes one entry in the fake tree
type FakeNode struct {
	Dir  bool
	Link bool
	Size int64
}

func NewFakeFS(nodes map[string]FakeNode) *FakeFS {
	return &FakeFS{
		Nodes:      nodes,
		RemoveErr:  map[string]error{},
		ReadDirErr: map[string]error{},
	}
}

func (f *FakeFS) Lstat(p string) (fs.FileInfo, error) {
	n, ok := f.Nodes[p]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: p, Err: fs.ErrNotExist}
	}
	var mode fs.FileMode = 0o644
	if n.Dir {
		mode = fs.ModeDir | 0o755
	} else if n.Link {
		mode = fs.ModeSymlink | 0o777
	}
	return fakeInfo{name: path.Base(p), mode: mode, size: n.Size}, nil
}

func (f *FakeFS) ReadDirNames(p string) ([]string, error) {
	if err, ok := f.ReadDirErr[p]; ok {
		if f.ReadDirErrOnce {
			delete(f.ReadDirErr, p)
		}
		return nil, &fs.PathError{Op: "open", Path: p, Err: err}
	}
	if _, ok := f.Nodes[p]; !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	prefix := p + "/"
	var names []string
	for k := range f.Nodes {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := k[len(prefix):]
		if !strings.Contains(rest, "/") {
			names = append(names, rest)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *FakeFS) Remove(p string) error {
	f.Calls = append(f.Calls, "rm:"+p)
	if err, ok := f.RemoveErr[p]; ok {
		if f.RemoveErrOnce {
			delete(f.RemoveErr, p)
		}
		// An injected not-exist means the node really is gone.
		if errors.Is(err, fs.ErrNotExist) {
			delete(f.Nodes, p)
		}
		return &fs.PathError{Op: "remove", Path: p, Err: err}
	}
	n, ok := f.Nodes[p]
	if !ok {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
	}
	if n.Dir {
		prefix := p + "/"
		for k := range f.Nodes {
			if strings.HasPrefix(k, prefix) {
				return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrInvalid}
			}
		}
	}
	delete(f.Nodes, p)
	return nil
}

type fakeInfo struct {
	name string
	mode fs.FileMode
	size int64
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return i.size }
func (i fakeInfo) Mode() fs.FileMode  { return i.mode }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return i.mode.IsDir() }
func (i fakeInfo) Sys() any           { return nil }
