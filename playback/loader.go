// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// Loader opens sound resources by reference.
type Loader interface {
	// Open returns the resource bytes. A missing resource is reported
	// with an error wrapping ErrNotFound.
	Open(ref string) (io.ReadCloser, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ref string) (io.ReadCloser, error)

func (f LoaderFunc) Open(ref string) (io.ReadCloser, error) { return f(ref) }

// FSLoader resolves references against one or more file systems, first
// match wins.
type FSLoader struct {
	roots []fs.FS
}

func NewFSLoader(roots ...fs.FS) *FSLoader {
	return &FSLoader{roots: roots}
}

func (l *FSLoader) Open(ref string) (io.ReadCloser, error) {
	name := path.Clean(strings.TrimLeft(strings.ReplaceAll(ref, "\\", "/"), "/"))
	if name == "." || !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}

	for _, root := range l.roots {
		f, err := root.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %q: %w", ref, err)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
}
