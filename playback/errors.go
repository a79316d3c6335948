// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrDecode             = errors.New("decode failed")
	ErrUnknownFormat      = errors.New("unknown sound format")
	ErrBackendUnavailable = errors.New("audio backend unavailable")
)

// LoadError is returned by the Load* calls. errors.Is reaches both the
// playback sentinel and the underlying decoder or loader error.
type LoadError struct {
	// Op is the load kind: effect, music, stream or module.
	Op  string
	Ref string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("playback: load %s %q: %v", e.Op, e.Ref, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
