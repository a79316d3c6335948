// SPDX-License-Identifier: EPL-2.0

//go:build !portaudio

package main

import (
	"errors"

	"github.com/ik5/audplay/backend"
)

var errNoPortAudio = errors.New("built without portaudio support; rebuild with -tags portaudio")

func newPortAudio(backend.Format, int) (backend.Backend, error) {
	return nil, errNoPortAudio
}
