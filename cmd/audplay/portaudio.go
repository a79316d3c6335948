// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package main

import (
	"github.com/ik5/audplay/backend"
	"github.com/ik5/audplay/backend/portaudio"
)

func newPortAudio(format backend.Format, bufferMS int) (backend.Backend, error) {
	return portaudio.New(portaudio.Options{
		SampleRate:      format.SampleRate,
		Channels:        format.Channels,
		FramesPerBuffer: format.SampleRate * bufferMS / 1000,
	}), nil
}
