// SPDX-License-Identifier: EPL-2.0

// Package portaudio plays the software mixer through PortAudio using
// github.com/gordonklaus/portaudio.
//
// The binding needs cgo and the PortAudio headers, so the implementation is
// only compiled with the portaudio build tag:
//
//	go build -tags portaudio ./cmd/audplay
package portaudio
