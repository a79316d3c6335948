// SPDX-License-Identifier: EPL-2.0

// Package backend defines the device abstraction the playback core drives.
//
// A Backend is opened once and then hands out Voices and Buffers. Voices are
// the scarce resource: the playback core creates a fixed number of them and
// shares them between sound effects and music. Voice state is always read
// back from the device with Playing rather than tracked by the caller.
//
// Implementations:
//
//   - backend/mixer: software mixer, usable headless or for offline rendering
//   - backend/oto: speakers through github.com/ebitengine/oto/v3
//   - backend/portaudio: speakers through PortAudio (build tag portaudio)
//   - backend/fake: scripted test double
package backend
