// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"errors"

	"github.com/ik5/audplay/audio"
)

var (
	ErrClosed      = errors.New("backend closed")
	ErrNotOpen     = errors.New("backend not open")
	ErrEmptyBuffer = errors.New("buffer holds no frames")
)

// Format is the fixed output layout of an opened device.
type Format struct {
	SampleRate int
	Channels   int
}

// Params is the per-voice configuration applied before playback starts.
type Params struct {
	Pitch    float32
	Gain     float32
	Loop     bool
	Position [3]float32
	Velocity [3]float32
}

// DefaultParams returns unity pitch and gain at the origin, not looping.
func DefaultParams() Params {
	return Params{Pitch: 1, Gain: 1}
}

// Buffer is PCM data uploaded to the backend once and bound to voices any
// number of times.
type Buffer interface {
	Frames() int
	Close() error
}

// Voice is one playback channel. A voice plays either a bound static
// Buffer or a queue of PCM blocks fed by the caller.
//
// Playing reports the device state at the time of the call. After Stop the
// device may keep reporting true for a short while.
type Voice interface {
	// Bind attaches a static buffer, replacing any queue.
	Bind(b Buffer)
	// Enqueue appends a block to the streaming queue.
	Enqueue(pcm *audio.PCM) error
	// Unqueue drops fully played queue blocks and returns how many.
	Unqueue() int
	// Queued returns the number of blocks still waiting or playing.
	Queued() int

	Apply(p Params)
	SetGain(gain float32)

	Play()
	Pause()
	Stop()
	Playing() bool

	Close() error
}

// Backend creates voices and buffers on an output device.
type Backend interface {
	Open() error
	Format() Format
	NewVoice() (Voice, error)
	NewBuffer(pcm *audio.PCM) (Buffer, error)
	Close() error
}
