// SPDX-License-Identifier: EPL-2.0

// Package fake provides a scripted backend.Backend for tests.
//
// Voices never advance on their own: a test decides when a voice finishes
// (Finish), how many queued blocks the "device" consumed (Consume), and
// whether Stop takes effect at once or lags like real hardware (SetStopLag).
// Every gain sent to a voice is recorded.
package fake

import (
	"sync"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
)

type Backend struct {
	mu       sync.Mutex
	format   backend.Format
	openErr  error
	voiceErr error
	opens    int
	open     bool
	closed   bool
	voices   []*Voice
	buffers  []*Buffer
}

// New returns a backend reporting 44.1 kHz stereo.
func New() *Backend {
	return &Backend{format: backend.Format{SampleRate: 44100, Channels: 2}}
}

// FailOpen makes every Open call return err.
func (b *Backend) FailOpen(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openErr = err
}

// FailVoices makes NewVoice return err; nil restores it.
func (b *Backend) FailVoices(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.voiceErr = err
}

func (b *Backend) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.opens++
	if b.openErr != nil {
		return b.openErr
	}
	if b.closed {
		return backend.ErrClosed
	}
	b.open = true
	return nil
}

// Opens returns how many times Open was called.
func (b *Backend) Opens() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opens
}

func (b *Backend) Format() backend.Format { return b.format }

func (b *Backend) NewVoice() (backend.Voice, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.voiceErr != nil {
		return nil, b.voiceErr
	}
	if !b.open {
		return nil, backend.ErrNotOpen
	}
	v := &Voice{ID: len(b.voices), params: backend.DefaultParams()}
	b.voices = append(b.voices, v)
	return v, nil
}

func (b *Backend) NewBuffer(pcm *audio.PCM) (backend.Buffer, error) {
	if pcm.Frames() == 0 {
		return nil, backend.ErrEmptyBuffer
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil, backend.ErrNotOpen
	}
	buf := &Buffer{PCM: pcm}
	b.buffers = append(b.buffers, buf)
	return buf, nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.open = false
	return nil
}

// Closed reports whether Close was called.
func (b *Backend) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Voices returns every voice ever created, closed ones included.
func (b *Backend) Voices() []*Voice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Voice(nil), b.voices...)
}

// Buffers returns every buffer ever created.
func (b *Backend) Buffers() []*Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Buffer(nil), b.buffers...)
}

type Buffer struct {
	PCM    *audio.PCM
	closed bool
}

func (b *Buffer) Frames() int  { return b.PCM.Frames() }
func (b *Buffer) Close() error { b.closed = true; return nil }
func (b *Buffer) Closed() bool { return b.closed }
