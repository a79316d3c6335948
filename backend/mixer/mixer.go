// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"math"
	"slices"
	"sync"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
	"github.com/ik5/audplay/utils"
)

const (
	DefaultSampleRate = 48000
	DefaultChannels   = 2
)

// Mixer is a software implementation of backend.Backend. Voices are summed
// into interleaved float32 frames by Mix, or into float32 little-endian
// bytes by Read, which is what device outputs pull from.
type Mixer struct {
	mu      sync.Mutex
	format  backend.Format
	open    bool
	closed  bool
	voices  []*voice
	scratch []float32
}

// New returns a mixer producing the given layout. Zero fields fall back to
// 48 kHz stereo; more than two output channels are reduced to stereo.
func New(format backend.Format) *Mixer {
	if format.SampleRate <= 0 {
		format.SampleRate = DefaultSampleRate
	}
	if format.Channels <= 0 || format.Channels > 2 {
		format.Channels = DefaultChannels
	}
	return &Mixer{format: format}
}

func (m *Mixer) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return backend.ErrClosed
	}
	m.open = true
	return nil
}

func (m *Mixer) Format() backend.Format { return m.format }

func (m *Mixer) NewVoice() (backend.Voice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, backend.ErrClosed
	}
	if !m.open {
		return nil, backend.ErrNotOpen
	}
	v := &voice{m: m, params: backend.DefaultParams()}
	m.voices = append(m.voices, v)
	return v, nil
}

func (m *Mixer) NewBuffer(pcm *audio.PCM) (backend.Buffer, error) {
	if pcm.Frames() == 0 {
		return nil, backend.ErrEmptyBuffer
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, backend.ErrClosed
	}
	return &buffer{pcm: audio.PCM{
		SampleRate: pcm.SampleRate,
		Channels:   pcm.Channels,
		Samples:    slices.Clone(pcm.Samples),
	}}, nil
}

// Close stops every voice. Mix keeps producing silence afterwards.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, v := range m.voices {
		v.stopLocked()
	}
	m.voices = nil
	m.closed = true
	return nil
}

// Voices returns the number of live voices.
func (m *Mixer) Voices() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Mix renders len(dst)/channels frames of every playing voice into dst and
// returns the number of samples written.
func (m *Mixer) Mix(dst []float32) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := m.format.Channels
	dst = dst[:len(dst)-len(dst)%ch]
	clear(dst)

	for _, v := range m.voices {
		if v.state == statePlaying {
			v.render(dst, ch, m.format.SampleRate)
		}
	}
	for i, s := range dst {
		dst[i] = utils.Clamp(s, -1, 1)
	}
	return len(dst)
}

// Read implements io.Reader with float32 little-endian samples. Only whole
// frames are written.
func (m *Mixer) Read(p []byte) (int, error) {
	frameBytes := 4 * m.format.Channels
	samples := len(p) / frameBytes * m.format.Channels
	if samples == 0 {
		return 0, nil
	}
	if cap(m.scratch) < samples {
		m.scratch = make([]float32, samples)
	}
	buf := m.scratch[:samples]

	n := m.Mix(buf)
	for i, s := range buf[:n] {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	return n * 4, nil
}

func (m *Mixer) remove(v *voice) {
	m.voices = slices.DeleteFunc(m.voices, func(o *voice) bool { return o == v })
}

type buffer struct {
	pcm    audio.PCM
	closed bool
}

func (b *buffer) Frames() int  { return b.pcm.Frames() }
func (b *buffer) Close() error { b.closed = true; return nil }
