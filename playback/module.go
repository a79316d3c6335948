// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
)

// modulePlayer renders a tracker module held in memory into the music
// channel, a few small blocks ahead of the device.
type modulePlayer struct {
	c       *Context
	ref     string
	ch      *channel
	feed    *feeder
	elapsed time.Duration
	paused  bool
	done    bool
}

func (c *Context) playModule(s *Sound, p backend.Params) bool {
	c.deactivateMusic()
	ch, ok := c.claimMusic()
	if !ok {
		return false
	}
	c.lastMusicGain = p.Gain

	open := func() (audio.Source, error) {
		src, err := s.dec.Decode(bytes.NewReader(s.data))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return c.adapt(src), nil
	}

	m := &modulePlayer{c: c, ref: s.ref, ch: ch}
	s.module = m

	feed, err := newFeeder(c, ch.voice, open, p.Loop, DefaultModuleFrames)
	if err != nil {
		c.log.Error("playback: module start failed", "ref", s.ref, "err", err)
		m.done = true
		return false
	}
	m.feed = feed
	if n, err := feed.fill(DefaultModuleBuffers); err != nil || n == 0 {
		c.log.Error("playback: module start failed", "ref", s.ref, "blocks", n, "err", err)
		m.halt()
		return false
	}

	p.Loop = false
	p.Gain = c.musicGain(p.Gain)
	ch.voice.Apply(p)
	ch.voice.Play()
	c.activateMusic(m)
	return true
}

func (m *modulePlayer) poll(deltaMs int) {
	if m.done || m.paused {
		return
	}
	m.elapsed += time.Duration(deltaMs) * time.Millisecond

	done, err := m.feed.refill(DefaultModuleBuffers)
	if err != nil {
		m.c.log.Error("playback: module render failed", "ref", m.ref, "err", err)
		m.halt()
		return
	}
	if done {
		m.halt()
	}
}

func (m *modulePlayer) pause() {
	if m.done || m.paused {
		return
	}
	m.ch.voice.Pause()
	m.paused = true
}

func (m *modulePlayer) resume() {
	if !m.paused {
		return
	}
	m.paused = false
	m.ch.voice.Play()
}

func (m *modulePlayer) stop() {
	if !m.done {
		m.halt()
	}
}

func (m *modulePlayer) setGain(gain float32) {
	if !m.done {
		m.ch.voice.SetGain(gain)
	}
}

func (m *modulePlayer) running() bool { return !m.done }

func (m *modulePlayer) halt() {
	if m.feed != nil {
		m.feed.halt()
	}
	m.done = true
	m.paused = false
	m.c.release(m)
}

// Elapsed returns how long a module handle has been played, summed from
// Poll deltas. Other kinds report 0.
func (s *Sound) Elapsed() time.Duration {
	if s == nil || s.module == nil {
		return 0
	}
	return s.module.elapsed
}
