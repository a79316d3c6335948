// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
)

// StreamState is the lifecycle of a streaming session.
type StreamState int

const (
	StreamIdle StreamState = iota
	StreamPriming
	StreamPlaying
	StreamPaused
	// StreamStopped is terminal; playing the handle again starts a new
	// session.
	StreamStopped
)

func (s StreamState) String() string {
	switch s {
	case StreamPriming:
		return "priming"
	case StreamPlaying:
		return "playing"
	case StreamPaused:
		return "paused"
	case StreamStopped:
		return "stopped"
	}
	return "idle"
}

// streamSession plays one long sound on the music channel through a
// rolling window of decoded blocks, refilled once per poll.
type streamSession struct {
	c      *Context
	ref    string
	ch     *channel
	window int
	state  StreamState
	feed   *feeder
}

func (c *Context) playStream(s *Sound, p backend.Params) bool {
	c.deactivateMusic()
	ch, ok := c.claimMusic()
	if !ok {
		return false
	}
	c.lastMusicGain = p.Gain

	sess := &streamSession{c: c, ref: s.ref, ch: ch, window: c.streamBuffers}
	s.session = sess
	open := func() (audio.Source, error) {
		return c.openSource(s.ref, s.dec)
	}
	if !sess.prime(open, p, c.streamFrames) {
		return false
	}
	c.activateMusic(sess)
	return true
}

// prime decodes the initial window and starts the voice.
func (s *streamSession) prime(open func() (audio.Source, error), p backend.Params, frames int) bool {
	s.state = StreamPriming

	feed, err := newFeeder(s.c, s.ch.voice, open, p.Loop, frames)
	if err != nil {
		s.c.log.Error("playback: stream priming failed", "ref", s.ref, "err", err)
		s.state = StreamStopped
		return false
	}
	s.feed = feed

	n, err := feed.fill(s.window)
	if err != nil || n == 0 {
		s.c.log.Error("playback: stream priming failed", "ref", s.ref, "blocks", n, "err", err)
		s.halt()
		return false
	}

	// Looping is done by the feeder; the voice only plays its queue.
	p.Loop = false
	p.Gain = s.c.musicGain(p.Gain)
	s.ch.voice.Apply(p)
	s.ch.voice.Play()
	s.state = StreamPlaying
	s.c.log.Debug("playback: stream started", "ref", s.ref, "state", s.state)
	return true
}

func (s *streamSession) poll(int) {
	if s.state != StreamPlaying {
		return
	}
	done, err := s.feed.refill(s.window)
	if err != nil {
		s.c.log.Error("playback: stream refill failed", "ref", s.ref, "err", err)
		s.halt()
		return
	}
	if done {
		s.c.log.Debug("playback: stream finished", "ref", s.ref)
		s.halt()
	}
}

func (s *streamSession) pause() {
	if s.state != StreamPlaying {
		return
	}
	s.ch.voice.Pause()
	s.state = StreamPaused
}

func (s *streamSession) resume() {
	if s.state != StreamPaused {
		return
	}
	s.state = StreamPlaying
	s.ch.voice.Play()
}

func (s *streamSession) stop() {
	if s.state == StreamStopped {
		return
	}
	s.halt()
}

func (s *streamSession) setGain(gain float32) {
	if s.state != StreamStopped {
		s.ch.voice.SetGain(gain)
	}
}

func (s *streamSession) running() bool {
	switch s.state {
	case StreamPriming, StreamPlaying, StreamPaused:
		return true
	}
	return false
}

func (s *streamSession) halt() {
	if s.feed != nil {
		s.feed.halt()
	}
	s.state = StreamStopped
	s.c.release(s)
}
