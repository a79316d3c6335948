// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
)

// Kind tags the variant a Sound currently holds.
type Kind int

const (
	// KindNull is the inert handle handed out by a context without a
	// working backend, and the result of a failed deferred resolution.
	KindNull Kind = iota
	KindEffect
	KindMusic
	KindStream
	KindModule
	// KindDeferred has not been decoded yet. It turns into the kind it was
	// requested as exactly once.
	KindDeferred
)

func (k Kind) String() string {
	switch k {
	case KindEffect:
		return "effect"
	case KindMusic:
		return "music"
	case KindStream:
		return "stream"
	case KindModule:
		return "module"
	case KindDeferred:
		return "deferred"
	}
	return "null"
}

// Sound is a playback handle. Handles hold no channel until played; the
// variant is dispatched on kind.
type Sound struct {
	c      *Context
	kind   Kind
	target Kind // kind a deferred handle resolves to
	ref    string
	format string

	buf  backend.Buffer // effect, music
	dec  audio.Decoder  // stream, module
	data []byte         // module

	lease   *lease
	track   *musicTrack
	session *streamSession
	module  *modulePlayer
}

func (s *Sound) Kind() Kind {
	if s == nil {
		return KindNull
	}
	return s.kind
}

func (s *Sound) Ref() string {
	if s == nil {
		return ""
	}
	return s.ref
}

// Resolved reports whether the handle is no longer deferred.
func (s *Sound) Resolved() bool {
	return s == nil || s.kind != KindDeferred
}

// Play starts the sound at the origin. It reports whether playback
// started; an effect dropped for lack of a free channel returns false.
func (s *Sound) Play(pitch, gain float32, loop bool) bool {
	return s.PlayAtVelocity(pitch, gain, loop, [3]float32{}, [3]float32{})
}

// PlayAt starts the sound at position x, y, z.
func (s *Sound) PlayAt(pitch, gain float32, loop bool, x, y, z float32) bool {
	return s.PlayAtVelocity(pitch, gain, loop, [3]float32{x, y, z}, [3]float32{})
}

// PlayAtVelocity starts the sound with position and velocity hints.
func (s *Sound) PlayAtVelocity(pitch, gain float32, loop bool, pos, vel [3]float32) bool {
	if s == nil {
		return false
	}
	c := s.c
	if c.closed {
		if s.kind != KindNull {
			c.log.Error("playback: play on closed context", "ref", s.ref)
		}
		return false
	}
	if !c.healthy {
		return false
	}
	if !c.resolve(s) {
		return false
	}

	if pitch <= 0 {
		pitch = 1
	}
	p := backend.Params{Pitch: pitch, Gain: gain, Loop: loop, Position: pos, Velocity: vel}

	switch s.kind {
	case KindEffect:
		return c.playEffect(s, p)
	case KindMusic:
		return c.playMusic(s, p)
	case KindStream:
		return c.playStream(s, p)
	case KindModule:
		return c.playModule(s, p)
	}
	return false
}

// IsPlaying reports whether this handle's playback is live. An unresolved
// deferred handle reports false without being resolved.
func (s *Sound) IsPlaying() bool {
	if s == nil || !s.c.healthy {
		return false
	}
	c := s.c

	switch s.kind {
	case KindEffect:
		return c.playing(s.lease)
	case KindMusic:
		return s.track != nil && c.active == musicSource(s.track) && s.track.playing()
	case KindStream:
		return s.session != nil && c.active == musicSource(s.session) && s.session.running()
	case KindModule:
		return s.module != nil && c.active == musicSource(s.module) && s.module.running()
	}
	return false
}

// Stop halts this handle's playback. Effects stop only while they still own
// their channel; music sources stop only while they own the music channel.
func (s *Sound) Stop() {
	if s == nil || !s.c.healthy {
		return
	}
	c := s.c
	if !c.resolve(s) {
		return
	}

	switch s.kind {
	case KindEffect:
		if c.owns(s.lease) {
			s.lease.ch.voice.Stop()
			s.lease.stopped = true
		}
	case KindMusic:
		if s.track != nil && c.active == musicSource(s.track) {
			c.deactivateMusic()
		}
	case KindStream:
		if s.session != nil && c.active == musicSource(s.session) {
			c.deactivateMusic()
		}
	case KindModule:
		if s.module != nil && c.active == musicSource(s.module) {
			c.deactivateMusic()
		}
	}
}

// State returns the streaming session state of a stream handle; other
// kinds report StreamIdle.
func (s *Sound) State() StreamState {
	if s == nil || s.session == nil {
		return StreamIdle
	}
	return s.session.state
}

// Cursor returns the frames decoded since the stream last started or
// rewound.
func (s *Sound) Cursor() int {
	if s == nil || s.session == nil || s.session.feed == nil {
		return 0
	}
	return s.session.feed.cursor
}

// Rewinds returns how many times a looping stream wrapped to its start.
func (s *Sound) Rewinds() int {
	if s == nil || s.session == nil || s.session.feed == nil {
		return 0
	}
	return s.session.feed.rewinds
}

func (c *Context) playEffect(s *Sound, p backend.Params) bool {
	if !c.soundsOn {
		return false
	}
	ch, ok := c.allocateEffect()
	if !ok {
		c.metrics.EffectsDropped.Add(context.Background(), 1)
		c.log.Debug("playback: effect dropped", "ref", s.ref)
		return false
	}

	v := ch.voice
	v.Stop()
	v.Bind(s.buf)
	p.Gain = effectiveGain(p.Gain, c.soundVolume)
	v.Apply(p)
	v.Play()
	s.lease = c.acquire(ch)

	c.metrics.EffectsPlayed.Add(context.Background(), 1)
	return true
}

func (c *Context) playMusic(s *Sound, p backend.Params) bool {
	c.deactivateMusic()
	ch, ok := c.claimMusic()
	if !ok {
		return false
	}

	c.lastMusicGain = p.Gain
	p.Gain = c.musicGain(p.Gain)
	v := ch.voice
	v.Bind(s.buf)
	v.Apply(p)
	v.Play()

	s.track = &musicTrack{c: c, ch: ch, lease: ch.lease}
	c.activateMusic(s.track)
	return true
}
