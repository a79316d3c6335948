// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/ik5/audplay/backend"
)

type channel struct {
	index int
	voice backend.Voice
	lease *lease
}

// lease is one use of a channel. It is released once a liveness check
// finds the voice idle. A lease whose voice was never seen playing stays
// live for the tick it was acquired in, covering devices that report a
// started voice late.
type lease struct {
	ch        *channel
	tick      uint64
	confirmed bool
	released  bool
	// stopped is set by an explicit stop; the channel stays leased until
	// the voice reports idle.
	stopped bool
}

func (c *Context) acquire(ch *channel) *lease {
	l := &lease{ch: ch, tick: c.tick}
	ch.lease = l
	return l
}

func (c *Context) live(l *lease) bool {
	if l.released {
		return false
	}
	if l.ch.voice != nil && l.ch.voice.Playing() {
		l.confirmed = true
		return true
	}
	if !l.confirmed && l.tick == c.tick {
		return true
	}
	l.released = true
	return false
}

// owns reports whether l is still the current, unstopped lease of its
// channel.
func (c *Context) owns(l *lease) bool {
	return l != nil && l.ch.lease == l && !l.stopped && c.live(l)
}

// playing reports whether l still owns its channel and the voice reports
// playing right now. Unlike live there is no grace tick.
func (c *Context) playing(l *lease) bool {
	if l == nil || l.released || l.stopped || l.ch.lease != l || l.ch.voice == nil {
		return false
	}
	if !l.ch.voice.Playing() {
		return false
	}
	l.confirmed = true
	return true
}

// allocateEffect returns the lowest effect channel whose lease is
// released. Channel 0 is never returned.
func (c *Context) allocateEffect() (*channel, bool) {
	for _, ch := range c.channels[MusicChannel+1:] {
		if ch.voice == nil {
			continue
		}
		if ch.lease == nil || !c.live(ch.lease) {
			return ch, true
		}
	}
	return nil, false
}

// claimMusic hands out the music channel with no settings left over from
// its previous owner.
func (c *Context) claimMusic() (*channel, bool) {
	ch := c.channels[MusicChannel]

	switch c.reset {
	case ResetInPlace:
		if ch.voice != nil {
			ch.voice.Stop()
			ch.voice.Unqueue()
			ch.voice.Apply(backend.DefaultParams())
		}
	default:
		if ch.voice != nil {
			ch.voice.Stop()
			if err := ch.voice.Close(); err != nil {
				c.log.Error("playback: close music voice", "err", err)
			}
			ch.voice = nil
		}
		v, err := c.backend.NewVoice()
		if err != nil {
			c.log.Error("playback: recreate music voice", "channel", MusicChannel, "err", err)
			ch.lease = nil
			return nil, false
		}
		ch.voice = v
	}

	if ch.voice == nil {
		return nil, false
	}
	c.acquire(ch)
	return ch, true
}
