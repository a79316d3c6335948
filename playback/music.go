// SPDX-License-Identifier: EPL-2.0

package playback

// musicSource is whatever owns the music channel: a buffered track, a
// streaming session or a module player.
type musicSource interface {
	poll(deltaMs int)
	pause()
	resume()
	stop()
	setGain(gain float32)
}

// musicTrack is a buffered music buffer bound to the music channel.
type musicTrack struct {
	c      *Context
	ch     *channel
	lease  *lease
	paused bool
}

func (t *musicTrack) poll(int) {}

func (t *musicTrack) pause() {
	if t.paused || !t.c.live(t.lease) {
		return
	}
	t.ch.voice.Pause()
	t.paused = true
}

func (t *musicTrack) resume() {
	if !t.paused {
		return
	}
	t.paused = false
	t.ch.voice.Play()
}

func (t *musicTrack) stop() {
	t.ch.voice.Stop()
	t.lease.stopped = true
	t.paused = false
}

func (t *musicTrack) setGain(gain float32) {
	t.ch.voice.SetGain(gain)
}

func (t *musicTrack) playing() bool {
	return t.paused || t.c.playing(t.lease)
}
