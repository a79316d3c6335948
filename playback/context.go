// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/metric"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
	"github.com/ik5/audplay/formats"
	"github.com/ik5/audplay/internal/observe"
)

// Context is the process audio state: the backend, the channel pool, the
// asset cache, the active music source and the volume switches. Construct
// one with [New], call [Context.Init] once, and drive it with
// [Context.Poll] every tick.
//
// A Context is not safe for concurrent use; hosts calling it from more than
// one goroutine must serialize the calls.
type Context struct {
	backend  backend.Backend
	registry *audio.Registry
	loader   Loader
	log      *slog.Logger
	metrics  *observe.Metrics

	meterProvider metric.MeterProvider
	numChannels   int
	streamBuffers int
	streamFrames  int
	reset         ResetMode
	normalize     bool

	initialized bool
	healthy     bool
	closed      bool

	soundsOn      bool
	musicOn       bool
	soundVolume   float32
	musicVolume   float32
	lastMusicGain float32
	paused        bool

	deferredLoading bool

	channels []*channel
	tick     uint64

	cache    *assetCache
	deferred *DeferredQueue

	// active owns the music channel. At most one source is active.
	active musicSource
}

// New returns an uninitialised context on top of b. A nil reg selects
// every built-in decoder.
func New(b backend.Backend, reg *audio.Registry, opts ...Option) *Context {
	if reg == nil {
		reg = formats.NewRegistry()
	}
	c := &Context{
		backend:       b,
		registry:      reg,
		loader:        NewFSLoader(os.DirFS(".")),
		log:           slog.Default(),
		numChannels:   DefaultChannels,
		streamBuffers: DefaultStreamBuffers,
		streamFrames:  DefaultStreamFrames,
		soundsOn:      true,
		musicOn:       true,
		soundVolume:   1,
		musicVolume:   1,
		lastMusicGain: 1,
		cache:         newAssetCache(),
	}
	for _, opt := range opts {
		opt(c)
	}

	met, err := observe.NewMetrics(c.meterProvider)
	if err != nil {
		c.log.Error("playback: create metrics", "err", err)
		met = observe.Noop()
	}
	c.metrics = met
	c.deferred = &DeferredQueue{c: c}
	return c
}

// Init opens the backend and creates one voice per channel. It runs once;
// later calls, and calls after Close, do nothing. On failure the context stays inert: loads return
// null handles and every other call is a no-op. Use Healthy to check.
func (c *Context) Init() {
	if c.initialized || c.closed {
		return
	}
	c.initialized = true

	if err := c.open(); err != nil {
		c.log.Error("playback: audio disabled",
			"err", fmt.Errorf("%w: %w", ErrBackendUnavailable, err))
		return
	}
	c.healthy = true
	c.log.Debug("playback: initialised", "channels", c.numChannels,
		"rate", c.backend.Format().SampleRate)
}

func (c *Context) open() error {
	if c.backend == nil {
		return errors.New("no backend")
	}
	if err := c.backend.Open(); err != nil {
		return err
	}

	c.channels = make([]*channel, c.numChannels)
	for i := range c.channels {
		v, err := c.backend.NewVoice()
		if err != nil {
			c.closeVoices()
			return errors.Join(fmt.Errorf("voice %d: %w", i, err), c.backend.Close())
		}
		c.channels[i] = &channel{index: i, voice: v}
	}
	return nil
}

func (c *Context) closeVoices() {
	for _, ch := range c.channels {
		if ch != nil && ch.voice != nil {
			ch.voice.Stop()
			_ = ch.voice.Close()
			ch.voice = nil
		}
	}
}

// Close stops all playback and releases voices, cached buffers and the
// backend. The context is inert afterwards.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if !c.healthy {
		return nil
	}
	c.healthy = false

	c.deactivateMusic()
	c.closeVoices()
	err := c.cache.close()
	if cerr := c.backend.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

// Healthy reports whether the backend initialised and the context has not
// been closed.
func (c *Context) Healthy() bool { return c.healthy }

// SetSoundsOn enables or disables effects. Disabling stops every playing
// effect.
func (c *Context) SetSoundsOn(on bool) {
	if !c.healthy {
		return
	}
	c.soundsOn = on
	if on {
		return
	}
	for _, ch := range c.channels[1:] {
		if ch.lease != nil && !ch.lease.released {
			ch.voice.Stop()
			ch.lease.stopped = true
		}
	}
}

func (c *Context) SoundsOn() bool { return c.soundsOn }

// SetMusicOn enables or disables music. Disabling pauses the active music
// source, enabling resumes it.
func (c *Context) SetMusicOn(on bool) {
	if !c.healthy {
		return
	}
	before := c.held()
	c.musicOn = on
	c.updateHold(before)
}

func (c *Context) MusicOn() bool { return c.musicOn }

// SetSoundVolume sets the effect volume scale; negative values clamp to 0.
// It applies to effects started afterwards.
func (c *Context) SetSoundVolume(v float32) {
	if !c.healthy {
		return
	}
	c.soundVolume = clampVolume(v)
}

func (c *Context) SoundVolume() float32 { return c.soundVolume }

// SetMusicVolume sets the music volume scale; negative values clamp to 0.
// The active music source is updated at once. A volume of 0 is reported
// back as 0 while the backend receives GainFloor.
func (c *Context) SetMusicVolume(v float32) {
	if !c.healthy {
		return
	}
	c.musicVolume = clampVolume(v)
	if c.active != nil {
		c.active.setGain(c.musicGain(c.lastMusicGain))
	}
}

func (c *Context) MusicVolume() float32 { return c.musicVolume }

// PauseMusic pauses whichever source owns the music channel.
func (c *Context) PauseMusic() {
	if !c.healthy {
		return
	}
	before := c.held()
	c.paused = true
	c.updateHold(before)
}

// ResumeMusic undoes PauseMusic.
func (c *Context) ResumeMusic() {
	if !c.healthy {
		return
	}
	before := c.held()
	c.paused = false
	c.updateHold(before)
}

func (c *Context) MusicPaused() bool { return c.paused }

// SetDeferredLoading makes LoadSoundEffect, LoadMusic and LoadModule return
// deferred handles instead of decoding at the call site.
func (c *Context) SetDeferredLoading(on bool) { c.deferredLoading = on }

func (c *Context) DeferredLoading() bool { return c.deferredLoading }

// Deferred returns the queue of unresolved deferred handles.
func (c *Context) Deferred() *DeferredQueue { return c.deferred }

// CacheLen returns the number of cached buffers.
func (c *Context) CacheLen() int { return c.cache.len() }

// Poll advances the context by one tick. It drives the active stream or
// module player with at most one refill, and nothing while music is paused.
func (c *Context) Poll(deltaMs int) {
	if !c.healthy {
		return
	}
	c.tick++
	if c.held() || c.active == nil {
		return
	}
	c.active.poll(deltaMs)
}

func (c *Context) held() bool { return c.paused || !c.musicOn }

func (c *Context) updateHold(before bool) {
	now := c.held()
	if c.active == nil || now == before {
		return
	}
	if now {
		c.active.pause()
	} else {
		c.active.resume()
	}
}

func (c *Context) musicGain(gain float32) float32 {
	return effectiveGain(gain, c.musicVolume)
}

// activateMusic records src as the music source. Callers deactivate the
// previous source before claiming the music channel.
func (c *Context) activateMusic(src musicSource) {
	c.active = src
	if c.held() {
		src.pause()
	}
}

func (c *Context) deactivateMusic() {
	if c.active != nil {
		c.active.stop()
		c.active = nil
	}
}

func (c *Context) release(src musicSource) {
	if c.active == src {
		c.active = nil
	}
}

func (c *Context) recordLoad(op, status string) {
	c.metrics.RecordLoad(context.Background(), op, status)
}
