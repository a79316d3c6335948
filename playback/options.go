// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultChannels = 8
	// MusicChannel is reserved for music, streams and modules.
	MusicChannel = 0

	DefaultStreamBuffers = 3
	DefaultStreamFrames  = 4096

	DefaultModuleBuffers = 3
	DefaultModuleFrames  = 2048
)

// ResetMode selects how the music channel is cleaned when a new source
// claims it.
type ResetMode int

const (
	// ResetRecreate closes the music voice and creates a new one.
	ResetRecreate ResetMode = iota
	// ResetInPlace stops the voice, drops its queue and applies default
	// parameters.
	ResetInPlace
)

func (m ResetMode) String() string {
	if m == ResetInPlace {
		return "in_place"
	}
	return "recreate"
}

// Option configures a [Context] during construction.
type Option func(*Context)

func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLoader sets where references are opened from. The default loader
// reads from the working directory.
func WithLoader(l Loader) Option {
	return func(c *Context) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithChannels sets the pool size including the music channel. Values
// below 2 are raised to 2.
func WithChannels(n int) Option {
	return func(c *Context) {
		c.numChannels = max(n, 2)
	}
}

// WithStreamWindow sets how many blocks of how many frames a streaming
// session keeps queued.
func WithStreamWindow(buffers, frames int) Option {
	return func(c *Context) {
		if buffers > 0 {
			c.streamBuffers = buffers
		}
		if frames > 0 {
			c.streamFrames = frames
		}
	}
}

// WithMeterProvider records metrics through mp instead of the no-op
// provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Context) {
		c.meterProvider = mp
	}
}

func WithVoiceReset(m ResetMode) Option {
	return func(c *Context) {
		c.reset = m
	}
}

// WithNormalize converts every decoded sound to the device rate and channel
// layout before it reaches the backend.
func WithNormalize(on bool) Option {
	return func(c *Context) {
		c.normalize = on
	}
}
