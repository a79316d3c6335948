// SPDX-License-Identifier: EPL-2.0

// Package oto plays the software mixer through github.com/ebitengine/oto/v3.
//
// oto allows a single context per process, so only one Backend should be
// opened at a time.
package oto

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audplay/backend"
	"github.com/ik5/audplay/backend/mixer"
)

var ErrDevice = errors.New("audio device unavailable")

// DefaultBufferSize keeps latency low without starving slower drivers.
const DefaultBufferSize = 50 * time.Millisecond

type Options struct {
	SampleRate int
	Channels   int
	BufferSize time.Duration
}

// Backend embeds the mixer for voices and buffers and owns the device
// player that pulls from it.
type Backend struct {
	*mixer.Mixer

	bufferSize time.Duration
	mutex      sync.Mutex
	ctx        *oto.Context
	player     *oto.Player
}

func New(opts Options) *Backend {
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	return &Backend{
		Mixer:      mixer.New(backend.Format{SampleRate: opts.SampleRate, Channels: opts.Channels}),
		bufferSize: opts.BufferSize,
	}
}

// Open creates the oto context, waits until the driver is ready and starts
// pulling from the mixer. A second call is a no-op.
func (b *Backend) Open() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player != nil {
		return nil
	}
	if err := b.Mixer.Open(); err != nil {
		return fmt.Errorf("%w", err)
	}

	format := b.Format()
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   b.bufferSize,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}
	<-ready

	b.ctx = ctx
	b.player = ctx.NewPlayer(b.Mixer)
	b.player.Play()
	return nil
}

func (b *Backend) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	var errs []error
	if b.player != nil {
		errs = append(errs, b.player.Close())
		b.player = nil
	}
	if b.ctx != nil {
		errs = append(errs, b.ctx.Suspend())
		b.ctx = nil
	}
	errs = append(errs, b.Mixer.Close())
	return errors.Join(errs...)
}
