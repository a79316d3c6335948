// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package portaudio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/ik5/audplay/backend"
	"github.com/ik5/audplay/backend/mixer"
)

var ErrDevice = errors.New("portaudio device unavailable")

// DefaultFramesPerBuffer is the callback block size.
const DefaultFramesPerBuffer = 512

type Options struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

// Backend embeds the mixer and renders it from the PortAudio callback.
type Backend struct {
	*mixer.Mixer

	frames int
	mutex  sync.Mutex
	stream *portaudio.Stream
}

func New(opts Options) *Backend {
	if opts.FramesPerBuffer <= 0 {
		opts.FramesPerBuffer = DefaultFramesPerBuffer
	}
	return &Backend{
		Mixer:  mixer.New(backend.Format{SampleRate: opts.SampleRate, Channels: opts.Channels}),
		frames: opts.FramesPerBuffer,
	}
}

func (b *Backend) Open() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.stream != nil {
		return nil
	}
	if err := b.Mixer.Open(); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}

	format := b.Format()
	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), b.frames, b.process)
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}
	b.stream = stream
	return nil
}

// process runs on the PortAudio thread with an interleaved output block.
func (b *Backend) process(out []float32) {
	b.Mix(out)
}

func (b *Backend) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	var errs []error
	if b.stream != nil {
		errs = append(errs, b.stream.Stop(), b.stream.Close(), portaudio.Terminate())
		b.stream = nil
	}
	errs = append(errs, b.Mixer.Close())
	return errors.Join(errs...)
}
