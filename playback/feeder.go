// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
)

// feeder keeps a voice queue topped up with blocks decoded from a source.
// Looping feeders reopen the source when it ends.
type feeder struct {
	c      *Context
	voice  backend.Voice
	src    audio.Source
	open   func() (audio.Source, error)
	loop   bool
	frames int
	buf    []float32

	// cursor counts frames decoded since the source was (re)opened.
	cursor    int
	rewinds   int
	exhausted bool
	halted    bool
}

func newFeeder(c *Context, v backend.Voice, open func() (audio.Source, error), loop bool, frames int) (*feeder, error) {
	src, err := open()
	if err != nil {
		return nil, err
	}
	return &feeder{
		c:      c,
		voice:  v,
		src:    src,
		open:   open,
		loop:   loop,
		frames: frames,
	}, nil
}

// fill queues up to n blocks and returns how many were queued.
func (f *feeder) fill(n int) (int, error) {
	queued := 0
	for queued < n && !f.exhausted {
		pcm, err := f.readBlock()
		if err != nil {
			return queued, err
		}
		if pcm == nil {
			break
		}
		if err := f.voice.Enqueue(pcm); err != nil {
			return queued, fmt.Errorf("enqueue: %w", err)
		}
		queued++
	}
	if queued > 0 {
		f.c.metrics.StreamRefills.Add(context.Background(), int64(queued))
	}
	return queued, nil
}

// readBlock decodes at most one block. A looping source that ends is
// rewound and the block ends at the loop point. It returns nil when no
// frames were available.
func (f *feeder) readBlock() (*audio.PCM, error) {
	format := f.src.Format()
	channels := format.Channels
	if channels < 1 {
		return nil, fmt.Errorf("%w: %w", ErrDecode, audio.ErrInvalidFormat)
	}

	need := f.frames * channels
	if cap(f.buf) < need {
		f.buf = make([]float32, need)
	}
	buf := f.buf[:need]

	n := 0
	rewound := false
	for n < need {
		got, err := f.src.ReadSamples(buf[n:])
		got -= got % channels
		n += got
		f.cursor += got / channels

		if errors.Is(err, io.EOF) {
			if !f.loop || (rewound && n == 0) {
				f.exhausted = true
				break
			}
			if err := f.rewind(); err != nil {
				return nil, err
			}
			rewound = true
			if n > 0 {
				break
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if got == 0 {
			break
		}
	}

	if n == 0 {
		return nil, nil
	}
	return &audio.PCM{
		SampleRate: format.SampleRate,
		Channels:   channels,
		Samples:    slices.Clone(buf[:n]),
	}, nil
}

func (f *feeder) rewind() error {
	src, err := f.open()
	if err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	_ = f.src.Close()
	f.src = src
	f.cursor = 0
	f.rewinds++
	return nil
}

// refill drops played blocks, tops the queue up to window blocks and
// restarts a voice that ran dry. It reports true once the source is
// exhausted and everything queued has played.
func (f *feeder) refill(window int) (bool, error) {
	v := f.voice
	v.Unqueue()
	drained := !v.Playing()

	if _, err := f.fill(window - v.Queued()); err != nil {
		return false, err
	}
	if !drained {
		return false, nil
	}
	if v.Queued() > 0 {
		f.c.metrics.StreamUnderruns.Add(context.Background(), 1)
		v.Play()
		return false, nil
	}
	return f.exhausted, nil
}

// halt stops the voice, drops its queue and closes the source.
func (f *feeder) halt() {
	if f.halted {
		return
	}
	f.halted = true
	f.voice.Stop()
	f.voice.Unqueue()
	if err := f.src.Close(); err != nil {
		f.c.log.Error("playback: close source", "err", err)
	}
}
