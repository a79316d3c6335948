// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"sync"

	"github.com/ik5/audplay/audio"
)

// CountingDecoder ignores its input and hands out constant sources of a fixed
// length, recording every Decode call.
type CountingDecoder struct {
	SampleRate int
	Channels   int
	Frames     int
	Value      float32
	// Err, when set, is returned from Decode instead of a source.
	Err error

	mu      sync.Mutex
	calls   int
	sources []*MockSource
}

func (d *CountingDecoder) Decode(r io.Reader) (audio.Source, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls++
	if d.Err != nil {
		return nil, d.Err
	}
	// Consume the stream like a real decoder would.
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}

	rate, channels := d.SampleRate, d.Channels
	if rate == 0 {
		rate = 44100
	}
	if channels == 0 {
		channels = 2
	}
	src := NewConstantSource(rate, channels, d.Frames, d.Value)
	d.sources = append(d.sources, src)
	return src, nil
}

// Calls returns the number of Decode invocations so far.
func (d *CountingDecoder) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// Sources returns every source handed out, oldest first.
func (d *CountingDecoder) Sources() []*MockSource {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*MockSource(nil), d.sources...)
}

// FailingSource serves its first read and fails every read after it.
type FailingSource struct {
	*MockSource
	Err error
}

func (s *FailingSource) ReadSamples(dst []float32) (int, error) {
	if s.Generated() > 0 {
		return 0, s.Err
	}
	n, _ := s.MockSource.ReadSamples(dst)
	return n, nil
}
