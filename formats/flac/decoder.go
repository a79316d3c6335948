// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	"github.com/ik5/audplay/audio"
)

// beep streams stereo pairs; mono files come out with both sides equal.
const channels = 2

// streamer is the part of beep.StreamSeekCloser used by source, so tests
// can replace it.
type streamer interface {
	Stream(samples [][2]float64) (int, bool)
	Err() error
	Close() error
}

type source struct {
	st     streamer
	format audio.Format
	pairs  [][2]float64
	done   bool
}

func (s *source) Format() audio.Format { return s.format }

func (s *source) Close() error {
	if err := s.st.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	frames := len(dst) / channels
	if frames == 0 {
		return 0, nil
	}
	if cap(s.pairs) < frames {
		s.pairs = make([][2]float64, frames)
	}
	s.pairs = s.pairs[:frames]

	n, ok := s.st.Stream(s.pairs)
	for i, p := range s.pairs[:n] {
		dst[2*i] = float32(p[0])
		dst[2*i+1] = float32(p[1])
	}
	if !ok {
		s.done = true
		if err := s.st.Err(); err != nil {
			return n * channels, fmt.Errorf("%w", err)
		}
		return n * channels, io.EOF
	}
	return n * channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	st, format, err := beepflac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return newSource(st, format), nil
}

func newSource(st streamer, format beep.Format) *source {
	return &source{
		st: st,
		format: audio.Format{
			SampleRate: int(format.SampleRate),
			Channels:   channels,
			BitDepth:   format.Precision * 8,
		},
	}
}
