// SPDX-License-Identifier: EPL-2.0

package xm

import (
	"fmt"
	"io"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/utils"
	"github.com/quasilyte/xm"
	"github.com/quasilyte/xm/xmfile"
)

// The xm stream renders 16-bit little-endian stereo at a fixed rate.
const (
	SampleRate = 44100
	channels   = 2
	bitDepth   = 16
)

// pcmStream is the part of xm.Stream used by source, so tests can replace
// it.
type pcmStream interface {
	Read(b []byte) (int, error)
}

type source struct {
	st   pcmStream
	buf  []byte
	tail []byte
}

func (s *source) Format() audio.Format {
	return audio.Format{SampleRate: SampleRate, Channels: channels, BitDepth: bitDepth}
}

func (s *source) Close() error { return nil }

// ReadSamples renders the module until the song ends. The stream does not
// loop on its own; the playback core reopens the module to repeat it.
func (s *source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%channels]
	need := len(dst) * 2
	if need == 0 {
		return 0, nil
	}
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	held := copy(s.buf, s.tail)
	s.tail = s.tail[:0]

	n, err := s.st.Read(s.buf[held:])
	n += held
	if rem := n % (channels * 2); rem != 0 && err == nil {
		s.tail = append(s.tail, s.buf[n-rem:n]...)
		n -= rem
	}

	samples := utils.LE16ToFloat32(dst, s.buf[:n])
	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}
	return samples, err
}

// Decoder parses Extended Module files and renders them with
// github.com/quasilyte/xm.
type Decoder struct {
	// Parser options; the zero value parses standard XM files.
	Parser xmfile.ParserConfig
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading xm data: %w", err)
	}

	module, err := xmfile.NewParser(d.Parser).ParseFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotXMFile, err)
	}

	stream := xm.NewStream()
	if err := stream.LoadModule(module, xm.LoadModuleConfig{}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedModule, err)
	}

	return &source{st: stream, buf: make([]byte, 8192)}, nil
}
