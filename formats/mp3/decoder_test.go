// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// mockMP3Reader serves PCM bytes, at most chunk bytes per Read.
type mockMP3Reader struct {
	sampleRate int
	data       []byte
	offset     int
	chunk      int
	err        error
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.data) {
		return 0, io.EOF
	}
	end := len(m.data)
	if m.chunk > 0 {
		end = min(end, m.offset+m.chunk)
	}
	n := copy(buf, m.data[m.offset:end])
	m.offset += n
	return n, nil
}

func pcmBytes(samples ...int16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

func TestDecoder_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"text":  []byte("definitely not an mpeg stream"),
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_Format(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockMP3Reader{sampleRate: 22050}}
	format := src.Format()
	if format.SampleRate != 22050 || format.Channels != 2 || format.BitDepth != 16 {
		t.Errorf("Format() = %+v, want 22050 Hz stereo 16-bit", format)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockMP3Reader{
		sampleRate: 44100,
		data:       pcmBytes(0, 16384, -16384, -32768),
	}}

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	want := []float32{0, 0.5, -0.5, -1}
	if n != len(want) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(want))
	}
	for i, w := range want {
		if dst[i] != w {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], w)
		}
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_OddByteReads(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockMP3Reader{
		sampleRate: 44100,
		data:       pcmBytes(16384, -16384, 8192),
		chunk:      3,
	}}

	var got []float32
	dst := make([]float32, 4)
	for {
		n, err := src.ReadSamples(dst)
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := []float32{0.5, -0.5, 0.25}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("sample %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("bad frame")
	src := &source{dec: &mockMP3Reader{err: readErr}}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, readErr) {
		t.Errorf("ReadSamples() error = %v, want %v", err, readErr)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	data := make([]byte, 1<<16)
	dst := make([]float32, 4096)
	b.ReportAllocs()
	for b.Loop() {
		src := &source{dec: &mockMP3Reader{sampleRate: 44100, data: data}}
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
