// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path"
	"strings"
	"sync"
)

// Format describes the PCM layout a Source produces.
type Format struct {
	// SampleRate of the PCM stream in Hz.
	SampleRate int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int
	// BitDepth of the encoded samples before conversion to float32.
	// Zero when the container has no fixed depth (e.g., Vorbis).
	BitDepth int
}

type Source interface {
	Format() Format
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// PCM is a fully decoded block of interleaved float32 samples.
type PCM struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames returns the number of sample frames held.
func (p *PCM) Frames() int {
	if p == nil || p.Channels == 0 {
		return 0
	}
	return len(p.Samples) / p.Channels
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs  map[string]Decoder
	aliases map[string]string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:  make(map[string]Decoder),
		aliases: make(map[string]string),
		mtx:     &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

// Alias makes ext resolve to the decoder registered for format.
func (r *Registry) Alias(ext, format string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.aliases[strings.ToLower(ext)] = strings.ToLower(format)
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	format = strings.ToLower(format)
	if alias, ok := r.aliases[format]; ok {
		format = alias
	}
	d, ok := r.codecs[format]
	return d, ok
}

// FormatOf derives the format key of ref from its extension.
// The key is resolved through registered aliases.
func (r *Registry) FormatOf(ref string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(ref), "."))
	if ext == "" {
		return "", false
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if alias, ok := r.aliases[ext]; ok {
		ext = alias
	}
	if _, ok := r.codecs[ext]; !ok {
		return "", false
	}
	return ext, true
}
