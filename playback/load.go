// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
	"github.com/ik5/audplay/internal/observe"
)

// readChunk is the ReadAll granularity for buffered decodes.
const readChunk = 4096

// LoadSoundEffect decodes ref into a cached buffer and returns an effect
// handle. Repeated loads of the same ref share one buffer.
func (c *Context) LoadSoundEffect(ref string) (*Sound, error) {
	return c.loadSound(KindEffect, ref, "", true)
}

// LoadMusic decodes ref into a cached buffer played on the music channel.
func (c *Context) LoadMusic(ref string) (*Sound, error) {
	return c.loadSound(KindMusic, ref, "", true)
}

// LoadStreaming checks that ref exists and has a known format. Decoding
// happens block by block once the handle plays.
func (c *Context) LoadStreaming(ref string) (*Sound, error) {
	return c.loadSound(KindStream, ref, "", false)
}

// LoadModule reads a tracker module into memory. Each play renders it from
// the start on the music channel.
func (c *Context) LoadModule(ref string) (*Sound, error) {
	return c.loadSound(KindModule, ref, "", true)
}

// RequestDeferred records an effect load without decoding. format may be
// empty to derive it from ref.
func (c *Context) RequestDeferred(ref, format string) *Sound {
	return c.requestDeferred(KindEffect, ref, format)
}

// RequestDeferredMusic records a music load without decoding.
func (c *Context) RequestDeferredMusic(ref, format string) *Sound {
	return c.requestDeferred(KindMusic, ref, format)
}

func (c *Context) loadSound(kind Kind, ref, format string, deferrable bool) (*Sound, error) {
	if deferrable && c.deferredLoading && !c.failed() {
		return c.requestDeferred(kind, ref, format), nil
	}
	if !c.initialized && !c.closed {
		c.log.Error("playback: load before Init, deferred until first use",
			"op", kind.String(), "ref", ref)
		return c.requestDeferred(kind, ref, format), nil
	}
	if !c.healthy {
		return c.null(ref), nil
	}

	s := &Sound{c: c, kind: kind, ref: ref, format: format}
	if err := c.load(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Context) requestDeferred(kind Kind, ref, format string) *Sound {
	if c.failed() {
		return c.null(ref)
	}
	s := &Sound{c: c, kind: KindDeferred, target: kind, ref: ref, format: format}
	c.deferred.push(s)
	return s
}

// failed reports whether the context can never play again.
func (c *Context) failed() bool {
	return c.closed || (c.initialized && !c.healthy)
}

func (c *Context) null(ref string) *Sound {
	return &Sound{c: c, kind: KindNull, ref: ref}
}

// load fills the payload of s for its kind, recording the outcome.
func (c *Context) load(s *Sound) error {
	op := s.kind.String()

	var err error
	switch s.kind {
	case KindEffect, KindMusic:
		s.buf, err = c.loadBuffer(s.ref, s.format)
	case KindStream:
		s.dec, err = c.probe(s.ref, s.format)
	case KindModule:
		s.dec, s.data, err = c.loadModuleData(s.ref, s.format)
	default:
		err = fmt.Errorf("cannot load %s handle", op)
	}

	if err != nil {
		status := observe.StatusError
		if errors.Is(err, ErrNotFound) {
			status = observe.StatusNotFound
		}
		c.recordLoad(op, status)
		c.log.Error("playback: load failed", "op", op, "ref", s.ref, "err", err)
		return &LoadError{Op: op, Ref: s.ref, Err: err}
	}
	c.recordLoad(op, observe.StatusOK)
	return nil
}

func (c *Context) decoderFor(ref, format string) (audio.Decoder, error) {
	if format == "" {
		f, ok := c.registry.FormatOf(ref)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path.Ext(ref))
		}
		format = f
	}
	dec, ok := c.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return dec, nil
}

func (c *Context) openResource(ref string) (io.ReadCloser, error) {
	rc, err := c.loader.Open(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	return rc, nil
}

// resourceSource closes the underlying resource with the decoder.
type resourceSource struct {
	audio.Source
	rc io.Closer
}

func (s *resourceSource) Close() error {
	return errors.Join(s.Source.Close(), s.rc.Close())
}

// adapt converts src to the device layout when normalization is on.
func (c *Context) adapt(src audio.Source) audio.Source {
	if !c.normalize {
		return src
	}
	format := c.backend.Format()
	return audio.Normalize(src, format.SampleRate, format.Channels)
}

func (c *Context) openSource(ref string, dec audio.Decoder) (audio.Source, error) {
	rc, err := c.openResource(ref)
	if err != nil {
		return nil, err
	}
	src, err := dec.Decode(rc)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &resourceSource{Source: c.adapt(src), rc: rc}, nil
}

func (c *Context) decodeAll(ref string, dec audio.Decoder) (*audio.PCM, error) {
	start := time.Now()

	src, err := c.openSource(ref, dec)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	pcm, err := audio.ReadAll(src, readChunk)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	c.metrics.DecodeDuration.Record(context.Background(), time.Since(start).Seconds())
	return pcm, nil
}

func (c *Context) loadBuffer(ref, format string) (backend.Buffer, error) {
	if buf, ok := c.cache.get(ref); ok {
		return buf, nil
	}

	dec, err := c.decoderFor(ref, format)
	if err != nil {
		return nil, err
	}
	pcm, err := c.decodeAll(ref, dec)
	if err != nil {
		return nil, err
	}
	buf, err := c.backend.NewBuffer(pcm)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	c.cache.put(ref, buf)
	return buf, nil
}

func (c *Context) probe(ref, format string) (audio.Decoder, error) {
	dec, err := c.decoderFor(ref, format)
	if err != nil {
		return nil, err
	}
	rc, err := c.openResource(ref)
	if err != nil {
		return nil, err
	}
	return dec, rc.Close()
}

func (c *Context) loadModuleData(ref, format string) (audio.Decoder, []byte, error) {
	dec, err := c.decoderFor(ref, format)
	if err != nil {
		return nil, nil, err
	}
	rc, err := c.openResource(ref)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	_ = src.Close()
	return dec, data, nil
}
