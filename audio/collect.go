// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Normalize adapts src to the given device layout: a Resampler is inserted
// when the rates differ, and a MonoMixer when the device is mono and src is
// not. src is returned untouched when it already matches.
//
// A zero rate or channel count means "keep what the source has".
func Normalize(src Source, rate, channels int) Source {
	format := src.Format()
	if rate > 0 && format.SampleRate != rate {
		src = NewResampler(src, rate)
	}
	if channels == 1 && format.Channels > 1 {
		src = NewMonoMixer(src)
	}
	return src
}

// ReadAll drains src into a single PCM block. The source is not closed.
//
// bufferSize is the read granularity in samples; values below 1024 are
// raised to 1024.
func ReadAll(src Source, bufferSize int) (*PCM, error) {
	format := src.Format()
	if format.Channels < 1 || format.SampleRate < 1 {
		return nil, ErrInvalidFormat
	}

	bufferSize = max(bufferSize, 1024)
	bufferSize -= bufferSize % format.Channels

	pcm := &PCM{
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		Samples:    make([]float32, 0, format.SampleRate*format.Channels),
	}
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			pcm.Samples = append(pcm.Samples, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		// A source that makes no progress is treated as ended.
		if n == 0 {
			break
		}
	}

	// Drop a trailing partial frame.
	pcm.Samples = pcm.Samples[:len(pcm.Samples)-len(pcm.Samples)%format.Channels]
	return pcm, nil
}
