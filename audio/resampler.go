// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audplay/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples and preserves the channel count.
// When downsampling, a one-pole low-pass filter smooths the input.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// window holds 4 consecutive frames: t-1, t0, t+1, t+2. Slots past the
	// end of the source repeat the last real frame and are marked unreal.
	window [4][]float32
	real   [4]bool
	primed bool
	eof    bool
	done   bool

	pos    float64 // fractional position between window[1] and window[2]
	srcBuf []float32

	lowPass bool
	alpha   float32
	state   []float32
}

// NewResampler converts src to dstRate.
func NewResampler(src Source, dstRate int) *Resampler {
	format := src.Format()
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    float64(format.SampleRate) / float64(dstRate),
		channels: format.Channels,
		srcBuf:   make([]float32, max(format.Channels, 1)),
		state:    make([]float32, format.Channels),
	}
	if r.ratio > 1.0 {
		r.lowPass = true
		r.alpha = 0.5
	}
	for i := range r.window {
		r.window[i] = make([]float32, format.Channels)
	}
	return r
}

func (r *Resampler) Format() Format {
	format := r.src.Format()
	format.SampleRate = r.dstRate
	return format
}

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// fill loads the next source frame into slot, or repeats the previous slot
// once the source is exhausted.
func (r *Resampler) fill(slot int) error {
	if !r.eof {
		n, err := r.src.ReadSamples(r.srcBuf[:r.channels])
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return fmt.Errorf("%w", err)
		}
		if n >= r.channels {
			copy(r.window[slot], r.srcBuf[:r.channels])
			if r.lowPass {
				for c := range r.channels {
					v := r.alpha*r.window[slot][c] + (1-r.alpha)*r.state[c]
					r.window[slot][c] = v
					r.state[c] = v
				}
			}
			r.real[slot] = true
			return nil
		}
	}
	copy(r.window[slot], r.window[slot-1])
	r.real[slot] = false
	return nil
}

// prime places the first source frame at t0 and duplicates it as t-1.
func (r *Resampler) prime() error {
	r.primed = true

	n, err := r.src.ReadSamples(r.srcBuf[:r.channels])
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return fmt.Errorf("%w", err)
	}
	if n < r.channels {
		r.done = true
		return nil
	}
	copy(r.window[1], r.srcBuf[:r.channels])
	copy(r.window[0], r.window[1])
	copy(r.state, r.window[1])
	r.real[1] = true

	if err := r.fill(2); err != nil {
		return err
	}
	return r.fill(3)
}

// advance shifts the window by one frame.
func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	copy(r.real[:], r.real[1:])
	return r.fill(3)
}

// ReadSamples produces samples at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels == 0 {
		return 0, ErrInvalidFormat
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	frames := len(dst) / r.channels
	for written < frames {
		for r.pos >= 1.0 && !r.done {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if r.done || !r.real[2] {
			r.done = true
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}
		written++
		r.pos += r.ratio
	}
	return written * r.channels, nil
}
