// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
	"github.com/ik5/audplay/utils"
)

type voiceState int

const (
	stateStopped voiceState = iota
	statePlaying
	statePaused
)

// voice shares the mixer lock; every exported method takes it.
type voice struct {
	m      *Mixer
	params backend.Params
	state  voiceState
	closed bool

	static *buffer
	// queue[:processed] has been played and waits for Unqueue.
	queue     []*audio.PCM
	processed int

	pos float64 // frame position inside the current block
}

func (v *voice) Bind(b backend.Buffer) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	v.stopLocked()
	v.queue, v.processed = nil, 0
	v.static, _ = b.(*buffer)
}

func (v *voice) Enqueue(pcm *audio.PCM) error {
	if pcm.Frames() == 0 {
		return backend.ErrEmptyBuffer
	}
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	if v.closed {
		return backend.ErrClosed
	}
	v.static = nil
	v.queue = append(v.queue, pcm)
	return nil
}

func (v *voice) Unqueue() int {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	n := v.processed
	v.queue = v.queue[n:]
	v.processed = 0
	return n
}

func (v *voice) Queued() int {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	return len(v.queue) - v.processed
}

func (v *voice) Apply(p backend.Params) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	v.params = p
}

func (v *voice) SetGain(gain float32) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	v.params.Gain = gain
}

func (v *voice) Play() {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	if v.closed || v.state == statePlaying {
		return
	}
	if v.static == nil && v.processed >= len(v.queue) {
		return
	}
	if v.state == stateStopped {
		v.pos = 0
	}
	v.state = statePlaying
}

func (v *voice) Pause() {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	if v.state == statePlaying {
		v.state = statePaused
	}
}

func (v *voice) Stop() {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	v.stopLocked()
}

// stopLocked rewinds and marks every queued block as processed.
func (v *voice) stopLocked() {
	v.state = stateStopped
	v.pos = 0
	v.processed = len(v.queue)
}

func (v *voice) Playing() bool {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	return v.state == statePlaying
}

func (v *voice) Close() error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	v.stopLocked()
	v.closed = true
	v.m.remove(v)
	return nil
}

// current returns the block being played, or nil.
func (v *voice) current() *audio.PCM {
	if v.static != nil {
		return &v.static.pcm
	}
	if v.processed < len(v.queue) {
		return v.queue[v.processed]
	}
	return nil
}

// render adds this voice into dst, an interleaved block with outCh channels.
func (v *voice) render(dst []float32, outCh, outRate int) {
	pitch := v.params.Pitch
	if pitch <= 0 {
		pitch = 1
	}
	gainL, gainR := pan(v.params.Gain, v.params.Position[0])

	for f := 0; f < len(dst)/outCh; f++ {
		block := v.current()
		if block == nil {
			v.state = stateStopped
			v.pos = 0
			return
		}

		left, right := sampleAt(block, v.pos, v.static != nil && v.params.Loop)
		if outCh == 1 {
			dst[f] += (left*gainL + right*gainR) * 0.5
		} else {
			dst[2*f] += left * gainL
			dst[2*f+1] += right * gainR
		}

		v.pos += float64(block.SampleRate) / float64(outRate) * float64(pitch)
		frames := float64(block.Frames())
		if v.pos < frames {
			continue
		}
		switch {
		case v.static != nil && v.params.Loop:
			for v.pos >= frames {
				v.pos -= frames
			}
		case v.static != nil:
			v.state = stateStopped
			v.pos = 0
			return
		default:
			v.pos -= frames
			v.processed++
		}
	}
}

// pan splits gain between left and right from an x position in [-1, 1].
func pan(gain, x float32) (float32, float32) {
	x = utils.Clamp(x, -1, 1)
	left, right := gain, gain
	if x > 0 {
		left *= 1 - x
	} else if x < 0 {
		right *= 1 + x
	}
	return left, right
}

// sampleAt interpolates the stereo frame at pos. Mono blocks feed both
// sides; channels past the second are ignored.
func sampleAt(block *audio.PCM, pos float64, wrap bool) (float32, float32) {
	frames := block.Frames()
	i := int(pos)
	x := float32(pos - float64(i))

	frame := func(j int) int {
		if wrap {
			return ((j % frames) + frames) % frames
		}
		return min(max(j, 0), frames-1)
	}

	ch := block.Channels
	value := func(c int) float32 {
		s := block.Samples
		return utils.CubicInterpolate(
			s[frame(i-1)*ch+c], s[frame(i)*ch+c],
			s[frame(i+1)*ch+c], s[frame(i+2)*ch+c], x)
	}

	left := value(0)
	if ch == 1 {
		return left, left
	}
	return left, value(1)
}
