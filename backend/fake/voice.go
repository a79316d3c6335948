// SPDX-License-Identifier: EPL-2.0

package fake

import (
	"sync"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend"
)

type Voice struct {
	// ID is the creation order within the backend.
	ID int

	mu        sync.Mutex
	params    backend.Params
	gains     []float32
	bound     *Buffer
	queue     []*audio.PCM
	processed int
	enqueued  int
	playing   bool
	paused    bool
	stopLag   bool
	plays     int
	stops     int
	closed    bool
}

func (v *Voice) Bind(b backend.Buffer) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.bound, _ = b.(*Buffer)
	v.queue, v.processed = nil, 0
}

func (v *Voice) Enqueue(pcm *audio.PCM) error {
	if pcm.Frames() == 0 {
		return backend.ErrEmptyBuffer
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return backend.ErrClosed
	}
	v.bound = nil
	v.queue = append(v.queue, pcm)
	v.enqueued++
	return nil
}

func (v *Voice) Unqueue() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	n := v.processed
	v.queue = v.queue[n:]
	v.processed = 0
	return n
}

func (v *Voice) Queued() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.queue) - v.processed
}

func (v *Voice) Apply(p backend.Params) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.params = p
	v.gains = append(v.gains, p.Gain)
}

func (v *Voice) SetGain(gain float32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.params.Gain = gain
	v.gains = append(v.gains, gain)
}

// Play starts the voice when it has a bound buffer or pending blocks.
func (v *Voice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.plays++
	if v.closed {
		return
	}
	if v.bound != nil || v.processed < len(v.queue) {
		v.playing = true
		v.paused = false
	}
}

func (v *Voice) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.playing {
		v.playing = false
		v.paused = true
	}
}

// Stop halts the voice unless stop lag is on, in which case Playing keeps
// reporting true until the test calls Finish or SetPlaying(false).
func (v *Voice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stops++
	v.paused = false
	v.processed = len(v.queue)
	if !v.stopLag {
		v.playing = false
	}
}

func (v *Voice) Playing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

func (v *Voice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.playing = false
	return nil
}

// Finish simulates the device reaching the end of the voice's data.
func (v *Voice) Finish() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.playing = false
	v.processed = len(v.queue)
}

// Consume marks up to n pending queue blocks as played. A voice left with
// nothing pending stops, like a device underrun.
func (v *Voice) Consume(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.processed = min(v.processed+n, len(v.queue))
	if v.processed == len(v.queue) {
		v.playing = false
	}
}

func (v *Voice) SetPlaying(playing bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = playing
}

func (v *Voice) SetStopLag(lag bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopLag = lag
}

// Gains returns every gain value sent through Apply or SetGain.
func (v *Voice) Gains() []float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]float32(nil), v.gains...)
}

// LastGain returns the most recent gain, or 0 if none was sent.
func (v *Voice) LastGain() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.gains) == 0 {
		return 0
	}
	return v.gains[len(v.gains)-1]
}

func (v *Voice) Params() backend.Params {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params
}

// Bound returns the buffer attached with Bind, if any.
func (v *Voice) Bound() *Buffer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.bound
}

// Enqueued returns the total number of blocks ever queued.
func (v *Voice) Enqueued() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.enqueued
}

func (v *Voice) Paused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.paused
}

func (v *Voice) Plays() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.plays
}

func (v *Voice) Stops() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stops
}

func (v *Voice) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}
