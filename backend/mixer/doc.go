// SPDX-License-Identifier: EPL-2.0

// Package mixer is a software backend: voices are mixed in process and the
// result is pulled as float32 frames.
//
// Each voice steps through its data at sourceRate/outputRate*pitch frames
// per output frame using Catmull-Rom interpolation, so buffers at any rate
// play at the right speed. The x component of the voice position pans the
// output; mono sources feed both sides. A static buffer either loops or
// stops at its end. Queued blocks are marked processed as they finish, and
// a voice whose queue runs dry stops, which the streaming code sees as an
// underrun.
//
// The mixer has no clock of its own. Device backends call Read from their
// audio callback; offline rendering calls Mix directly:
//
//	m := mixer.New(backend.Format{SampleRate: 48000, Channels: 2})
//	_ = m.Open()
//	// ... play voices ...
//	block := make([]float32, 2*1024)
//	m.Mix(block)
package mixer
