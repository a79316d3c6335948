// SPDX-License-Identifier: EPL-2.0

package playback

// GainFloor replaces an effective gain of exactly zero. Zero is never sent
// to the backend.
const GainFloor float32 = 0.001

func effectiveGain(gain, volume float32) float32 {
	g := max(gain, 0) * volume
	if g == 0 {
		return GainFloor
	}
	return g
}

func clampVolume(v float32) float32 {
	return max(v, 0)
}
