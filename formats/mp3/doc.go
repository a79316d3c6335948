// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1/2
// Layer III audio into PCM samples.
//
// # Supported Formats
//
// The decoder supports:
//   - MPEG-1 and MPEG-2 Layer III
//   - Constant and variable bitrates
//   - Mono and stereo streams (output is always stereo)
//
// # Decoding MP3 Files
//
// Use the Decoder to read MP3 files:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// The decoder returns an audio.Source that provides samples as float32
// values normalized to the range [-1.0, 1.0].
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: 2 (go-mp3 duplicates mono streams)
//   - Sample rate: from the stream header (typically 44.1kHz or 48kHz)
//   - BitDepth: 16
//
// To fold the output to mono or match a device rate, use the audio package:
//
//	src, _ := mp3.Decoder{}.Decode(file)
//	src = audio.Normalize(src, 22050, 1)
//
// The playback package does the same for every load when the context is
// built with playback.WithNormalize(true).
//
// # Streaming
//
// Frames are decoded lazily, so an MP3 can back a streaming session as well
// as a buffered effect:
//
//	level, err := ctx.LoadStreaming("music/level.mp3")
//	if err != nil {
//	    return err
//	}
//	level.Play(1, 1, true)
//
// # Limitations
//
//   - MP3 writing is not supported (decoding only)
//   - Output is always stereo
package mp3
