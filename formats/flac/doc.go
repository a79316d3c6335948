// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC decoding through github.com/gopxl/beep/v2/flac.
//
// beep wraps the github.com/mewkiz/flac decoder and exposes it as a
// Streamer of float64 stereo pairs. The source in this package converts
// those pairs into the interleaved float32 layout of audio.Source.
//
// # Supported Formats
//
//   - Native FLAC (.flac)
//   - 8 to 24-bit samples
//   - Mono and stereo (both reported as stereo)
//
// # Decoding FLAC Files
//
//	file, _ := os.Open("music/ending.flac")
//	src, err := flac.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// # Output Format
//
// FLAC decoder output:
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: 2
//   - Sample rate: from the STREAMINFO block
//   - BitDepth: the stream's sample precision
//
// Close closes the beep streamer, which releases the underlying reader.
//
// # Error Handling
//
// Decode returns beep's error wrapped when the stream is not FLAC or its
// metadata is damaged. A decode error in the middle of the stream surfaces
// from ReadSamples.
//
// # Limitations
//
//   - Encoding is not supported
//   - Ogg-encapsulated FLAC is not supported
package flac
