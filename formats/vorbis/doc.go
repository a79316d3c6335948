// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder, so no
// cgo or system libraries are needed.
//
// # Supported Formats
//
// The decoder supports:
//   - Ogg Vorbis (.ogg, .oga)
//   - Any channel count the stream declares
//   - Any sample rate
//
// # Decoding Ogg Vorbis Files
//
//	file, _ := os.Open("music/theme.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// oggvorbis already produces float32 samples, so ReadSamples hands them
// through without conversion.
//
// # Output Format
//
// Vorbis decoder output:
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: from the identification header
//   - Sample rate: from the identification header
//   - BitDepth: 0 (Vorbis has no fixed sample size)
//
// # Streaming Music
//
// Vorbis is the compressed, streamable format suited to long music tracks.
// Packets are pulled on demand, so a streaming session only keeps its
// refill window in memory:
//
//	theme, _ := ctx.LoadStreaming("music/theme.ogg")
//	theme.Play(1, 0.8, true)
//
//	for range ticker.C {
//	    ctx.Poll(16) // one refill per tick
//	}
//
// Looping reopens the file through the loader and decodes from the first
// packet again.
//
// # Error Handling
//
// Errors from oggvorbis (not an Ogg stream, bad headers, truncated pages)
// are returned wrapped; the playback package reports them as ErrDecode.
//
// # Limitations
//
//   - Encoding is not supported
//   - Chained streams with changing formats are not supported
package vorbis
