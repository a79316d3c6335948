// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's uncompressed audio format and is still common in sound
// libraries exported from macOS tools.
//
// # Supported Formats
//
// The decoder accepts:
//   - AIFF with big-endian integer PCM
//   - 8, 16, 24 and 32-bit samples
//   - Any channel count
//   - Any sample rate
//
// # Decoding AIFF Files
//
// Use the Decoder to read AIFF files:
//
//	file, _ := os.Open("sfx/door.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples as float32 in range [-1.0, 1.0]
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// go-audio needs an io.ReadSeeker. Readers that cannot seek are read into
// memory before decoding, which is fine for effects but worth knowing for
// long tracks played through a streaming session.
//
// # Output Format
//
// AIFF decoder output:
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: as stored in the COMM chunk
//   - Sample rate: as stored in the COMM chunk
//   - BitDepth: the file's sample size
//
// # Error Handling
//
// The package defines these errors:
//   - ErrNotAiffFile: the input is not a FORM/AIFF container
//   - ErrUnsupportedSampleSize: the sample size is not 8, 16, 24 or 32
//   - ErrUnsupportedAiffLayout: the COMM chunk is missing or has no channels
//
// Example:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    fmt.Println("not an AIFF file")
//	}
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Stores the sample rate as an 80-bit float
//   - Uses FORM/COMM/SSND chunks instead of RIFF/fmt/data
//
// The decoder handles these differences; callers see the same audio.Source.
//
// # Limitations
//
//   - AIFF writing is not supported (decoding only)
//   - AIFF-C (.aifc) compressed files are rejected
//
// # File Extensions
//
// The formats registry maps both .aiff and .aif to this decoder:
//
//	reg := formats.NewRegistry()
//	key, _ := reg.FormatOf("sfx/door.aif") // "aiff"
package aiff
