// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and 16-bit PCM encoding.
//
// Decoding is done by github.com/go-audio/wav, so the chunk layout does not
// have to match the canonical 44-byte header: LIST, smpl and other chunks
// before the fmt chunk are skipped.
//
// # Supported Formats
//
// The decoder accepts:
//   - Integer PCM at 8, 16, 24 and 32 bits
//   - WAVE_FORMAT_EXTENSIBLE files that carry integer PCM
//   - Any channel count
//   - Any sample rate
//
// IEEE float and compressed WAV variants are rejected.
//
// # Decoding WAV Files
//
// Use the Decoder to read WAV files:
//
//	file, err := os.Open("sfx/jump.wav")
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// The decoder returns an audio.Source that provides interleaved samples as
// float32 values in the range [-1.0, 1.0]. 8-bit files are unsigned on disk
// and are re-centred around zero.
//
// go-audio needs to seek inside the container. A reader that is not an
// io.ReadSeeker is buffered in memory first; files opened from an fs.FS
// usually seek, so streaming sessions read them in place.
//
// # Writing WAV Files
//
// WriteWAV16 writes interleaved 16-bit samples with a canonical header. The
// sizes are known up front, so the writer does not need to seek:
//
//	samples := []int16{100, -100, 200, -200}
//	out, _ := os.Create("mix.wav")
//	err := wav.WriteWAV16(out, 44100, 2, samples)
//
// The audplay command uses it to render a whole mix offline:
//
//	audplay -backend null -render mix.wav -music music/theme.ogg sfx/jump.wav
//
// # Error Handling
//
// The package defines these errors:
//   - ErrNotWavFile: the input is not RIFF/WAVE
//   - ErrUnsupportedSampleSize: the bit depth is not 8, 16, 24 or 32
//   - ErrUnsupportedWavLayout: the fmt chunk is missing or unusable
//   - ErrInvalidChannels: WriteWAV16 was called with no channels
//
// Example:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("not a WAV file")
//	}
//
// Loaded through the playback package, the same failure arrives as a
// *playback.LoadError wrapping playback.ErrDecode and ErrNotWavFile.
//
// # File Format
//
// WAV files consist of:
//   - RIFF header (12 bytes)
//   - fmt chunk: audio format, channels, sample rate, bit depth
//   - optional chunks (LIST, fact, smpl ...)
//   - data chunk: interleaved little-endian samples
package wav
