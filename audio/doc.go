// SPDX-License-Identifier: EPL-2.0

// Package audio defines the decoder contract shared by every format package
// and the playback core.
//
// This package contains the building blocks below the playback layer:
//   - Source and Decoder, the contract every format package implements
//   - Registry, mapping format keys and file extensions to decoders
//   - PCM and ReadAll, for effects decoded in one go
//   - Resampler and MonoMixer, adapting a Source to a device layout
//
// # Source Interface
//
// A decoder turns a byte stream into a Source:
//
//	type Source interface {
//	    Format() Format
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Format reports the sample rate, channel count and, where the container
// has one, the bit depth. Samples are interleaved float32 values and
// ReadSamples only returns whole frames.
//
// # Reading a Source
//
// ReadSamples returns io.EOF once the stream is exhausted; it may return the
// final samples and io.EOF from the same call:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    consume(buf[:n])
//	    if err == io.EOF {
//	        break // normal end of stream
//	    }
//	    if err != nil {
//	        return err // decode error
//	    }
//	}
//
// # Registry
//
// Decoders are registered under a format key, usually the file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.Alias("wave", "wav")
//
//	format, ok := registry.FormatOf("sfx/jump.WAV") // "wav", true
//	decoder, ok := registry.Get(format)
//
// Extensions are matched case-insensitively. The formats package provides a
// registry with every built-in decoder already wired:
//
//	reg := formats.NewRegistry() // wav, aiff, mp3, ogg, flac, xm
//
// The registry is safe for concurrent use, so one instance can be shared by
// several playback contexts.
//
// # Buffered Decoding
//
// ReadAll collects a whole Source into a PCM block, which is what the
// playback core uploads to the device for short sound effects:
//
//	pcm, err := audio.ReadAll(src, 4096)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(pcm.Frames(), "frames at", pcm.SampleRate, "Hz")
//
// ReadAll does not close the source. A source that stops producing samples
// without reporting io.EOF is treated as ended.
//
// # Device Layout
//
// Normalize adapts a Source to a device rate and channel count by chaining
// the cubic Resampler and the MonoMixer:
//
//	src = audio.Normalize(src, 48000, 2)
//
// A zero rate or channel count keeps what the source has, and a source that
// already matches is returned unchanged.
//
// # Resampling
//
// The Resampler uses Catmull-Rom interpolation over a four frame window and
// applies a one-pole low-pass filter when downsampling:
//
//	resampler := audio.NewResampler(src, 22050)
//	buf := make([]float32, 4096)
//	n, err := resampler.ReadSamples(buf)
//
// # Channel Mixing
//
// The MonoMixer folds every channel of a frame into one by averaging:
//
//	mono := audio.NewMonoMixer(src)
//
// Closing either adapter closes the wrapped source.
//
// # Sample Format
//
// Audio samples are float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Decoders convert from the container's integer layout with the helpers in
// the utils package.
package audio
