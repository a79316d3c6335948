// SPDX-License-Identifier: EPL-2.0

// Package xm renders FastTracker II Extended Module (.xm) files.
//
// Parsing is done by github.com/quasilyte/xm/xmfile and playback by the
// github.com/quasilyte/xm stream, which mixes the pattern data into 16-bit
// stereo PCM. The resulting Source behaves like any other decoder output
// and ends with io.EOF when the song's order list is done.
//
// # Decoding Modules
//
//	data, _ := os.Open("music/boss.xm")
//	src, err := xm.Decoder{}.Decode(data)
//	if errors.Is(err, xm.ErrNotXMFile) {
//	    // not an XM module
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// The whole file is read into memory before parsing; modules are small.
// Parser options can be set on the Decoder:
//
//	dec := xm.Decoder{Parser: xmfile.ParserConfig{}}
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: 2
//   - Sample rate: SampleRate (44.1kHz)
//   - BitDepth: 16
//
// # Playing Modules
//
// The playback package keeps the raw module bytes and renders a fresh
// stream on every play, feeding it to the music channel a chunk at a time:
//
//	song, _ := ctx.LoadModule("music/boss.xm")
//	song.Play(1, 1, true)
//	...
//	ctx.Poll(16)
//	fmt.Println(song.Elapsed())
//
// # Error Handling
//
//   - ErrNotXMFile: the data could not be parsed as an XM module
//   - ErrUnsupportedModule: the module parsed but the player rejected it
package xm
