// SPDX-License-Identifier: EPL-2.0

// Package formats wires every built-in decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/formats/aiff"
	"github.com/ik5/audplay/formats/flac"
	"github.com/ik5/audplay/formats/mp3"
	"github.com/ik5/audplay/formats/vorbis"
	"github.com/ik5/audplay/formats/wav"
	"github.com/ik5/audplay/formats/xm"
)

// Format keys understood by NewRegistry.
const (
	WAV  = "wav"
	AIFF = "aiff"
	MP3  = "mp3"
	OGG  = "ogg"
	FLAC = "flac"
	XM   = "xm"
)

// NewRegistry returns a registry holding every built-in decoder, with the
// common alternative extensions aliased.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(WAV, wav.Decoder{})
	reg.Register(AIFF, aiff.Decoder{})
	reg.Register(MP3, mp3.Decoder{})
	reg.Register(OGG, vorbis.Decoder{})
	reg.Register(FLAC, flac.Decoder{})
	reg.Register(XM, xm.Decoder{})

	reg.Alias("wave", WAV)
	reg.Alias("aif", AIFF)
	reg.Alias("oga", OGG)
	return reg
}
