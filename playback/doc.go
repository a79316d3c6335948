// SPDX-License-Identifier: EPL-2.0

// Package playback is the audio playback core: a fixed pool of voices with
// one channel reserved for music, sound handles, streaming sessions, a
// tracker module player and deferred loading.
//
// # Context
//
// A Context wraps one backend.Backend. It is created once, initialised
// once and polled every tick:
//
//	ctx := playback.New(b, formats.NewRegistry(),
//	    playback.WithLoader(playback.NewFSLoader(os.DirFS("assets"))),
//	    playback.WithLogger(logger),
//	)
//	ctx.Init()
//	defer ctx.Close()
//
//	for range ticker.C {
//	    ctx.Poll(16)
//	}
//
// When the backend fails to open, Init logs the failure and the context
// becomes inert: loads return KindNull handles with a nil error, and every
// other call does nothing. A program runs the same without an audio
// device.
//
// # Channels
//
// Channel 0 belongs to the music source. Effects take the lowest numbered
// free channel from 1 upwards; with every channel busy the effect is
// dropped and Play returns false. A channel is free once its voice reports
// idle, so a channel that was just stopped can stay taken until the device
// catches up.
//
// # Sounds
//
//	jump, err := ctx.LoadSoundEffect("sfx/jump.wav")  // cached buffer
//	theme, err := ctx.LoadMusic("music/title.ogg")     // cached buffer, channel 0
//	level, err := ctx.LoadStreaming("music/level.mp3") // decoded while playing
//	song, err := ctx.LoadModule("music/boss.xm")       // tracker module
//	later := ctx.RequestDeferred("sfx/door.wav", "")   // decoded on first use
//
// Loads issued before Init are logged and come back as deferred handles,
// resolved on first use once the backend is up.
//
// Only load calls return errors (*LoadError wrapping ErrNotFound,
// ErrDecode or ErrUnknownFormat). Playback failures are logged and
// absorbed.
//
// Starting music, a stream or a module stops whichever of them held the
// music channel before. Gains of exactly zero are sent as GainFloor.
package playback
