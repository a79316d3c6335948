// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audplay/backend"
)

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := map[Kind]string{
		KindNull:     "null",
		KindEffect:   "effect",
		KindMusic:    "music",
		KindStream:   "stream",
		KindModule:   "module",
		KindDeferred: "deferred",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestSound_DedupAndDistinctChannels(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	a := r.load(t, "sfx/a.snd")
	b := r.load(t, "sfx/a.snd")

	assert.Same(t, a.buf, b.buf, "same reference must share a buffer")
	assert.Equal(t, 1, r.dec.Calls())
	assert.Len(t, r.backend.Buffers(), 1)
	assert.Equal(t, 1, r.ctx.CacheLen())

	require.True(t, a.Play(1, 1, false))
	require.True(t, b.Play(1, 1, false))
	assert.NotEqual(t, channelOf(t, a), channelOf(t, b))
	assert.True(t, a.IsPlaying())
	assert.True(t, b.IsPlaying())
}

func TestSound_EffectParams(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	s := r.load(t, "sfx/a.snd")

	require.True(t, s.PlayAt(2, 0.5, true, 1, 2, 3))
	p := r.voice(t, 1).Params()
	assert.Equal(t, backend.Params{
		Pitch:    2,
		Gain:     0.5,
		Loop:     true,
		Position: [3]float32{1, 2, 3},
	}, p)

	require.True(t, s.PlayAtVelocity(0, 1, false, [3]float32{}, [3]float32{4, 5, 6}))
	p = r.voice(t, 2).Params()
	assert.Equal(t, float32(1), p.Pitch, "non-positive pitch should become 1")
	assert.Equal(t, [3]float32{4, 5, 6}, p.Velocity)
	assert.Same(t, r.backend.Buffers()[0], r.voice(t, 2).Bound())
}

func TestSound_EffectGain(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	s := r.load(t, "sfx/a.snd")

	r.ctx.SetSoundVolume(0.5)
	require.True(t, s.Play(1, 0.5, false))
	assert.Equal(t, float32(0.25), r.voice(t, 1).LastGain())

	r.ctx.SetSoundVolume(-3)
	assert.Zero(t, r.ctx.SoundVolume())
	require.True(t, s.Play(1, 1, false))
	assert.Equal(t, GainFloor, r.voice(t, 2).LastGain())

	r.ctx.SetSoundVolume(1)
	require.True(t, s.Play(1, 0, false))
	assert.Equal(t, GainFloor, r.voice(t, 3).LastGain())
}

func TestSound_EffectStopOnlyWhileOwner(t *testing.T) {
	t.Parallel()

	r := newRig(t, WithChannels(2))
	a := r.load(t, "sfx/a.snd")
	b := r.load(t, "sfx/b.snd")
	v := r.voice(t, 1)

	require.True(t, a.Play(1, 1, false))
	assert.True(t, a.IsPlaying())
	v.Finish()
	assert.False(t, a.IsPlaying())

	require.True(t, b.Play(1, 1, false))
	stops := v.Stops()
	a.Stop()
	assert.Equal(t, stops, v.Stops(), "stale handle stopped another sound")
	assert.True(t, b.IsPlaying())
	assert.False(t, a.IsPlaying())

	b.Stop()
	assert.False(t, b.IsPlaying())
	assert.False(t, v.Playing())
}

func TestSound_EffectIsPlayingFollowsVoice(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	a := r.load(t, "sfx/a.snd")
	b := r.load(t, "sfx/b.snd")

	require.True(t, a.Play(1, 1, false))
	v := r.voice(t, channelOf(t, a))
	v.Finish()
	assert.False(t, v.Playing())
	assert.False(t, a.IsPlaying(), "idle voice reported playing within the tick")

	// The channel itself stays reserved until the next tick.
	require.True(t, b.Play(1, 1, false))
	assert.NotEqual(t, channelOf(t, a), channelOf(t, b))
	assert.True(t, b.IsPlaying())
}

func TestSound_MusicIsPlayingFollowsVoice(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	m, err := r.ctx.LoadMusic("music/theme.snd")
	require.NoError(t, err)
	require.True(t, m.Play(1, 1, false))
	assert.True(t, m.IsPlaying())

	r.voice(t, MusicChannel).Finish()
	assert.False(t, m.IsPlaying())
}

func TestSound_SoundsOff(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	s := r.load(t, "sfx/a.snd")
	require.True(t, s.Play(1, 1, true))

	r.ctx.SetSoundsOn(false)
	assert.False(t, r.ctx.SoundsOn())
	assert.False(t, s.IsPlaying())
	assert.False(t, r.voice(t, 1).Playing())
	assert.False(t, s.Play(1, 1, false))

	r.ctx.SetSoundsOn(true)
	assert.True(t, s.Play(1, 1, false))
}

func TestSound_MusicGainFloor(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	m, err := r.ctx.LoadMusic("music/theme.snd")
	require.NoError(t, err)

	r.ctx.SetMusicVolume(0)
	assert.Zero(t, r.ctx.MusicVolume())

	require.True(t, m.Play(1, 1, true))
	v0 := r.voice(t, MusicChannel)
	assert.Equal(t, GainFloor, v0.LastGain())

	r.ctx.SetMusicVolume(0.5)
	assert.Equal(t, float32(0.5), v0.LastGain())

	r.ctx.SetMusicVolume(0)
	assert.Zero(t, r.ctx.MusicVolume())
	assert.Equal(t, GainFloor, v0.LastGain())

	for _, g := range v0.Gains() {
		assert.NotZero(t, g, "zero gain reached the backend")
	}
}

func TestSound_MusicVolumeUsesLastGain(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	m, err := r.ctx.LoadMusic("music/theme.snd")
	require.NoError(t, err)

	require.True(t, m.Play(1, 0.5, false))
	r.ctx.SetMusicVolume(0.5)
	assert.Equal(t, float32(0.25), r.voice(t, MusicChannel).LastGain())
}

func TestSound_AtMostOneMusicSource(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	music, err := r.ctx.LoadMusic("music/theme.snd")
	require.NoError(t, err)
	stream, err := r.ctx.LoadStreaming("music/level.snd")
	require.NoError(t, err)
	module, err := r.ctx.LoadModule("music/song.snd")
	require.NoError(t, err)

	require.True(t, music.Play(1, 1, true))
	assert.True(t, music.IsPlaying())

	require.True(t, stream.Play(1, 1, true))
	assert.True(t, stream.IsPlaying())
	assert.False(t, music.IsPlaying(), "buffered music survived a stream")

	require.True(t, music.Play(1, 1, true))
	assert.True(t, music.IsPlaying())
	assert.False(t, stream.IsPlaying(), "stream survived buffered music")
	assert.Equal(t, StreamStopped, stream.State())

	require.True(t, module.Play(1, 1, true))
	assert.True(t, module.IsPlaying())
	assert.False(t, music.IsPlaying())
	assert.False(t, stream.IsPlaying())

	// Stopping a handle that lost the channel leaves the owner alone.
	music.Stop()
	stream.Stop()
	assert.True(t, module.IsPlaying())

	module.Stop()
	assert.False(t, module.IsPlaying())
	assert.Nil(t, r.ctx.active)
}

func TestSound_MusicPauseAndSwitches(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	m, err := r.ctx.LoadMusic("music/theme.snd")
	require.NoError(t, err)
	require.True(t, m.Play(1, 1, true))
	v0 := r.voice(t, MusicChannel)

	r.ctx.PauseMusic()
	assert.True(t, r.ctx.MusicPaused())
	assert.True(t, v0.Paused())
	assert.True(t, m.IsPlaying(), "paused music still owns the channel")

	r.ctx.SetMusicOn(false)
	r.ctx.ResumeMusic()
	assert.True(t, v0.Paused(), "music resumed while switched off")

	r.ctx.SetMusicOn(true)
	assert.True(t, v0.Playing())
	assert.False(t, v0.Paused())
}

func TestSound_MusicStartsHeldWhileOff(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	m, err := r.ctx.LoadMusic("music/theme.snd")
	require.NoError(t, err)

	r.ctx.SetMusicOn(false)
	assert.False(t, r.ctx.MusicOn())
	require.True(t, m.Play(1, 1, false))
	v0 := r.voice(t, MusicChannel)
	assert.True(t, v0.Paused())

	r.ctx.SetMusicOn(true)
	assert.True(t, v0.Playing())
}

func TestSound_NilHandle(t *testing.T) {
	t.Parallel()

	var s *Sound
	assert.False(t, s.Play(1, 1, false))
	assert.False(t, s.IsPlaying())
	assert.Equal(t, KindNull, s.Kind())
	assert.True(t, s.Resolved())
	assert.Empty(t, s.Ref())
	s.Stop()
}
