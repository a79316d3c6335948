// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_ChannelExclusivity(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	s := r.load(t, "sfx/a.snd")

	seen := make(map[int]bool)
	for range DefaultChannels - 1 {
		require.True(t, s.Play(1, 1, false))
		idx := channelOf(t, s)
		assert.NotEqual(t, MusicChannel, idx)
		assert.False(t, seen[idx], "channel %d handed out twice", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, DefaultChannels-1)

	assert.False(t, s.Play(1, 1, false), "play with every channel busy")
	for i := 1; i < DefaultChannels; i++ {
		assert.Equal(t, 1, r.voice(t, i).Plays(), "voice %d plays", i)
	}
	assert.Zero(t, r.voice(t, MusicChannel).Plays(), "music channel used by an effect")
}

func TestPool_LowestFreeIndexWins(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	s := r.load(t, "sfx/a.snd")
	for range DefaultChannels - 1 {
		require.True(t, s.Play(1, 1, false))
	}
	r.ctx.Poll(16)

	for _, i := range []int{5, 3, 2} {
		r.voice(t, i).Finish()
	}

	require.True(t, s.Play(1, 1, false))
	assert.Equal(t, 2, channelOf(t, s))
	require.True(t, s.Play(1, 1, false))
	assert.Equal(t, 3, channelOf(t, s))
	require.True(t, s.Play(1, 1, false))
	assert.Equal(t, 5, channelOf(t, s))
	assert.False(t, s.Play(1, 1, false))
}

func TestPool_UnconfirmedLeaseHeldForTick(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	s := r.load(t, "sfx/a.snd")

	require.True(t, s.Play(1, 1, false))
	require.Equal(t, 1, channelOf(t, s))
	// The device has not reported the voice as started yet.
	r.voice(t, 1).SetPlaying(false)

	require.True(t, s.Play(1, 1, false))
	assert.Equal(t, 2, channelOf(t, s), "unconfirmed channel reused in the same tick")

	r.ctx.Poll(16)
	require.True(t, s.Play(1, 1, false))
	assert.Equal(t, 1, channelOf(t, s), "idle channel not released after a tick")
}

func TestPool_StoppedChannelWaitsForDevice(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	a := r.load(t, "sfx/a.snd")
	b := r.load(t, "sfx/b.snd")
	v1 := r.voice(t, 1)
	v1.SetStopLag(true)

	require.True(t, a.Play(1, 1, false))
	a.Stop()
	assert.False(t, a.IsPlaying(), "stopped handle reports playing")
	assert.True(t, v1.Playing(), "device should lag")

	require.True(t, b.Play(1, 1, false))
	assert.Equal(t, 2, channelOf(t, b))

	v1.SetPlaying(false)
	require.True(t, b.Play(1, 1, false))
	assert.Equal(t, 1, channelOf(t, b))
}

func TestPool_MusicChannelRecreated(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	m, err := r.ctx.LoadMusic("music/theme.snd")
	require.NoError(t, err)

	first := r.voice(t, MusicChannel)
	require.True(t, m.Play(1, 1, true))
	second := r.voice(t, MusicChannel)
	require.True(t, m.Play(1, 1, false))
	third := r.voice(t, MusicChannel)

	assert.True(t, first.Closed())
	assert.True(t, second.Closed())
	assert.False(t, third.Closed())
	assert.Len(t, r.backend.Voices(), DefaultChannels+2)
	assert.False(t, third.Params().Loop, "loop flag leaked into the new voice")
}

func TestPool_MusicChannelResetInPlace(t *testing.T) {
	t.Parallel()

	r := newRig(t, WithVoiceReset(ResetInPlace))
	m, err := r.ctx.LoadMusic("music/theme.snd")
	require.NoError(t, err)

	v0 := r.voice(t, MusicChannel)
	require.True(t, m.Play(1, 0.5, true))

	assert.Same(t, v0, r.voice(t, MusicChannel))
	assert.Len(t, r.backend.Voices(), DefaultChannels)
	assert.Equal(t, []float32{1, 0.5}, v0.Gains(), "defaults not applied before the track")
	assert.Equal(t, 1, v0.Stops())
}

func TestPool_MusicVoiceFailureIsAbsorbed(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	m, err := r.ctx.LoadMusic("music/theme.snd")
	require.NoError(t, err)

	r.backend.FailVoices(errors.New("device lost"))
	assert.False(t, m.Play(1, 1, false))
	assert.False(t, m.IsPlaying())

	r.backend.FailVoices(nil)
	assert.True(t, m.Play(1, 1, false))
	assert.True(t, m.IsPlaying())
}

func TestWithChannels(t *testing.T) {
	t.Parallel()

	r := newRig(t, WithChannels(1))
	s := r.load(t, "sfx/a.snd")

	assert.Len(t, r.ctx.channels, 2)
	assert.True(t, s.Play(1, 1, false))
	assert.False(t, s.Play(1, 1, false))
}
