// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend/fake"
	"github.com/ik5/audplay/internal/audiotest"
)

func TestContext_GracefulDegradation(t *testing.T) {
	t.Parallel()

	r := buildContext(t)
	r.backend.FailOpen(errors.New("no audio device"))
	r.ctx.Init()
	require.False(t, r.ctx.Healthy())

	var sounds []*Sound
	for _, load := range []func(string) (*Sound, error){
		r.ctx.LoadSoundEffect,
		r.ctx.LoadMusic,
		r.ctx.LoadStreaming,
		r.ctx.LoadModule,
	} {
		s, err := load("sfx/a.snd")
		require.NoError(t, err)
		assert.Equal(t, KindNull, s.Kind())
		sounds = append(sounds, s)
	}
	sounds = append(sounds,
		r.ctx.RequestDeferred("sfx/a.snd", ""),
		r.ctx.RequestDeferredMusic("music/theme.snd", ""),
	)

	assert.NotPanics(t, func() {
		r.ctx.SetSoundsOn(false)
		r.ctx.SetMusicOn(false)
		r.ctx.SetSoundVolume(0.3)
		r.ctx.SetMusicVolume(0)
		r.ctx.PauseMusic()
		r.ctx.ResumeMusic()
		for _, s := range sounds {
			assert.False(t, s.Play(1, 1, true))
			assert.False(t, s.PlayAt(1, 1, false, 1, 2, 3))
			s.Stop()
			r.ctx.Poll(16)
		}
		assert.Zero(t, r.ctx.Deferred().Drain())
	})

	for _, s := range sounds {
		assert.False(t, s.IsPlaying())
		assert.Equal(t, KindNull, s.Kind())
	}
	assert.Zero(t, r.dec.Calls())
	assert.Empty(t, r.backend.Voices())
	assert.NoError(t, r.ctx.Close())

	r.ctx.Init()
	assert.Equal(t, 1, r.backend.Opens(), "Init retried the backend")
}

func TestContext_InitIdempotent(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	r.ctx.Init()
	assert.Equal(t, 1, r.backend.Opens())
	assert.Len(t, r.backend.Voices(), DefaultChannels)
}

func TestContext_VoiceFailureDisablesAudio(t *testing.T) {
	t.Parallel()

	r := buildContext(t)
	r.backend.FailVoices(errors.New("out of voices"))
	r.ctx.Init()

	assert.False(t, r.ctx.Healthy())
	assert.True(t, r.backend.Closed())

	s, err := r.ctx.LoadSoundEffect("sfx/a.snd")
	require.NoError(t, err)
	assert.False(t, s.Play(1, 1, false))
}

func TestContext_LoadBeforeInit(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	r := buildContext(t, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	effect, err := r.ctx.LoadSoundEffect("sfx/a.snd")
	require.NoError(t, err)
	stream, err := r.ctx.LoadStreaming("music/level.snd")
	require.NoError(t, err)

	assert.Equal(t, KindDeferred, effect.Kind())
	assert.Equal(t, KindDeferred, stream.Kind())
	assert.Equal(t, 2, r.ctx.Deferred().Len())
	assert.Zero(t, r.dec.Calls())
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "sfx/a.snd")

	r.ctx.Init()
	require.True(t, r.ctx.Healthy())

	assert.True(t, effect.Play(1, 1, false))
	assert.Equal(t, KindEffect, effect.Kind())
	assert.Equal(t, 1, r.dec.Calls())

	stream.Play(1, 1, false)
	assert.Equal(t, KindStream, stream.Kind())
	assert.Zero(t, r.ctx.Deferred().Len())
}

func TestContext_InitAfterClose(t *testing.T) {
	t.Parallel()

	r := buildContext(t)
	require.NoError(t, r.ctx.Close())
	r.ctx.Init()

	assert.False(t, r.ctx.Healthy())
	assert.Zero(t, r.backend.Opens(), "Init opened a closed context")
	assert.Empty(t, r.backend.Voices())

	s, err := r.ctx.LoadSoundEffect("sfx/a.snd")
	require.NoError(t, err)
	assert.Equal(t, KindNull, s.Kind())
	assert.False(t, s.Play(1, 1, false))
}

func TestContext_Close(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	s := r.load(t, "sfx/a.snd")
	st, err := r.ctx.LoadStreaming("music/level.snd")
	require.NoError(t, err)
	require.True(t, s.Play(1, 1, true))
	require.True(t, st.Play(1, 1, true))

	require.NoError(t, r.ctx.Close())
	assert.False(t, r.ctx.Healthy())
	assert.True(t, r.backend.Closed())
	assert.Equal(t, StreamStopped, st.State())
	for _, v := range r.backend.Voices() {
		assert.True(t, v.Closed(), "voice %d left open", v.ID)
	}
	for _, b := range r.backend.Buffers() {
		assert.True(t, b.Closed())
	}
	assert.Zero(t, r.ctx.CacheLen())

	assert.False(t, s.Play(1, 1, false))
	assert.False(t, s.IsPlaying())
	assert.Equal(t, KindNull, r.ctx.RequestDeferred("sfx/b.snd", "").Kind())
	assert.NoError(t, r.ctx.Close())
}

func TestContext_LoadErrors(t *testing.T) {
	t.Parallel()

	r := newRig(t)

	_, err := r.ctx.LoadSoundEffect("sfx/missing.snd")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "effect", lerr.Op)
	assert.Equal(t, "sfx/missing.snd", lerr.Ref)

	_, err = r.ctx.LoadMusic("music/theme.flac")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = r.ctx.LoadStreaming("music/none.snd")
	assert.ErrorIs(t, err, ErrNotFound)

	decodeErr := errors.New("bad header")
	r.dec.Err = decodeErr
	_, err = r.ctx.LoadSoundEffect("sfx/b.snd")
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, decodeErr)

	_, err = r.ctx.LoadModule("music/song.snd")
	assert.ErrorIs(t, err, ErrDecode)
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "module", lerr.Op)

	r.dec.Err = nil
	r.dec.Frames = 0
	_, err = r.ctx.LoadSoundEffect("sfx/b.snd")
	assert.Error(t, err, "empty sound uploaded")
	assert.Zero(t, r.ctx.CacheLen())
}

func TestContext_Metrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	r := newRig(t, WithMeterProvider(mp), WithChannels(3))
	s := r.load(t, "sfx/a.snd")
	_, _ = r.ctx.LoadSoundEffect("sfx/missing.snd")
	r.ctx.RequestDeferred("sfx/b.snd", "")
	for range 3 {
		s.Play(1, 1, false)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(2), sums["audplay.effects.played"])
	assert.Equal(t, int64(1), sums["audplay.effects.dropped"])
	assert.Equal(t, int64(2), sums["audplay.loads"])
	assert.Equal(t, int64(1), sums["audplay.deferred.pending"])
}

func TestContext_Normalize(t *testing.T) {
	t.Parallel()

	b := fake.New()
	reg := audio.NewRegistry()
	reg.Register("snd", &audiotest.CountingDecoder{SampleRate: 22050, Channels: 1, Frames: 1000, Value: 0.25})

	c := New(b, reg,
		WithLoader(NewFSLoader(testFiles())),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithNormalize(true),
	)
	c.Init()
	t.Cleanup(func() { _ = c.Close() })

	_, err := c.LoadSoundEffect("sfx/a.snd")
	require.NoError(t, err)

	bufs := b.Buffers()
	require.Len(t, bufs, 1)
	assert.Equal(t, 44100, bufs[0].PCM.SampleRate)
	assert.Equal(t, 1, bufs[0].PCM.Channels)
	assert.InDelta(t, 2000, bufs[0].PCM.Frames(), 8)
}

func TestResetMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "recreate", ResetRecreate.String())
	assert.Equal(t, "in_place", ResetInPlace.String())
}

func TestEffectiveGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		gain, volume, want float32
	}{
		{1, 1, 1},
		{0.5, 0.5, 0.25},
		{1, 0, GainFloor},
		{0, 1, GainFloor},
		{-1, 1, GainFloor},
		{2, 1, 2},
	}
	for _, tt := range tests {
		if got := effectiveGain(tt.gain, tt.volume); got != tt.want {
			t.Errorf("effectiveGain(%v, %v) = %v, want %v", tt.gain, tt.volume, got, tt.want)
		}
	}
}
