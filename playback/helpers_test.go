// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/backend/fake"
	"github.com/ik5/audplay/internal/audiotest"
)

func testFiles() fstest.MapFS {
	return fstest.MapFS{
		"sfx/a.snd":       {Data: []byte("a")},
		"sfx/b.snd":       {Data: []byte("b")},
		"sfx/raw.bin":     {Data: []byte("raw")},
		"music/theme.snd": {Data: []byte("theme")},
		"music/level.snd": {Data: []byte("level")},
		"music/song.snd":  {Data: []byte("song")},
	}
}

type testRig struct {
	ctx     *Context
	backend *fake.Backend
	dec     *audiotest.CountingDecoder
}

// buildContext returns an uninitialised context whose "snd" decoder counts
// its calls.
func buildContext(t *testing.T, opts ...Option) *testRig {
	t.Helper()

	b := fake.New()
	dec := &audiotest.CountingDecoder{Frames: 100, Value: 0.5}
	reg := audio.NewRegistry()
	reg.Register("snd", dec)

	base := []Option{
		WithLoader(NewFSLoader(testFiles())),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	c := New(b, reg, append(base, opts...)...)
	t.Cleanup(func() { _ = c.Close() })
	return &testRig{ctx: c, backend: b, dec: dec}
}

func newRig(t *testing.T, opts ...Option) *testRig {
	t.Helper()

	r := buildContext(t, opts...)
	r.ctx.Init()
	require.True(t, r.ctx.Healthy(), "context should be healthy")
	return r
}

func (r *testRig) voice(t *testing.T, i int) *fake.Voice {
	t.Helper()

	v, ok := r.ctx.channels[i].voice.(*fake.Voice)
	require.True(t, ok, "channel %d has no fake voice", i)
	return v
}

func (r *testRig) load(t *testing.T, ref string) *Sound {
	t.Helper()

	s, err := r.ctx.LoadSoundEffect(ref)
	require.NoError(t, err)
	return s
}

// channelOf returns the channel index an effect last played on.
func channelOf(t *testing.T, s *Sound) int {
	t.Helper()
	require.NotNil(t, s.lease, "sound never got a channel")
	return s.lease.ch.index
}
