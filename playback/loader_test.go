// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSLoader_RootsInOrder(t *testing.T) {
	t.Parallel()

	base := fstest.MapFS{
		"sfx/jump.wav": {Data: []byte("base")},
		"sfx/coin.wav": {Data: []byte("coin")},
	}
	patch := fstest.MapFS{
		"sfx/jump.wav": {Data: []byte("patch")},
	}
	l := NewFSLoader(patch, base)

	tests := []struct {
		ref  string
		want string
	}{
		{"sfx/jump.wav", "patch"},
		{"sfx/coin.wav", "coin"},
		{"/sfx/coin.wav", "coin"},
		{"sfx/../sfx/coin.wav", "coin"},
		{`sfx\coin.wav`, "coin"},
	}
	for _, tt := range tests {
		rc, err := l.Open(tt.ref)
		require.NoError(t, err, "Open(%q)", tt.ref)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, tt.want, string(data), "Open(%q)", tt.ref)
	}
}

func TestFSLoader_NotFound(t *testing.T) {
	t.Parallel()

	l := NewFSLoader(fstest.MapFS{})
	for _, ref := range []string{"missing.wav", "../outside.wav", ""} {
		_, err := l.Open(ref)
		assert.ErrorIs(t, err, ErrNotFound, "Open(%q)", ref)
	}
}

func TestLoaderFunc(t *testing.T) {
	t.Parallel()

	r := newRig(t, WithLoader(LoaderFunc(func(ref string) (io.ReadCloser, error) {
		switch ref {
		case "gone.snd":
			return nil, fs.ErrNotExist
		case "locked.snd":
			return nil, fs.ErrPermission
		}
		return io.NopCloser(strings.NewReader(ref)), nil
	})))

	s, err := r.ctx.LoadSoundEffect("any.snd")
	require.NoError(t, err)
	assert.Equal(t, KindEffect, s.Kind())

	_, err = r.ctx.LoadSoundEffect("gone.snd")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = r.ctx.LoadSoundEffect("locked.snd")
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.False(t, errors.Is(err, ErrNotFound))
}
