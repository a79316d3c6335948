// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/ik5/audplay/backend/mixer"
	"github.com/ik5/audplay/formats"
	"github.com/ik5/audplay/formats/wav"
	"github.com/ik5/audplay/playback"
	"github.com/ik5/audplay/utils"
)

// tickInterval is the Poll cadence of a game frame.
const tickInterval = time.Second / 60

// session schedules a fixed play list against a playback context.
type session struct {
	pc       *playback.Context
	effects  []*playback.Sound
	music    *playback.Sound
	loop     bool
	spacing  time.Duration
	duration time.Duration

	elapsed time.Duration
	fired   int
	started bool
}

func newSession(pc *playback.Context, spacing, duration time.Duration) *session {
	return &session{pc: pc, spacing: spacing, duration: duration}
}

// addEffect loads ref; a failed load is logged and skipped.
func (s *session) addEffect(ref string) {
	snd, err := s.pc.LoadSoundEffect(ref)
	if err != nil {
		slog.Warn("skipping effect", "ref", ref, "err", err)
		return
	}
	s.effects = append(s.effects, snd)
}

// setMusic loads ref as a module when it has the xm extension, as a
// streaming session when stream is set, and as buffered music otherwise.
func (s *session) setMusic(ref string, stream, loop bool) {
	var (
		snd *playback.Sound
		err error
	)
	switch {
	case strings.EqualFold(strings.TrimPrefix(path.Ext(ref), "."), formats.XM):
		snd, err = s.pc.LoadModule(ref)
	case stream:
		snd, err = s.pc.LoadStreaming(ref)
	default:
		snd, err = s.pc.LoadMusic(ref)
	}
	if err != nil {
		slog.Warn("skipping music", "ref", ref, "err", err)
		return
	}
	s.music = snd
	s.loop = loop
}

// step advances the play list by dt. Music starts on the first step and
// every effect whose slot has come up is fired before the context is
// polled. step reports false once the duration has elapsed.
func (s *session) step(dt time.Duration) bool {
	if !s.started {
		s.started = true
		if s.music != nil && !s.music.Play(1, 1, s.loop) {
			slog.Warn("music did not start", "ref", s.music.Ref())
		}
	}

	for s.fired < len(s.effects) && time.Duration(s.fired)*s.spacing <= s.elapsed {
		snd := s.effects[s.fired]
		if !snd.Play(1, 1, false) {
			slog.Debug("effect dropped", "ref", snd.Ref())
		}
		s.fired++
	}

	s.pc.Poll(int(dt.Milliseconds()))
	s.elapsed += dt
	return s.elapsed < s.duration
}

// playRealtime ticks the session on the wall clock until it ends or ctx is
// cancelled. A device-less output is drained by the loop itself.
func playRealtime(ctx context.Context, s *session, out *output) {
	if !s.step(0) {
		return
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var scratch []float32
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted")
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if out.pull != nil {
				frames := int(dt * time.Duration(out.format.SampleRate) / time.Second)
				if need := frames * out.format.Channels; cap(scratch) < need {
					scratch = make([]float32, need)
				}
				out.pull.Mix(scratch[:frames*out.format.Channels])
			}
			if !s.step(dt) {
				return
			}
		}
	}
}

// render runs the session in virtual time, mixing one tick of audio after
// each step, and returns the mix as 16-bit PCM.
func render(s *session, m *mixer.Mixer) []int16 {
	format := m.Format()
	block := make([]float32, format.SampleRate/60*format.Channels)

	var pcm []int16
	for more := true; more; {
		more = s.step(tickInterval)
		n := m.Mix(block)
		for _, v := range block[:n] {
			pcm = append(pcm, utils.Float32ToInt16(v))
		}
	}
	return pcm
}

func renderFile(name string, s *session, m *mixer.Mixer) error {
	pcm := render(s, m)

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	format := m.Format()
	if err := wav.WriteWAV16(f, format.SampleRate, format.Channels, pcm); err != nil {
		_ = f.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
