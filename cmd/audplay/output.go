// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/ik5/audplay/backend"
	"github.com/ik5/audplay/backend/mixer"
	"github.com/ik5/audplay/backend/oto"
	"github.com/ik5/audplay/internal/config"
)

const (
	defaultSampleRate = 44100
	defaultChannels   = 2
)

// output is the backend handed to the playback context.
type output struct {
	backend backend.Backend
	format  backend.Format
	// pull is set when no device drains the mixer, so the caller has to.
	pull *mixer.Mixer
}

func newOutput(cfg *config.Config, headless bool) (*output, error) {
	format := backend.Format{
		SampleRate: cfg.Device.SampleRate,
		Channels:   cfg.Device.Channels,
	}
	if format.SampleRate <= 0 {
		format.SampleRate = defaultSampleRate
	}
	if format.Channels <= 0 {
		format.Channels = defaultChannels
	}

	if headless || cfg.Device.Backend == config.BackendNull {
		m := mixer.New(format)
		return &output{backend: m, format: format, pull: m}, nil
	}

	switch cfg.Device.Backend {
	case config.BackendOto:
		b := oto.New(oto.Options{
			SampleRate: format.SampleRate,
			Channels:   format.Channels,
			BufferSize: time.Duration(cfg.Device.BufferMS) * time.Millisecond,
		})
		return &output{backend: b, format: format}, nil
	case config.BackendPortAudio:
		b, err := newPortAudio(format, cfg.Device.BufferMS)
		if err != nil {
			return nil, err
		}
		return &output{backend: b, format: format}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Device.Backend)
}
