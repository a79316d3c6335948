// SPDX-License-Identifier: EPL-2.0

// Package config holds the configuration schema and loader for the audplay
// command.
package config

import "log/slog"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l to a slog level. Unknown values map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// BackendName selects the output device implementation.
type BackendName string

const (
	BackendOto       BackendName = "oto"
	BackendPortAudio BackendName = "portaudio"
	// BackendNull mixes in software without a device.
	BackendNull BackendName = "null"
)

func (b BackendName) IsValid() bool {
	switch b {
	case BackendOto, BackendPortAudio, BackendNull:
		return true
	}
	return false
}

// VoiceReset selects how the music channel is cleaned between owners.
type VoiceReset string

const (
	ResetRecreate VoiceReset = "recreate"
	ResetInPlace  VoiceReset = "in_place"
)

func (r VoiceReset) IsValid() bool {
	return r == ResetRecreate || r == ResetInPlace
}

// Config is the root configuration structure.
type Config struct {
	LogLevel   LogLevel   `yaml:"log_level"`
	Device     Device     `yaml:"device"`
	Mixer      Mixer      `yaml:"mixer"`
	Volume     Volume     `yaml:"volume"`
	Switches   Switches   `yaml:"switches"`
	Streaming  Streaming  `yaml:"streaming"`
	Assets     Assets     `yaml:"assets"`
	VoiceReset VoiceReset `yaml:"voice_reset"`
}

// Device configures the output device.
type Device struct {
	Backend BackendName `yaml:"backend"`
	// SampleRate of the device in Hz; 0 selects the backend default.
	SampleRate int `yaml:"sample_rate"`
	// Channels is 1 or 2; 0 selects stereo.
	Channels int `yaml:"channels"`
	// BufferMS is the device buffer length; 0 selects the backend default.
	BufferMS int `yaml:"buffer_ms"`
}

// Mixer configures the channel pool.
type Mixer struct {
	// Voices is the pool size including the reserved music channel.
	Voices int `yaml:"voices"`
}

type Volume struct {
	Sound float64 `yaml:"sound"`
	Music float64 `yaml:"music"`
}

type Switches struct {
	Sounds bool `yaml:"sounds"`
	Music  bool `yaml:"music"`
}

// Streaming sizes the rolling window of a streaming session.
type Streaming struct {
	Window      int `yaml:"window"`
	ChunkFrames int `yaml:"chunk_frames"`
}

// Assets locates sound resources.
type Assets struct {
	// Roots are directories searched in order.
	Roots []string `yaml:"roots"`
	// Deferred turns effect and music loads into deferred requests.
	Deferred bool `yaml:"deferred"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Device: Device{
			Backend: BackendOto,
		},
		Mixer:      Mixer{Voices: 8},
		Volume:     Volume{Sound: 1, Music: 1},
		Switches:   Switches{Sounds: true, Music: true},
		Streaming:  Streaming{Window: 3, ChunkFrames: 4096},
		Assets:     Assets{Roots: []string{"."}},
		VoiceReset: ResetRecreate,
	}
}
