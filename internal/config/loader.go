// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUDPLAY_"

// Load reads the YAML configuration file at path on top of [Default] and
// returns the validated result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r on top of [Default] and validates the
// result. Empty input yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if !cfg.Device.Backend.IsValid() {
		errs = append(errs, fmt.Errorf("device.backend %q is invalid; valid values: oto, portaudio, null", cfg.Device.Backend))
	}
	if cfg.Device.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("device.sample_rate %d must not be negative", cfg.Device.SampleRate))
	}
	if cfg.Device.Channels < 0 || cfg.Device.Channels > 2 {
		errs = append(errs, fmt.Errorf("device.channels %d must be 0, 1 or 2", cfg.Device.Channels))
	}
	if cfg.Device.BufferMS < 0 {
		errs = append(errs, fmt.Errorf("device.buffer_ms %d must not be negative", cfg.Device.BufferMS))
	}

	if cfg.Mixer.Voices < 2 {
		errs = append(errs, fmt.Errorf("mixer.voices %d must be at least 2", cfg.Mixer.Voices))
	}

	if cfg.Volume.Sound < 0 {
		errs = append(errs, fmt.Errorf("volume.sound %g must not be negative", cfg.Volume.Sound))
	}
	if cfg.Volume.Music < 0 {
		errs = append(errs, fmt.Errorf("volume.music %g must not be negative", cfg.Volume.Music))
	}

	if cfg.Streaming.Window < 2 {
		errs = append(errs, fmt.Errorf("streaming.window %d must be at least 2", cfg.Streaming.Window))
	}
	if cfg.Streaming.ChunkFrames < 256 {
		errs = append(errs, fmt.Errorf("streaming.chunk_frames %d must be at least 256", cfg.Streaming.ChunkFrames))
	}

	if len(cfg.Assets.Roots) == 0 {
		errs = append(errs, errors.New("assets.roots must list at least one directory"))
	}

	if !cfg.VoiceReset.IsValid() {
		errs = append(errs, fmt.Errorf("voice_reset %q is invalid; valid values: recreate, in_place", cfg.VoiceReset))
	}

	return errors.Join(errs...)
}

// ApplyEnv overrides cfg from AUDPLAY_* variables found through lookup
// (usually os.LookupEnv) and validates the result.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error

	str := func(name string, set func(string)) {
		if v, ok := lookup(EnvPrefix + name); ok {
			set(v)
		}
	}
	num := func(name string, dst *int) {
		str(name, func(v string) {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		})
	}
	float := func(name string, dst *float64) {
		str(name, func(v string) {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = f
		})
	}
	flag := func(name string, dst *bool) {
		str(name, func(v string) {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		})
	}

	str("LOG_LEVEL", func(v string) { cfg.LogLevel = LogLevel(v) })
	str("BACKEND", func(v string) { cfg.Device.Backend = BackendName(v) })
	num("SAMPLE_RATE", &cfg.Device.SampleRate)
	num("CHANNELS", &cfg.Device.Channels)
	num("BUFFER_MS", &cfg.Device.BufferMS)
	num("VOICES", &cfg.Mixer.Voices)
	float("SOUND_VOLUME", &cfg.Volume.Sound)
	float("MUSIC_VOLUME", &cfg.Volume.Music)
	flag("SOUNDS", &cfg.Switches.Sounds)
	flag("MUSIC", &cfg.Switches.Music)
	num("STREAM_WINDOW", &cfg.Streaming.Window)
	num("STREAM_CHUNK_FRAMES", &cfg.Streaming.ChunkFrames)
	str("ASSET_ROOTS", func(v string) { cfg.Assets.Roots = filepath.SplitList(v) })
	flag("DEFERRED", &cfg.Assets.Deferred)
	str("VOICE_RESET", func(v string) { cfg.VoiceReset = VoiceReset(v) })

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return Validate(cfg)
}
