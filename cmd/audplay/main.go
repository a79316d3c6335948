// SPDX-License-Identifier: EPL-2.0

// Command audplay plays sound effects and music through the playback core.
//
//	audplay [flags] effect.wav...
//
// Effects given as arguments are fired one after another, spaced by
// -spacing. -music adds a music track on the reserved channel; -stream plays
// it block by block instead of decoding it up front. With -render the mix is
// written to a WAV file instead of a device.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ik5/audplay/formats"
	"github.com/ik5/audplay/internal/config"
	"github.com/ik5/audplay/playback"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	backendName := flag.String("backend", "", "output backend: oto, portaudio or null")
	musicRef := flag.String("music", "", "music resource played on the music channel")
	stream := flag.Bool("stream", false, "stream the music instead of decoding it up front")
	loop := flag.Bool("loop", false, "loop the music")
	renderPath := flag.String("render", "", "write the mix to this WAV file instead of a device")
	duration := flag.Duration("duration", 5*time.Second, "how long to play")
	spacing := flag.Duration("spacing", 250*time.Millisecond, "delay between effects")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "audplay: .env: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "audplay: config file %q not found\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "audplay: %v\n", err)
		}
		return 1
	}
	if *backendName != "" {
		cfg.Device.Backend = config.BackendName(*backendName)
		if err := config.Validate(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "audplay: %v\n", err)
			return 1
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel.Level()}))
	slog.SetDefault(logger)

	headless := *renderPath != ""
	out, err := newOutput(cfg, headless)
	if err != nil {
		slog.Error("failed to create backend", "backend", cfg.Device.Backend, "err", err)
		return 1
	}

	pc := newContext(cfg, out, logger)
	defer func() {
		if err := pc.Close(); err != nil {
			slog.Warn("close failed", "err", err)
		}
	}()
	if !pc.Healthy() {
		// Handles are inert from here on, but the run still completes.
		slog.Warn("audio unavailable, continuing silently")
	}

	sess := newSession(pc, *spacing, *duration)
	for _, ref := range flag.Args() {
		sess.addEffect(ref)
	}
	if *musicRef != "" {
		sess.setMusic(*musicRef, *stream, *loop)
	}
	if n := pc.Deferred().Drain(); n > 0 {
		slog.Info("resolved deferred loads", "count", n)
	}

	slog.Info("audplay starting",
		"backend", cfg.Device.Backend,
		"effects", len(sess.effects),
		"music", *musicRef,
		"duration", *duration,
	)

	if headless {
		if err := renderFile(*renderPath, sess, out.pull); err != nil {
			slog.Error("failed to render", "path", *renderPath, "err", err)
			return 1
		}
		slog.Info("rendered", "path", *renderPath)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	playRealtime(ctx, sess, out)
	return 0
}

// loadConfig reads path when given and applies AUDPLAY_* overrides.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newContext builds and initialises the playback context described by cfg.
func newContext(cfg *config.Config, out *output, logger *slog.Logger) *playback.Context {
	roots := make([]fs.FS, 0, len(cfg.Assets.Roots))
	for _, root := range cfg.Assets.Roots {
		roots = append(roots, os.DirFS(root))
	}

	reset := playback.ResetRecreate
	if cfg.VoiceReset == config.ResetInPlace {
		reset = playback.ResetInPlace
	}

	pc := playback.New(out.backend, formats.NewRegistry(),
		playback.WithLogger(logger),
		playback.WithLoader(playback.NewFSLoader(roots...)),
		playback.WithChannels(cfg.Mixer.Voices),
		playback.WithStreamWindow(cfg.Streaming.Window, cfg.Streaming.ChunkFrames),
		playback.WithVoiceReset(reset),
	)
	pc.SetDeferredLoading(cfg.Assets.Deferred)

	// Switches and volumes only stick on an initialised context.
	pc.Init()
	pc.SetSoundVolume(float32(cfg.Volume.Sound))
	pc.SetMusicVolume(float32(cfg.Volume.Music))
	pc.SetSoundsOn(cfg.Switches.Sounds)
	pc.SetMusicOn(cfg.Switches.Music)
	return pc
}
