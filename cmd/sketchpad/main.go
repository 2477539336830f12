package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/inspect"
	"github.com/inamate/sketchpad/internal/metrics"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/tool"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code once every deferred cleanup has run.
func run() int {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		return 1
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.New()
	queue := render.NewFrameQueue()

	eng := engine.New(engine.Options{
		Canvas: canvas.Config{
			Width:      cfg.Width,
			Height:     cfg.Height,
			Background: cfg.Background,
		},
		DPR:            cfg.DevicePixelRatio,
		Layers:         cfg.Layers,
		Style:          tool.Style{Width: cfg.StrokeWidth, Colour: cfg.StrokeColour},
		SampleInterval: cfg.PenSampleInterval,
		Scheduler:      queue,
		Metrics:        collector,
	})
	defer eng.Close()
	eng.Seed()

	if cfg.InspectAddr != "" {
		hub := inspect.NewHub(inspect.DefaultInterval)
		go hub.Run(ctx)
		eng.OnFrame(func(s engine.Snapshot) {
			if err := hub.Publish(s); err != nil {
				slog.Warn("publish snapshot", "error", err)
			}
		})

		srv := inspect.NewServer(cfg.InspectAddr, hub, collector.Handler())
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				slog.Error("inspector error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("inspector shutdown", "error", err)
			}
		}()
	}

	if cfg.Headless {
		err = runHeadless(ctx, cfg, eng, queue)
	} else {
		err = runWindow(ctx, cfg, eng, queue)
	}
	if err != nil {
		slog.Error("sketchpad stopped", "error", err)
		return 1
	}
	slog.Info("sketchpad stopped", "frames", eng.Frames())
	return 0
}
