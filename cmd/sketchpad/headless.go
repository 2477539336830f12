package main

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/raster"
	"github.com/inamate/sketchpad/internal/render"
)

// runHeadless renders continuously into an off-screen surface for cfg.Ticks
// frames, or until ctx is done when Ticks is 0.
func runHeadless(ctx context.Context, cfg *config.Config, eng *engine.Engine, queue *render.FrameQueue) error {
	dpr := cfg.DevicePixelRatio
	if dpr <= 0 {
		dpr = 1
	}
	surface := raster.NewSurface(int(math.Max(1, cfg.Width*dpr)), int(math.Max(1, cfg.Height*dpr)))
	eng.Resize(cfg.Width, cfg.Height, dpr)
	eng.Attach(surface)
	eng.StartRendering()
	defer eng.StopRendering()

	slog.Info("headless run", "width", surface.Width(), "height", surface.Height(), "ticks", cfg.Ticks)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TPS))
	defer ticker.Stop()

loop:
	for i := 0; cfg.Ticks <= 0 || i < cfg.Ticks; i++ {
		select {
		case now := <-ticker.C:
			queue.RunFrame(now)
		case <-ctx.Done():
			break loop
		}
	}

	if cfg.Snapshot != "" {
		if err := surface.SavePNG(cfg.Snapshot); err != nil {
			return err
		}
		slog.Info("snapshot written", "path", cfg.Snapshot, "frames", eng.Frames())
	}
	return nil
}
