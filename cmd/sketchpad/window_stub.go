//go:build nowindow

package main

import (
	"context"
	"errors"

	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/render"
)

func runWindow(context.Context, *config.Config, *engine.Engine, *render.FrameQueue) error {
	return errors.New("built without window support; set SKETCHPAD_HEADLESS=true")
}
