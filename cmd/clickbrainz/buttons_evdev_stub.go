//go:build !linux

package main

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// runEvdevButtons is Linux-only; other platforms use the gpio or terminal
// backends.
func runEvdevButtons(ctx context.Context, cfg EvdevInputConfig, classifier *ButtonClassifier, pollInterval time.Duration, events chan<- Event, logger *slog.Logger) error {
	return errors.New("evdev input is only supported on linux")
}
