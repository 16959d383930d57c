package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// runGPIOButtons polls two pull-up GPIO pins at the tick cadence and feeds
// the classifier. Pressed reads low. Blocks until ctx is canceled or the pins
// cannot be configured. host.Init must have been called.
func runGPIOButtons(ctx context.Context, cfg GPIOInputConfig, classifier *ButtonClassifier, pollInterval time.Duration, events chan<- Event, logger *slog.Logger) error {
	countPin := gpioreg.ByName(cfg.CountPin)
	if countPin == nil {
		return fmt.Errorf("gpio pin %q not found", cfg.CountPin)
	}
	resetPin := gpioreg.ByName(cfg.ResetPin)
	if resetPin == nil {
		return fmt.Errorf("gpio pin %q not found", cfg.ResetPin)
	}

	if err := countPin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("configure %s as pull-up input: %w", cfg.CountPin, err)
	}
	if err := resetPin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("configure %s as pull-up input: %w", cfg.ResetPin, err)
	}

	logger.Info("gpio buttons ready", "count_pin", cfg.CountPin, "reset_pin", cfg.ResetPin)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("gpio input stopping (context canceled)")
			return nil

		case now := <-ticker.C:
			countPressed := countPin.Read() == gpio.Low
			resetPressed := resetPin.Read() == gpio.Low

			for _, ev := range classifier.Sample(countPressed, resetPressed, now) {
				select {
				case events <- ev:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}
