package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ============================================================================
// Central Daemon Loop - Reducer-driven "Appliance Brain"
// ============================================================================
//
// Design rules enforced here:
//   - The reducer performs no I/O and computes: next state + commands + broadcasts.
//   - The daemon loop is the only place that executes side effects (Effects.Run).
//   - Effect results are turned into Events and fed back into the reducer.
//   - The loop owns the panel: after each batch it re-composes and pushes a
//     frame whenever the state is marked dirty.
//
// Refinements in this version:
//   - Use explicit event/command/broadcast queues (no nested/re-entrant execution).
//   - Reducer is pure and owns all counter/animation state via DeviceState.
//
// ============================================================================

// runDaemon is the main daemon loop that:
//   - Receives Events from multiple sources (buttons, IPC, fetch results)
//   - Emits Tick events on a fixed cadence
//   - Reduces events into (state, commands, broadcasts)
//   - Executes commands and feeds observations back into the reducer
//   - Renders dirty state to the display and fans broadcasts out to monitors
//
// Shutdown semantics:
//   - Exits when ctx is canceled
//   - Exits cleanly when the events channel is closed
func runDaemon(
	ctx context.Context,
	events <-chan Event,
	eff *Effects,
	display Display,
	broadcasts chan<- StateBroadcast,
	cfg EngineConfig,
	state *DeviceState,
	tickHz int,
	logger *slog.Logger,
) {
	// Guard: reducer-driven daemon expects a state container.
	if state == nil {
		logger.Error("daemon state is nil")
		return
	}
	if eff == nil {
		logger.Error("daemon effects is nil")
		return
	}
	if display == nil {
		display = nullDisplay{}
	}

	// Configure tick cadence.
	updateInterval := time.Second / time.Duration(tickHz)
	ticker := time.NewTicker(updateInterval)
	defer ticker.Stop()

	lastTick := time.Now()

	// Explicit queues:
	// - eventQueue holds events awaiting reduction
	// - cmdQueue holds commands awaiting execution
	// - broadcastQueue holds monitor notifications awaiting fan-out
	var eventQueue []Event
	var cmdQueue []Command
	var broadcastQueue []StateBroadcast

	enqueueEvent := func(ev Event) {
		eventQueue = append(eventQueue, ev)
	}
	enqueueCommands := func(cmds []Command) {
		if len(cmds) == 0 {
			return
		}
		cmdQueue = append(cmdQueue, cmds...)
	}
	enqueueBroadcasts := func(bcs []StateBroadcast) {
		// Monitoring is optional; with no channel wired the notifications
		// are not worth queuing at all.
		if broadcasts == nil || len(bcs) == 0 {
			return
		}
		broadcastQueue = append(broadcastQueue, bcs...)
	}

	// Reduce all queued events, enqueuing any resulting commands/broadcasts.
	flushEvents := func() {
		for len(eventQueue) > 0 {
			ev := eventQueue[0]
			eventQueue = eventQueue[1:]

			rr := Reduce(state, ev, cfg)
			if rr.State != nil {
				state = rr.State
			}
			enqueueCommands(rr.Commands)
			enqueueBroadcasts(rr.Broadcasts)
		}
	}

	// Execute all queued commands, enqueuing observation events.
	flushCommands := func() {
		for len(cmdQueue) > 0 {
			cmd := cmdQueue[0]
			cmdQueue = cmdQueue[1:]

			eff.Run(ctx, cmd, func(obs Event) {
				enqueueEvent(obs)
			})

			// Observations should be reduced promptly to keep state coherent and
			// allow the reducer to emit follow-up commands (if any).
			flushEvents()
		}
	}

	// Hand queued broadcasts to the WS fan-out without ever blocking the loop.
	flushBroadcasts := func() {
		for len(broadcastQueue) > 0 {
			bc := broadcastQueue[0]
			broadcastQueue = broadcastQueue[1:]

			select {
			case broadcasts <- bc:
			default:
				logger.Debug("monitor broadcast dropped (channel full)", "broadcast", fmt.Sprintf("%T", bc))
			}
		}
	}

	// Compose and push a frame when something visible changed.
	var frame Frame
	render := func() {
		if !state.Dirty {
			return
		}
		state.Dirty = false
		composeFrame(&frame, state)
		if err := display.Render(&frame); err != nil {
			logger.Error("display render failed", "error", err)
		}
	}

	// Paint the initial screen before any input arrives (fresh state is dirty).
	render()

	// Main loop
	for {
		select {
		case <-ctx.Done():
			logger.Info("daemon stopping (context canceled)")
			return

		case ev, ok := <-events:
			if !ok {
				logger.Info("daemon stopping (events channel closed)")
				return
			}
			enqueueEvent(TimedEvent{Event: ev, At: time.Now()})
			flushEvents()
			flushCommands()
			flushBroadcasts()
			render()

		case now := <-ticker.C:
			dt := now.Sub(lastTick)
			lastTick = now
			enqueueEvent(Tick{Now: now, Dt: dt})
			flushEvents()
			flushCommands()
			flushBroadcasts()
			render()
		}
	}
}

// NOTE:
// Command execution is implemented in `effects.go` as `Effects.Run(...)`.
// This file is only responsible for orchestrating event/command/broadcast
// queues, reducer invocation and frame pushes.
