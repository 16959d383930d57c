package main

import (
	"context"
	"log/slog"
	"time"
)

// Effects executes reducer-emitted Commands (side effects) against external
// systems: the score file, the panel and the remote taunt service.
//
// Design rules:
// - This layer is allowed to perform I/O.
// - It must never call Reduce() directly; it only emits Events to be reduced by the daemon loop.
// - The daemon loop is responsible for sequencing: Reduce -> Commands -> Run -> Events -> Reduce.
//
// Slow work (the remote taunt fetch) runs on its own goroutine and reports
// back through the events channel so the loop never stalls behind the network.
type Effects struct {
	store   *ScoreStore
	fetcher TauntFetcher
	display Display
	events  chan<- Event
	logger  *slog.Logger
}

// Run executes a single Command and emits observation Events via onEvent.
func (e *Effects) Run(ctx context.Context, cmd Command, onEvent func(Event)) {
	if onEvent == nil {
		// No place to report observations/errors; nothing sensible to do.
		return
	}

	now := time.Now()

	switch c := cmd.(type) {
	case CmdPersistHighScore:
		if e.store == nil {
			onEvent(CommandFailed{Command: cmd, Err: errNoStore{}, At: now})
			return
		}
		if err := e.store.Save(c.Score); err != nil {
			e.logger.Error("high score save failed", "error", err, "score", c.Score)
			onEvent(CommandFailed{Command: cmd, Err: err, At: now})
		}
		// A successful save needs no observation; the reducer already holds
		// the new score.

	case CmdFetchTaunts:
		// The result must always come back as TauntBatchFetched, success or
		// not, so the reducer's in-flight flag resets.
		if e.fetcher == nil {
			onEvent(TauntBatchFetched{Err: errNoFetcher{}, At: now})
			return
		}
		go e.fetchTaunts(ctx, c.Count)

	case CmdSetBrightness:
		if e.display == nil {
			onEvent(CommandFailed{Command: cmd, Err: errNoDisplay{}, At: now})
			return
		}
		if err := e.display.SetBrightness(c.Level); err != nil {
			e.logger.Error("panel brightness change failed", "error", err, "level", c.Level)
			onEvent(CommandFailed{Command: cmd, Err: err, At: now})
		}

	case CmdPublishSnapshot:
		// Deliver the reducer-produced snapshot to the requester. Moving the
		// channel send here keeps the reducer pure.
		if c.Reply == nil {
			e.logger.Warn("state snapshot requested with nil reply channel")
			return
		}

		// Never block the loop on a slow requester.
		select {
		case c.Reply <- c.Snapshot:
			// delivered
		default:
			e.logger.Warn("state snapshot reply channel not ready; dropping snapshot")
		}

	default:
		// Unknown command: record failure so the reducer can react (if desired).
		e.logger.Warn("unknown command type", "command", cmd.String())
		onEvent(CommandFailed{
			Command: cmd,
			Err:     errUnknownCommand{cmd: cmd},
			At:      now,
		})
	}
}

// fetchTaunts performs the remote call off the loop and feeds the result back
// through the events channel. The onEvent closures belong to the loop
// goroutine and must not be touched from here.
func (e *Effects) fetchTaunts(ctx context.Context, count int) {
	taunts, err := e.fetcher.FetchTaunts(ctx, count)
	if err != nil {
		e.logger.Warn("remote taunt fetch failed", "error", err)
	}

	ev := TauntBatchFetched{Taunts: taunts, Err: err, At: time.Now()}
	select {
	case e.events <- ev:
	case <-ctx.Done():
	}
}

// errNoStore indicates a persistence command with no score store wired.
type errNoStore struct{}

func (errNoStore) Error() string { return "no score store" }

// errNoFetcher indicates a taunt fetch with no remote client wired.
type errNoFetcher struct{}

func (errNoFetcher) Error() string { return "no taunt fetcher" }

// errNoDisplay indicates a brightness command with no display wired.
type errNoDisplay struct{}

func (errNoDisplay) Error() string { return "no display" }

type errUnknownCommand struct {
	cmd Command
}

func (e errUnknownCommand) Error() string { return "unknown command: " + e.cmd.String() }
