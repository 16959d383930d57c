package main

import (
	"math/rand"
	"time"
)

// This file implements the reducer-style architecture building blocks:
//
//   - Events: inputs to the reducer (classified buttons, time ticks, fetch results)
//   - Commands: side effects requested by the reducer (persistence, brightness, fetches)
//   - Reduce(): computes next state + commands + broadcasts, without performing I/O
//
// The reducer must be pure. It must NOT mutate anything outside the returned
// state, must not block, and must not read the clock; time arrives in events.
// Randomness comes from the injected source inside DeviceState.
//
// The daemon loop is responsible for executing Commands and feeding
// observations back as Events.

// EngineConfig carries the reducer's tunables, converted once from the file
// config at startup.
type EngineConfig struct {
	Debounce       time.Duration
	HoldThreshold  time.Duration
	ComboThreshold time.Duration
	DimTimeout     time.Duration

	MessageDuration time.Duration
	ScrollInterval  time.Duration

	TauntMinClicks   int
	TauntChanceOneIn int
	RemoteEvery      int
	RemoteBatch      int

	// RemoteEnabled is false when no API credential is configured; the taunt
	// provider then never leaves the local pool.
	RemoteEnabled bool

	MilestoneEvery int

	BrightnessFull byte
	BrightnessDim  byte
}

// ReduceResult is the output of Reduce(): next state plus Commands to execute
// and Broadcasts to fan out to monitor clients.
type ReduceResult struct {
	State      *DeviceState
	Commands   []Command
	Broadcasts []StateBroadcast
}

// Reduce is the pure reducer.
//
// The daemon loop must:
// - execute Commands
// - translate command results into Events
// - feed those Events back into Reduce()
func Reduce(s *DeviceState, e Event, cfg EngineConfig) ReduceResult {
	if s == nil {
		s = &DeviceState{Rng: rand.New(rand.NewSource(0))}
	}

	var cmds []Command
	var bcs []StateBroadcast

	switch ev := e.(type) {
	case TimedEvent:
		now := ev.At
		if now.IsZero() {
			now = time.Now()
		}

		switch inner := ev.Event.(type) {
		case CountTap:
			// Exclusive spectacles swallow button events; the press outcome
			// matches the earlier blocking firmware even though the loop
			// keeps running.
			if s.Spectacle.Active() {
				break
			}
			markActivity(s, now, cfg, &cmds, &bcs)
			applyIncrement(s, cfg, now, &cmds, &bcs)

		case ResetTap:
			if s.Spectacle.Active() {
				break
			}
			markActivity(s, now, cfg, &cmds, &bcs)
			applyReset(s, cfg, now, &bcs)

		case ResetHoldStart:
			if s.Spectacle.Active() {
				break
			}
			markActivity(s, now, cfg, &cmds, &bcs)

		case ResetHoldActive:
			if s.Spectacle.Active() {
				break
			}
			markActivity(s, now, cfg, &cmds, &bcs)
			if !s.ShowingStats {
				s.ShowingStats = true
				s.Dirty = true
			}

		case ResetHoldEnd:
			markActivity(s, now, cfg, &cmds, &bcs)
			if s.ShowingStats {
				s.ShowingStats = false
				s.Dirty = true
			}

		case SecretCombo:
			if s.Spectacle.Active() {
				break
			}
			markActivity(s, now, cfg, &cmds, &bcs)
			applySecretReset(s, now, &bcs)

		case ShowMessage:
			markActivity(s, now, cfg, &cmds, &bcs)
			d := cfg.MessageDuration
			if inner.DurationMS > 0 {
				d = time.Duration(inner.DurationMS) * time.Millisecond
			}
			showTransient(s, inner.Text, d, cfg, now, &bcs)

		case RefillTaunts:
			n := inner.Count
			if n <= 0 {
				n = cfg.RemoteBatch
			}
			if cfg.RemoteEnabled && !s.Taunts.FetchInFlight {
				s.Taunts.FetchInFlight = true
				cmds = append(cmds, CmdFetchTaunts{Count: n})
			}

		case RequestStateSnapshot:
			cmds = append(cmds, CmdPublishSnapshot{Snapshot: s.Snapshot(now), Reply: inner.Reply})

		default:
			// Observations (fetch results, command failures) travel the same
			// channel as button events, so they arrive wrapped too. Unwrap and
			// reduce them at the top level.
			return Reduce(s, ev.Event, cfg)
		}

	case Tick:
		now := ev.Now

		// Message expiry and scrolling.
		wasActive := s.Message.Active
		if s.Message.StepTime(now, cfg.ScrollInterval) {
			s.Dirty = true
			if wasActive && !s.Message.Active {
				bcs = append(bcs, BroadcastMessageCleared{At: now})
			}
		}

		// Confetti overlay.
		if s.Confetti.Step(now) {
			s.Dirty = true
		}

		// Exclusive spectacle. Completion effects (egg message, secret-reset
		// zeroing) are applied here, after the last frame has been shown.
		prevKind := s.Spectacle.Kind
		eggNumber := s.Spectacle.Egg.Number
		done, changed := s.Spectacle.Step(s.Rng, now)
		if changed {
			s.Dirty = true
		}
		if done {
			switch prevKind {
			case SpectacleEgg:
				finishEgg(s, cfg, eggNumber, now, &bcs)
			case SpectacleExplosion:
				finishSecretReset(s, cfg, now, &cmds, &bcs)
			}
		}

		// Idle dimming.
		if !s.Idle.Dimmed && now.Sub(s.Idle.LastActivity) >= cfg.DimTimeout {
			s.Idle.Dimmed = true
			cmds = append(cmds, CmdSetBrightness{Level: cfg.BrightnessDim})
			bcs = append(bcs, BroadcastDimChanged{Dimmed: true, At: now})
		}

	case TauntBatchFetched:
		s.Taunts.FetchInFlight = false
		if ev.Err == nil && len(ev.Taunts) > 0 {
			s.Taunts.Cache = append(s.Taunts.Cache, ev.Taunts...)
		}
		// On failure there is nothing to do: the local fallback already
		// showed, and the next remote-preferred taunt retries.

	case CommandFailed:
		// Keep state as-is. Persistence and brightness failures degrade
		// gracefully; the daemon loop logs them.
		_ = ev

	default:
		// Unknown event type: no-op.
	}

	return ReduceResult{
		State:      s,
		Commands:   cmds,
		Broadcasts: bcs,
	}
}

// markActivity refreshes the idle timestamp and wakes the panel if dimmed.
func markActivity(s *DeviceState, now time.Time, cfg EngineConfig, cmds *[]Command, bcs *[]StateBroadcast) {
	s.Idle.LastActivity = now
	if s.Idle.Dimmed {
		s.Idle.Dimmed = false
		*cmds = append(*cmds, CmdSetBrightness{Level: cfg.BrightnessFull})
		*bcs = append(*bcs, BroadcastDimChanged{Dimmed: false, At: now})
	}
}

// showTransient replaces the visible message and reports it.
func showTransient(s *DeviceState, text string, d time.Duration, cfg EngineConfig, now time.Time, bcs *[]StateBroadcast) {
	s.Message.Show(text, d, cfg.ScrollInterval, now)
	s.Dirty = true
	*bcs = append(*bcs, BroadcastMessageShown{Text: text, At: now})
}

// applyIncrement advances the count and runs the reaction ladder: easter egg,
// record celebration, milestone confetti, probabilistic taunt.
func applyIncrement(s *DeviceState, cfg EngineConfig, now time.Time, cmds *[]Command, bcs *[]StateBroadcast) {
	s.Counter.Count++
	s.Dirty = true
	*bcs = append(*bcs, BroadcastCountChanged{Count: s.Counter.Count, HighScore: max(s.Counter.HighScore, s.Counter.Count), At: now})

	if egg, ok := easterEggs[s.Counter.Count]; ok {
		// The egg takes the screen; its message and confetti follow when the
		// motif finishes. A record reached on an egg updates the high score
		// silently: no "NEW RECORD!" and the session flag stays clear.
		s.Confetti.Particles = s.Confetti.Particles[:0]
		s.Spectacle.StartEgg(egg.Pattern, s.Counter.Count, s.Rng, now)
		*bcs = append(*bcs, BroadcastSpectacleStarted{Kind: egg.Pattern.String(), At: now})
		if s.Counter.Count > s.Counter.HighScore {
			s.Counter.HighScore = s.Counter.Count
			*cmds = append(*cmds, CmdPersistHighScore{Score: s.Counter.HighScore})
		}
		return
	}

	if s.Counter.Count > s.Counter.HighScore {
		if !s.Counter.RecordBroken {
			s.Counter.RecordBroken = true
			showTransient(s, "NEW RECORD!", cfg.MessageDuration, cfg, now, bcs)
			s.Confetti.Spawn(s.Rng, now)
			*bcs = append(*bcs, BroadcastSpectacleStarted{Kind: "confetti", At: now})
		} else if s.Counter.Count%int64(cfg.MilestoneEvery) == 0 {
			s.Confetti.Spawn(s.Rng, now)
			*bcs = append(*bcs, BroadcastSpectacleStarted{Kind: "confetti", At: now})
		} else {
			maybeTaunt(s, cfg, now, cmds, bcs)
		}
		// Every click above the record persists, so a power cut never loses
		// more than the in-flight write.
		s.Counter.HighScore = s.Counter.Count
		*cmds = append(*cmds, CmdPersistHighScore{Score: s.Counter.HighScore})
		return
	}

	if s.Counter.Count%int64(cfg.MilestoneEvery) == 0 {
		s.Confetti.Spawn(s.Rng, now)
		*bcs = append(*bcs, BroadcastSpectacleStarted{Kind: "confetti", At: now})
		return
	}

	maybeTaunt(s, cfg, now, cmds, bcs)
}

// applyReset zeroes the count. It does nothing at zero; with a live count it
// always surfaces a reset taunt (probability 1, unlike increment taunts).
func applyReset(s *DeviceState, cfg EngineConfig, now time.Time, bcs *[]StateBroadcast) {
	if s.Counter.Count == 0 {
		return
	}
	s.Counter.Count = 0
	s.Counter.RecordBroken = false
	s.Taunts.ClicksSinceTaunt = 0
	s.Dirty = true
	*bcs = append(*bcs, BroadcastCountChanged{Count: 0, HighScore: s.Counter.HighScore, At: now})
	showTransient(s, resetTaunts[s.Rng.Intn(len(resetTaunts))], cfg.MessageDuration, cfg, now, bcs)
}

// applySecretReset starts the explosion over the current high score. The
// actual zeroing waits for the animation to finish (finishSecretReset).
func applySecretReset(s *DeviceState, now time.Time, bcs *[]StateBroadcast) {
	s.Confetti.Particles = s.Confetti.Particles[:0]
	s.Spectacle.StartExplosion(s.Counter.HighScore, s.Rng, now)
	s.Dirty = true
	*bcs = append(*bcs, BroadcastSpectacleStarted{Kind: "explosion", At: now})
}

// finishSecretReset applies the wipe once the explosion sequence (including
// the BOOM hold) has played out.
func finishSecretReset(s *DeviceState, cfg EngineConfig, now time.Time, cmds *[]Command, bcs *[]StateBroadcast) {
	s.Counter.Count = 0
	s.Counter.HighScore = 0
	s.Counter.RecordBroken = false
	s.Taunts.ClicksSinceTaunt = 0
	s.Dirty = true
	*cmds = append(*cmds, CmdPersistHighScore{Score: 0})
	*bcs = append(*bcs,
		BroadcastHighScoreChanged{HighScore: 0, At: now},
		BroadcastCountChanged{Count: 0, HighScore: 0, At: now},
	)
	showTransient(s, "Score destroyed!", cfg.MessageDuration, cfg, now, bcs)
}

// finishEgg pins the egg's message and fires the unconditional confetti burst
// once the motif has played out.
func finishEgg(s *DeviceState, cfg EngineConfig, number int64, now time.Time, bcs *[]StateBroadcast) {
	if egg, ok := easterEggs[number]; ok {
		showTransient(s, egg.Text, cfg.MessageDuration, cfg, now, bcs)
	}
	s.Confetti.Spawn(s.Rng, now)
	s.Dirty = true
	*bcs = append(*bcs, BroadcastSpectacleStarted{Kind: "confetti", At: now})
}

// maybeTaunt runs the two-stage gate: a minimum number of increments since
// the last taunt, then a 1-in-K roll on every further increment. A winning
// roll picks the source: every Nth taunt prefers the remote cache, popping a
// cached entry when present and otherwise kicking off an async refill while
// falling back to the local pool immediately.
func maybeTaunt(s *DeviceState, cfg EngineConfig, now time.Time, cmds *[]Command, bcs *[]StateBroadcast) {
	s.Taunts.ClicksSinceTaunt++
	if s.Taunts.ClicksSinceTaunt < cfg.TauntMinClicks {
		return
	}
	if s.Rng.Intn(cfg.TauntChanceOneIn) != 0 {
		return
	}
	s.Taunts.ClicksSinceTaunt = 0

	s.Taunts.TauntsSinceRemote++
	if cfg.RemoteEnabled && s.Taunts.TauntsSinceRemote >= cfg.RemoteEvery {
		s.Taunts.TauntsSinceRemote = 0
		if t, ok := s.Taunts.popCachedTaunt(); ok {
			showTransient(s, t, cfg.MessageDuration, cfg, now, bcs)
			return
		}
		if !s.Taunts.FetchInFlight {
			s.Taunts.FetchInFlight = true
			*cmds = append(*cmds, CmdFetchTaunts{Count: cfg.RemoteBatch})
		}
	}

	showTransient(s, localTaunts[s.Rng.Intn(len(localTaunts))], cfg.MessageDuration, cfg, now, bcs)
}
