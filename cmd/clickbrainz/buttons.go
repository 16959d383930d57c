package main

import "time"

// ============================================================================
// Button classification
// ============================================================================
// The classifier turns raw pressed/released levels, sampled by an input
// backend, into the classified events the reducer consumes. It is pure state
// machine logic: backends own the I/O and feed Sample.
//
// Rules:
//   - A press edge is accepted only if the channel's previous accepted edge
//     is at least the debounce window in the past.
//   - The count button taps on the press edge.
//   - The reset button is tap-or-hold: outcome is decided at release (tap) or
//     at the hold threshold (hold, which shows the stats view until release).
//   - While both buttons are pressed, individual tap/hold logic is suspended.
//     A continuous dual-press past the combo threshold fires SecretCombo once;
//     the classifier re-arms only after both buttons are released.
// ============================================================================

// ButtonClassifier holds per-channel debounce and tap/hold/combo tracking.
// Not safe for concurrent use; one backend goroutine owns it.
type ButtonClassifier struct {
	debounce time.Duration
	hold     time.Duration
	combo    time.Duration

	countPressed bool
	resetPressed bool

	lastCountEdge time.Time
	lastResetEdge time.Time

	// Reset tap-or-hold tracking for the current accepted press.
	resetTracking  bool
	resetHoldFired bool
	resetPressedAt time.Time

	// Combo episode: entered on simultaneous press, left when both buttons
	// are released. Individual events are suppressed for the whole episode.
	comboEpisode bool
	comboFired   bool
	bothNow      bool
	bothSince    time.Time
}

// NewButtonClassifier builds a classifier with the given thresholds.
func NewButtonClassifier(debounce, hold, combo time.Duration) *ButtonClassifier {
	return &ButtonClassifier{
		debounce: debounce,
		hold:     hold,
		combo:    combo,
	}
}

// Sample feeds one reading of both channels. It returns the classified events
// produced by this sample, in order. Call it on every poll tick AND on every
// edge delivery; time-based outcomes (hold, combo) only advance when called.
func (k *ButtonClassifier) Sample(count, reset bool, now time.Time) []Event {
	var evs []Event

	countEdgeDown := count && !k.countPressed
	resetEdgeDown := reset && !k.resetPressed
	resetEdgeUp := !reset && k.resetPressed
	k.countPressed = count
	k.resetPressed = reset

	// Combo detection wins over single-button logic, including when both
	// press edges land on the same sample.
	if count && reset {
		if !k.comboEpisode {
			k.comboEpisode = true
			k.comboFired = false

			// A dual-press cancels an in-progress reset hold. Close the
			// stats view if it was already showing.
			if k.resetTracking {
				k.resetTracking = false
				if k.resetHoldFired {
					k.resetHoldFired = false
					evs = append(evs, ResetHoldEnd{})
				}
			}
		}
		if !k.bothNow {
			k.bothNow = true
			k.bothSince = now
		}
		if !k.comboFired && now.Sub(k.bothSince) >= k.combo {
			k.comboFired = true
			evs = append(evs, SecretCombo{})
		}
		return evs
	}
	k.bothNow = false

	if k.comboEpisode {
		if !count && !reset {
			k.comboEpisode = false
		}
		return evs
	}

	if countEdgeDown && now.Sub(k.lastCountEdge) >= k.debounce {
		k.lastCountEdge = now
		evs = append(evs, CountTap{})
	}

	if resetEdgeDown && now.Sub(k.lastResetEdge) >= k.debounce {
		k.lastResetEdge = now
		k.resetTracking = true
		k.resetHoldFired = false
		k.resetPressedAt = now
		evs = append(evs, ResetHoldStart{})
	}

	if k.resetTracking && reset && !k.resetHoldFired && now.Sub(k.resetPressedAt) >= k.hold {
		k.resetHoldFired = true
		evs = append(evs, ResetHoldActive{})
	}

	if resetEdgeUp && k.resetTracking {
		k.resetTracking = false
		if k.resetHoldFired {
			k.resetHoldFired = false
			evs = append(evs, ResetHoldEnd{})
		} else {
			evs = append(evs, ResetTap{})
		}
	}

	return evs
}
