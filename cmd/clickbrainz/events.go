package main

import (
	"encoding/json"
	"fmt"
	"time"
)

// ============================================================================
// Events
// ============================================================================
// Events represent intent and observations from every source (buttons, IPC,
// taunt fetches, timers). The daemon loop feeds them to the reducer; nothing
// else mutates state.
// ============================================================================

// Event is a marker interface for everything the reducer consumes.
type Event interface {
	eventMarker()
}

// TimedEvent attaches an arrival timestamp to an external event so the
// reducer never has to call time.Now itself.
type TimedEvent struct {
	Event Event
	At    time.Time
}

func (TimedEvent) eventMarker() {}

// Tick drives all time-based behavior: hold detection handoff, message
// expiry, scrolling, animation frames, idle dimming.
type Tick struct {
	Now time.Time
	Dt  time.Duration
}

func (Tick) eventMarker() {}

// ============================================================================
// Classified button events
// ============================================================================

// CountTap is a debounced press of the count button.
type CountTap struct{}

func (CountTap) eventMarker() {}

// ResetTap is a short press of the reset button (released before the hold
// threshold).
type ResetTap struct{}

func (ResetTap) eventMarker() {}

// ResetHoldStart fires on the accepted press edge of the reset button. The
// outcome of the press (tap or hold) is not known yet.
type ResetHoldStart struct{}

func (ResetHoldStart) eventMarker() {}

// ResetHoldActive fires once when the reset button has been held past the
// hold threshold. The stats view shows while the hold continues.
type ResetHoldActive struct{}

func (ResetHoldActive) eventMarker() {}

// ResetHoldEnd fires when a hold that crossed the threshold is released.
type ResetHoldEnd struct{}

func (ResetHoldEnd) eventMarker() {}

// SecretCombo fires once per continuous dual-press held past the combo
// threshold. It wipes the high score.
type SecretCombo struct{}

func (SecretCombo) eventMarker() {}

// ============================================================================
// Injected / remote events
// ============================================================================

// ShowMessage pins an arbitrary transient message, replacing any current one.
// Used by the IPC surface.
type ShowMessage struct {
	Text       string `json:"text"`
	DurationMS int    `json:"duration_ms,omitempty"` // 0 means the default duration
}

func (ShowMessage) eventMarker() {}

// RefillTaunts forces a remote taunt fetch regardless of cache state.
type RefillTaunts struct {
	Count int `json:"count,omitempty"` // 0 means the configured batch size
}

func (RefillTaunts) eventMarker() {}

// TauntBatchFetched is the observation emitted after a remote refill attempt
// completes. On failure Taunts is empty and Err is set.
type TauntBatchFetched struct {
	Taunts []string
	Err    error
	At     time.Time
}

func (TauntBatchFetched) eventMarker() {}

// CommandFailed reports an effect that could not be executed.
type CommandFailed struct {
	Command Command
	Err     error
	At      time.Time
}

func (CommandFailed) eventMarker() {}

// RequestStateSnapshot asks the daemon loop for a copy of the current state.
// Reply must be buffered; the loop sends exactly one snapshot and never
// blocks on a full channel.
type RequestStateSnapshot struct {
	Reply chan StateSnapshot
}

func (RequestStateSnapshot) eventMarker() {}

// ============================================================================
// JSON Encoding/Decoding Support
// ============================================================================
// EventEnvelope wraps the injectable events for the IPC socket. Internal
// events (ticks, observations, snapshot requests) are deliberately absent
// from the switches below.
// ============================================================================

// EventEnvelope wraps an event with a type discriminator for JSON marshaling
type EventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// UnmarshalEvent deserializes a JSON event envelope into a concrete Event
func UnmarshalEvent(data []byte) (Event, error) {
	var env EventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	switch env.Type {
	case "count_tap":
		return CountTap{}, nil

	case "reset_tap":
		return ResetTap{}, nil

	case "reset_hold_start":
		return ResetHoldStart{}, nil

	case "reset_hold_active":
		return ResetHoldActive{}, nil

	case "reset_hold_end":
		return ResetHoldEnd{}, nil

	case "secret_combo":
		return SecretCombo{}, nil

	case "show_message":
		var a ShowMessage
		if err := json.Unmarshal(env.Data, &a); err != nil {
			return nil, fmt.Errorf("unmarshal ShowMessage: %w", err)
		}
		return a, nil

	case "fetch_taunts":
		var a RefillTaunts
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &a); err != nil {
				return nil, fmt.Errorf("unmarshal RefillTaunts: %w", err)
			}
		}
		return a, nil

	default:
		return nil, fmt.Errorf("unknown event type: %q", env.Type)
	}
}

// MarshalEvent serializes an Event into a JSON envelope with type discriminator
func MarshalEvent(e Event) ([]byte, error) {
	var env EventEnvelope

	switch e := e.(type) {
	case CountTap:
		env.Type = "count_tap"

	case ResetTap:
		env.Type = "reset_tap"

	case ResetHoldStart:
		env.Type = "reset_hold_start"

	case ResetHoldActive:
		env.Type = "reset_hold_active"

	case ResetHoldEnd:
		env.Type = "reset_hold_end"

	case SecretCombo:
		env.Type = "secret_combo"

	case ShowMessage:
		env.Type = "show_message"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal ShowMessage: %w", err)
		}
		env.Data = data

	case RefillTaunts:
		env.Type = "fetch_taunts"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal RefillTaunts: %w", err)
		}
		env.Data = data

	default:
		return nil, fmt.Errorf("unsupported event type: %T", e)
	}

	return json.Marshal(env)
}
