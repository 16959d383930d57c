package main

import "time"

// ==============================
// State broadcasts
// ==============================

// StateBroadcast is a reducer-emitted notification of an externally visible
// state change. The WS broadcaster converts these to wire envelopes and fans
// them out to monitor clients.
type StateBroadcast interface {
	broadcastMarker()
}

// BroadcastCountChanged reports a new count value.
type BroadcastCountChanged struct {
	Count     int64
	HighScore int64
	At        time.Time
}

func (BroadcastCountChanged) broadcastMarker() {}

// BroadcastHighScoreChanged reports a new persisted high score, including the
// wipe to zero after a secret reset.
type BroadcastHighScoreChanged struct {
	HighScore int64
	At        time.Time
}

func (BroadcastHighScoreChanged) broadcastMarker() {}

// BroadcastMessageShown reports a transient message becoming visible.
type BroadcastMessageShown struct {
	Text string
	At   time.Time
}

func (BroadcastMessageShown) broadcastMarker() {}

// BroadcastMessageCleared reports the transient message expiring.
type BroadcastMessageCleared struct {
	At time.Time
}

func (BroadcastMessageCleared) broadcastMarker() {}

// BroadcastSpectacleStarted reports an animation kicking off. Kind is one of
// "confetti", "explosion", "egg_wink", "egg_flames", "egg_horns",
// "egg_matrix", "egg_eyeroll".
type BroadcastSpectacleStarted struct {
	Kind string
	At   time.Time
}

func (BroadcastSpectacleStarted) broadcastMarker() {}

// BroadcastDimChanged reports the idle dimmer changing panel brightness.
type BroadcastDimChanged struct {
	Dimmed bool
	At     time.Time
}

func (BroadcastDimChanged) broadcastMarker() {}
