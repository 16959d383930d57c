package main

import (
	"math/rand"
	"time"
)

// DeviceState is the top-level, daemon-owned state container.
//
// Goals:
//   - Keep all reducer-owned state in one place (pure reducer, no external mutation).
//   - Make every piece of time- or randomness-driven behavior inspectable in tests.
//   - Make it easy to publish a coherent snapshot to other clients (IPC/WS).
//
// The random source lives here so the reducer never reaches for a global one;
// tests construct state with a fixed seed and get deterministic behavior.
type DeviceState struct {
	// Counter is the score bookkeeping: current count, persisted high score,
	// and the once-per-session record flag.
	Counter CounterState

	// Taunts tracks the probabilistic taunt gate and the remote cache.
	Taunts TauntTrackerState

	// Message is the currently visible transient message, if any.
	Message MessageState

	// Confetti is the non-exclusive particle overlay.
	Confetti ConfettiState

	// Spectacle is the exclusive animation slot (explosion or easter egg).
	// While one is active, button events are not applied.
	Spectacle SpectacleState

	// Idle tracks last interaction time for the display dimmer.
	Idle IdleState

	// ShowingStats is true while the reset button is held past the hold
	// threshold; the compositor renders the high-score view instead of the
	// counter.
	ShowingStats bool

	// Rng is the injected randomness source for taunt rolls, particle spawns
	// and per-frame animation jitter.
	Rng *rand.Rand

	// Dirty marks that something visible changed since the last composition.
	// The daemon loop redraws and clears it; nothing else touches it.
	Dirty bool
}

// CounterState is the score bookkeeping owned by the reducer.
type CounterState struct {
	// Count is the live click count. Never negative; zeroed only by a reset
	// tap or the secret combo.
	Count int64

	// HighScore trails Count upward and survives restarts. It only ever
	// decreases when the secret combo wipes it to zero.
	HighScore int64

	// RecordBroken is set the first time Count exceeds HighScore within a
	// session. It gates the one-time "NEW RECORD!" celebration and is cleared
	// by resets.
	RecordBroken bool
}

// TauntTrackerState tracks taunt gating and the remote cache.
type TauntTrackerState struct {
	// ClicksSinceTaunt counts increments that reached the taunt gate. The
	// probability roll starts only once this passes the configured minimum;
	// a successful roll resets it.
	ClicksSinceTaunt int

	// TauntsSinceRemote counts taunts surfaced since the last remote pick.
	// Every Nth taunt prefers the remote cache.
	TauntsSinceRemote int

	// Cache holds fetched remote taunts, consumed newest-first.
	Cache []string

	// FetchInFlight is true while a remote refill is running; it suppresses
	// duplicate fetch commands.
	FetchInFlight bool
}

// IdleState tracks interaction recency for the dimmer.
type IdleState struct {
	LastActivity time.Time
	Dimmed       bool
}

// NewDeviceState builds the initial state. highScore comes from the
// persistent store; seed feeds the injected random source.
func NewDeviceState(highScore int64, seed int64, now time.Time) *DeviceState {
	return &DeviceState{
		Counter: CounterState{HighScore: highScore},
		Idle:    IdleState{LastActivity: now},
		Rng:     rand.New(rand.NewSource(seed)),
		Dirty:   true,
	}
}

// StateSnapshot is a copy of the externally interesting state, safe to hand
// to other goroutines.
type StateSnapshot struct {
	Count        int64 `json:"count"`
	HighScore    int64 `json:"high_score"`
	RecordBroken bool  `json:"record_broken"`

	MessageText    string `json:"message_text,omitempty"`
	MessageVisible bool   `json:"message_visible"`

	ShowingStats    bool `json:"showing_stats"`
	Dimmed          bool `json:"dimmed"`
	ConfettiActive  bool `json:"confetti_active"`
	SpectacleActive bool `json:"spectacle_active"`

	ClicksSinceTaunt  int `json:"clicks_since_taunt"`
	TauntsSinceRemote int `json:"taunts_since_remote"`
	CachedTaunts      int `json:"cached_taunts"`

	At time.Time `json:"at"`
}

// Snapshot copies the externally visible state.
// This is intended to be called only by the daemon goroutine (single-owner).
func (s *DeviceState) Snapshot(now time.Time) StateSnapshot {
	return StateSnapshot{
		Count:        s.Counter.Count,
		HighScore:    s.Counter.HighScore,
		RecordBroken: s.Counter.RecordBroken,

		MessageText:    s.Message.Full,
		MessageVisible: s.Message.Active,

		ShowingStats:    s.ShowingStats,
		Dimmed:          s.Idle.Dimmed,
		ConfettiActive:  s.Confetti.Active(),
		SpectacleActive: s.Spectacle.Active(),

		ClicksSinceTaunt:  s.Taunts.ClicksSinceTaunt,
		TauntsSinceRemote: s.Taunts.TauntsSinceRemote,
		CachedTaunts:      len(s.Taunts.Cache),

		At: now,
	}
}

// popCachedTaunt removes and returns the newest cached taunt.
// This is intended to be called only by the daemon goroutine (single-owner).
func (t *TauntTrackerState) popCachedTaunt() (string, bool) {
	if len(t.Cache) == 0 {
		return "", false
	}
	last := t.Cache[len(t.Cache)-1]
	t.Cache = t.Cache[:len(t.Cache)-1]
	return last, true
}
