package main

import (
	"errors"
	"testing"
	"time"
)

// testEngineConfig returns reducer tunables sized for deterministic tests:
// hardware-default thresholds, and a taunt roll that always wins once the
// click minimum passes (chance 1-in-1).
func testEngineConfig() EngineConfig {
	return EngineConfig{
		Debounce:       200 * time.Millisecond,
		HoldThreshold:  time.Second,
		ComboThreshold: 3 * time.Second,
		DimTimeout:     30 * time.Second,

		MessageDuration: 4 * time.Second,
		ScrollInterval:  200 * time.Millisecond,

		TauntMinClicks:   2,
		TauntChanceOneIn: 1,
		RemoteEvery:      4,
		RemoteBatch:      10,

		MilestoneEvery: 100,

		BrightnessFull: 255,
		BrightnessDim:  1,
	}
}

// inPool reports whether text is one of the entries in pool.
func inPool(pool []string, text string) bool {
	for _, p := range pool {
		if p == text {
			return true
		}
	}
	return false
}

// TestReducer_CountTap_Increments tests that a count tap advances the count
// and reports it, with no commands while the count sits below the record.
func TestReducer_CountTap_Increments(t *testing.T) {
	cfg := testEngineConfig()
	cfg.TauntMinClicks = 100 // keep taunts out of this test

	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(1000, 1, t0)

	rr := Reduce(state, TimedEvent{Event: CountTap{}, At: t0}, cfg)

	if rr.State.Counter.Count != 1 {
		t.Errorf("expected count=1, got %d", rr.State.Counter.Count)
	}
	if !rr.State.Dirty {
		t.Error("expected state to be marked dirty after an increment")
	}
	if len(rr.Commands) != 0 {
		t.Fatalf("expected 0 commands below the record, got %d", len(rr.Commands))
	}
	if len(rr.Broadcasts) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(rr.Broadcasts))
	}
	bc, ok := rr.Broadcasts[0].(BroadcastCountChanged)
	if !ok {
		t.Fatalf("expected BroadcastCountChanged, got %T", rr.Broadcasts[0])
	}
	if bc.Count != 1 || bc.HighScore != 1000 {
		t.Errorf("expected broadcast count=1 high_score=1000, got count=%d high_score=%d", bc.Count, bc.HighScore)
	}
	if !bc.At.Equal(t0) {
		t.Errorf("expected broadcast timestamp %v, got %v", t0, bc.At)
	}
}

// TestReducer_NewRecord_CelebratesOncePerSession tests that the first click
// past the stored high score shows the record message with confetti, and that
// further record clicks persist silently.
func TestReducer_NewRecord_CelebratesOncePerSession(t *testing.T) {
	cfg := testEngineConfig()
	cfg.TauntMinClicks = 100

	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(2, 1, t0)

	// Two clicks up to the record: no celebration yet.
	now := t0
	for i := 0; i < 2; i++ {
		now = now.Add(time.Second)
		rr := Reduce(state, TimedEvent{Event: CountTap{}, At: now}, cfg)
		state = rr.State
		if len(rr.Commands) != 0 {
			t.Fatalf("expected 0 commands at count %d, got %d", state.Counter.Count, len(rr.Commands))
		}
	}
	if state.Message.Active {
		t.Fatalf("expected no message before the record, got %q", state.Message.Full)
	}

	// Third click crosses the record.
	now = now.Add(time.Second)
	rr := Reduce(state, TimedEvent{Event: CountTap{}, At: now}, cfg)
	state = rr.State

	if !state.Counter.RecordBroken {
		t.Error("expected RecordBroken after crossing the high score")
	}
	if state.Counter.HighScore != 3 {
		t.Errorf("expected high score 3, got %d", state.Counter.HighScore)
	}
	if state.Message.Full != "NEW RECORD!" {
		t.Errorf("expected record message, got %q", state.Message.Full)
	}
	if !state.Confetti.Active() {
		t.Error("expected confetti burst on the record click")
	}
	if len(rr.Commands) != 1 {
		t.Fatalf("expected 1 command on the record click, got %d", len(rr.Commands))
	}
	persist, ok := rr.Commands[0].(CmdPersistHighScore)
	if !ok {
		t.Fatalf("expected CmdPersistHighScore, got %T", rr.Commands[0])
	}
	if persist.Score != 3 {
		t.Errorf("expected persisted score 3, got %d", persist.Score)
	}

	// Fourth click: still above the record, but celebrated only once.
	now = now.Add(time.Second)
	rr = Reduce(state, TimedEvent{Event: CountTap{}, At: now}, cfg)
	state = rr.State

	if state.Message.Full != "NEW RECORD!" {
		t.Errorf("expected message to stay %q, got %q", "NEW RECORD!", state.Message.Full)
	}
	if len(rr.Broadcasts) != 1 {
		t.Fatalf("expected only the count broadcast on a repeat record click, got %d", len(rr.Broadcasts))
	}
	if len(rr.Commands) != 1 {
		t.Fatalf("expected 1 command on a repeat record click, got %d", len(rr.Commands))
	}
	persist, ok = rr.Commands[0].(CmdPersistHighScore)
	if !ok {
		t.Fatalf("expected CmdPersistHighScore, got %T", rr.Commands[0])
	}
	if persist.Score != 4 {
		t.Errorf("expected persisted score 4, got %d", persist.Score)
	}
}

// TestReducer_Milestone_Confetti tests that every hundredth click spawns
// confetti without a message.
func TestReducer_Milestone_Confetti(t *testing.T) {
	cfg := testEngineConfig()
	cfg.TauntMinClicks = 100

	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(1000, 1, t0)
	state.Counter.Count = 99

	rr := Reduce(state, TimedEvent{Event: CountTap{}, At: t0}, cfg)
	state = rr.State

	if state.Counter.Count != 100 {
		t.Fatalf("expected count=100, got %d", state.Counter.Count)
	}
	if !state.Confetti.Active() {
		t.Error("expected confetti on a hundred milestone")
	}
	if state.Message.Active {
		t.Errorf("expected no message on a milestone, got %q", state.Message.Full)
	}
	if len(rr.Commands) != 0 {
		t.Fatalf("expected 0 commands on a below-record milestone, got %d", len(rr.Commands))
	}

	foundSpectacle := false
	for _, bc := range rr.Broadcasts {
		if sp, ok := bc.(BroadcastSpectacleStarted); ok {
			foundSpectacle = true
			if sp.Kind != "confetti" {
				t.Errorf("expected spectacle kind %q, got %q", "confetti", sp.Kind)
			}
		}
	}
	if !foundSpectacle {
		t.Error("expected a spectacle broadcast for the milestone confetti")
	}
}

// TestReducer_TauntGate_MinimumThenRoll tests that no taunt appears before
// the click minimum, and that a winning roll shows one from the local pool.
func TestReducer_TauntGate_MinimumThenRoll(t *testing.T) {
	cfg := testEngineConfig() // min 2 clicks, roll always wins, remote disabled

	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(1000, 42, t0)

	rr := Reduce(state, TimedEvent{Event: CountTap{}, At: t0}, cfg)
	state = rr.State
	if state.Message.Active {
		t.Fatalf("expected no taunt below the click minimum, got %q", state.Message.Full)
	}

	rr = Reduce(state, TimedEvent{Event: CountTap{}, At: t0.Add(time.Second)}, cfg)
	state = rr.State
	if !state.Message.Active {
		t.Fatal("expected a taunt once the click minimum passed")
	}
	if !inPool(localTaunts, state.Message.Full) {
		t.Errorf("expected a local pool taunt, got %q", state.Message.Full)
	}
	if state.Taunts.ClicksSinceTaunt != 0 {
		t.Errorf("expected taunt counter reset after a win, got %d", state.Taunts.ClicksSinceTaunt)
	}
	if len(rr.Commands) != 0 {
		t.Fatalf("expected 0 commands with remote taunts disabled, got %d", len(rr.Commands))
	}

	// The counter starts over: the next click is below the minimum again.
	taunt := state.Message.Full
	rr = Reduce(state, TimedEvent{Event: CountTap{}, At: t0.Add(2 * time.Second)}, cfg)
	state = rr.State
	if state.Message.Full != taunt {
		t.Errorf("expected message to stay %q below the minimum, got %q", taunt, state.Message.Full)
	}
}

// TestReducer_RemoteTaunt_FallbackThenCache tests the remote-preferred path:
// an empty cache kicks off one fetch and falls back to the local pool
// immediately, and a later taunt consumes the cached result.
func TestReducer_RemoteTaunt_FallbackThenCache(t *testing.T) {
	cfg := testEngineConfig()
	cfg.TauntMinClicks = 0
	cfg.RemoteEvery = 1
	cfg.RemoteBatch = 5
	cfg.RemoteEnabled = true

	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(1000, 7, t0)

	// First taunt: cache empty, so fetch plus local fallback.
	rr := Reduce(state, TimedEvent{Event: CountTap{}, At: t0}, cfg)
	state = rr.State

	if !inPool(localTaunts, state.Message.Full) {
		t.Errorf("expected an immediate local fallback taunt, got %q", state.Message.Full)
	}
	if len(rr.Commands) != 1 {
		t.Fatalf("expected 1 fetch command, got %d", len(rr.Commands))
	}
	fetch, ok := rr.Commands[0].(CmdFetchTaunts)
	if !ok {
		t.Fatalf("expected CmdFetchTaunts, got %T", rr.Commands[0])
	}
	if fetch.Count != 5 {
		t.Errorf("expected fetch count 5, got %d", fetch.Count)
	}
	if !state.Taunts.FetchInFlight {
		t.Error("expected fetch to be marked in flight")
	}

	// Second taunt while the fetch is still out: no duplicate command.
	rr = Reduce(state, TimedEvent{Event: CountTap{}, At: t0.Add(time.Second)}, cfg)
	state = rr.State
	if len(rr.Commands) != 0 {
		t.Fatalf("expected 0 commands while a fetch is in flight, got %d", len(rr.Commands))
	}
	if !inPool(localTaunts, state.Message.Full) {
		t.Errorf("expected a local fallback taunt while fetching, got %q", state.Message.Full)
	}

	// The fetch result arrives wrapped like every channel-delivered event.
	t1 := t0.Add(2 * time.Second)
	rr = Reduce(state, TimedEvent{Event: TauntBatchFetched{Taunts: []string{"api jab"}, At: t1}, At: t1}, cfg)
	state = rr.State
	if state.Taunts.FetchInFlight {
		t.Error("expected in-flight flag cleared after the fetch result")
	}
	if len(state.Taunts.Cache) != 1 {
		t.Fatalf("expected 1 cached taunt, got %d", len(state.Taunts.Cache))
	}

	// Third taunt pops the cache instead of fetching.
	rr = Reduce(state, TimedEvent{Event: CountTap{}, At: t0.Add(3 * time.Second)}, cfg)
	state = rr.State
	if state.Message.Full != "api jab" {
		t.Errorf("expected cached taunt %q, got %q", "api jab", state.Message.Full)
	}
	if len(rr.Commands) != 0 {
		t.Fatalf("expected 0 commands when popping the cache, got %d", len(rr.Commands))
	}
	if len(state.Taunts.Cache) != 0 {
		t.Errorf("expected cache drained, got %d entries", len(state.Taunts.Cache))
	}
}

// TestReducer_TauntBatchFetched_ErrorClearsInFlight tests that a failed fetch
// resets the in-flight flag without touching the cache.
func TestReducer_TauntBatchFetched_ErrorClearsInFlight(t *testing.T) {
	cfg := testEngineConfig()
	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(0, 1, t0)
	state.Taunts.FetchInFlight = true

	rr := Reduce(state, TimedEvent{Event: TauntBatchFetched{Err: errors.New("boom"), At: t0}, At: t0}, cfg)
	state = rr.State

	if state.Taunts.FetchInFlight {
		t.Error("expected in-flight flag cleared after a failed fetch")
	}
	if len(state.Taunts.Cache) != 0 {
		t.Errorf("expected empty cache after a failed fetch, got %d entries", len(state.Taunts.Cache))
	}
	if len(rr.Commands) != 0 || len(rr.Broadcasts) != 0 {
		t.Errorf("expected no commands or broadcasts, got %d and %d", len(rr.Commands), len(rr.Broadcasts))
	}
}

// TestReducer_ResetTap_ZeroesAndTaunts tests the reset tap: the count zeroes,
// the session record flag clears, and a reset taunt always shows.
func TestReducer_ResetTap_ZeroesAndTaunts(t *testing.T) {
	cfg := testEngineConfig()
	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(10, 3, t0)
	state.Counter.Count = 5
	state.Counter.RecordBroken = true
	state.Taunts.ClicksSinceTaunt = 1

	rr := Reduce(state, TimedEvent{Event: ResetTap{}, At: t0}, cfg)
	state = rr.State

	if state.Counter.Count != 0 {
		t.Errorf("expected count=0 after reset, got %d", state.Counter.Count)
	}
	if state.Counter.HighScore != 10 {
		t.Errorf("expected high score untouched by reset, got %d", state.Counter.HighScore)
	}
	if state.Counter.RecordBroken {
		t.Error("expected RecordBroken cleared by reset")
	}
	if state.Taunts.ClicksSinceTaunt != 0 {
		t.Errorf("expected taunt counter cleared by reset, got %d", state.Taunts.ClicksSinceTaunt)
	}
	if !inPool(resetTaunts, state.Message.Full) {
		t.Errorf("expected a reset taunt, got %q", state.Message.Full)
	}
	if len(rr.Commands) != 0 {
		t.Fatalf("expected 0 commands on reset, got %d", len(rr.Commands))
	}
	bc, ok := rr.Broadcasts[0].(BroadcastCountChanged)
	if !ok {
		t.Fatalf("expected BroadcastCountChanged first, got %T", rr.Broadcasts[0])
	}
	if bc.Count != 0 || bc.HighScore != 10 {
		t.Errorf("expected broadcast count=0 high_score=10, got count=%d high_score=%d", bc.Count, bc.HighScore)
	}

	// Resetting an already-zero count does nothing.
	taunt := state.Message.Full
	rr = Reduce(state, TimedEvent{Event: ResetTap{}, At: t0.Add(time.Second)}, cfg)
	state = rr.State
	if len(rr.Broadcasts) != 0 || len(rr.Commands) != 0 {
		t.Errorf("expected a zero-count reset to be a no-op, got %d broadcasts and %d commands",
			len(rr.Broadcasts), len(rr.Commands))
	}
	if state.Message.Full != taunt {
		t.Errorf("expected message unchanged on a no-op reset, got %q", state.Message.Full)
	}
}

// TestReducer_ResetHold_ShowsStats tests that crossing the hold threshold
// switches to the stats view and releasing restores the counter.
func TestReducer_ResetHold_ShowsStats(t *testing.T) {
	cfg := testEngineConfig()
	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(10, 1, t0)

	rr := Reduce(state, TimedEvent{Event: ResetHoldStart{}, At: t0}, cfg)
	state = rr.State
	if state.ShowingStats {
		t.Error("expected stats view hidden before the hold threshold")
	}

	rr = Reduce(state, TimedEvent{Event: ResetHoldActive{}, At: t0.Add(time.Second)}, cfg)
	state = rr.State
	if !state.ShowingStats {
		t.Error("expected stats view once the hold threshold passed")
	}
	if !state.Dirty {
		t.Error("expected dirty state when the stats view appears")
	}

	rr = Reduce(state, TimedEvent{Event: ResetHoldEnd{}, At: t0.Add(2 * time.Second)}, cfg)
	state = rr.State
	if state.ShowingStats {
		t.Error("expected stats view hidden after release")
	}
	if state.Counter.Count != 0 {
		t.Errorf("expected hold to leave the count alone, got %d", state.Counter.Count)
	}
}

// TestReducer_SecretCombo_WipesAfterExplosion tests the full combo sequence:
// the explosion plays first, button events are swallowed meanwhile, and the
// wipe (zeroed scores, persistence, message) lands when it finishes.
func TestReducer_SecretCombo_WipesAfterExplosion(t *testing.T) {
	cfg := testEngineConfig()
	cfg.TauntMinClicks = 100

	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(50, 3, t0)
	state.Counter.Count = 42

	rr := Reduce(state, TimedEvent{Event: SecretCombo{}, At: t0}, cfg)
	state = rr.State

	if state.Spectacle.Kind != SpectacleExplosion {
		t.Fatalf("expected explosion spectacle, got kind %d", state.Spectacle.Kind)
	}
	if state.Counter.Count != 42 || state.Counter.HighScore != 50 {
		t.Errorf("expected scores untouched until the explosion finishes, got count=%d high_score=%d",
			state.Counter.Count, state.Counter.HighScore)
	}
	if len(rr.Commands) != 0 {
		t.Fatalf("expected 0 commands at combo time, got %d", len(rr.Commands))
	}
	sp, ok := rr.Broadcasts[0].(BroadcastSpectacleStarted)
	if !ok {
		t.Fatalf("expected BroadcastSpectacleStarted, got %T", rr.Broadcasts[0])
	}
	if sp.Kind != "explosion" {
		t.Errorf("expected spectacle kind %q, got %q", "explosion", sp.Kind)
	}

	// Button presses during the spectacle change nothing.
	rr = Reduce(state, TimedEvent{Event: CountTap{}, At: t0.Add(100 * time.Millisecond)}, cfg)
	state = rr.State
	if state.Counter.Count != 42 {
		t.Errorf("expected taps swallowed during the explosion, got count=%d", state.Counter.Count)
	}
	if len(rr.Broadcasts) != 0 {
		t.Errorf("expected no broadcasts for a swallowed tap, got %d", len(rr.Broadcasts))
	}
	rr = Reduce(state, TimedEvent{Event: ResetTap{}, At: t0.Add(150 * time.Millisecond)}, cfg)
	state = rr.State
	if state.Counter.Count != 42 {
		t.Errorf("expected resets swallowed during the explosion, got count=%d", state.Counter.Count)
	}

	// Drive ticks until the wipe lands.
	var wipeCmds []Command
	var wipeBcs []StateBroadcast
	now := t0
	for i := 0; i < 100; i++ {
		now = now.Add(50 * time.Millisecond)
		rr = Reduce(state, Tick{Now: now}, cfg)
		state = rr.State
		if len(rr.Commands) > 0 {
			wipeCmds = rr.Commands
			wipeBcs = rr.Broadcasts
			break
		}
	}
	if wipeCmds == nil {
		t.Fatal("explosion never finished within 100 ticks")
	}

	if state.Counter.Count != 0 || state.Counter.HighScore != 0 {
		t.Errorf("expected both scores wiped, got count=%d high_score=%d",
			state.Counter.Count, state.Counter.HighScore)
	}
	if state.Counter.RecordBroken {
		t.Error("expected RecordBroken cleared by the wipe")
	}
	if state.Spectacle.Active() {
		t.Error("expected the spectacle slot free after the wipe")
	}
	if state.Message.Full != "Score destroyed!" {
		t.Errorf("expected wipe message, got %q", state.Message.Full)
	}

	if len(wipeCmds) != 1 {
		t.Fatalf("expected 1 command on the wipe tick, got %d", len(wipeCmds))
	}
	persist, ok := wipeCmds[0].(CmdPersistHighScore)
	if !ok {
		t.Fatalf("expected CmdPersistHighScore, got %T", wipeCmds[0])
	}
	if persist.Score != 0 {
		t.Errorf("expected persisted score 0, got %d", persist.Score)
	}

	foundHigh, foundCount, foundMsg := false, false, false
	for _, bc := range wipeBcs {
		switch b := bc.(type) {
		case BroadcastHighScoreChanged:
			foundHigh = true
			if b.HighScore != 0 {
				t.Errorf("expected high score broadcast 0, got %d", b.HighScore)
			}
		case BroadcastCountChanged:
			foundCount = true
			if b.Count != 0 || b.HighScore != 0 {
				t.Errorf("expected count broadcast 0/0, got %d/%d", b.Count, b.HighScore)
			}
		case BroadcastMessageShown:
			foundMsg = true
			if b.Text != "Score destroyed!" {
				t.Errorf("expected wipe message broadcast, got %q", b.Text)
			}
		}
	}
	if !foundHigh || !foundCount || !foundMsg {
		t.Errorf("expected high score, count and message broadcasts on the wipe tick, got high=%v count=%v msg=%v",
			foundHigh, foundCount, foundMsg)
	}
}

// TestReducer_EasterEgg_TakesScreenAndPersistsSilently tests that hitting an
// egg score starts its motif, swallows input, updates a crossed record
// without the celebration, and pins its message when the motif ends.
func TestReducer_EasterEgg_TakesScreenAndPersistsSilently(t *testing.T) {
	cfg := testEngineConfig()
	cfg.TauntMinClicks = 100

	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(68, 5, t0)
	state.Counter.Count = 68

	rr := Reduce(state, TimedEvent{Event: CountTap{}, At: t0}, cfg)
	state = rr.State

	if state.Counter.Count != 69 {
		t.Fatalf("expected count=69, got %d", state.Counter.Count)
	}
	if state.Spectacle.Kind != SpectacleEgg {
		t.Fatalf("expected egg spectacle, got kind %d", state.Spectacle.Kind)
	}
	if state.Message.Active {
		t.Errorf("expected the egg message to wait for the motif, got %q early", state.Message.Full)
	}
	// The record moved but the session celebration did not fire.
	if state.Counter.HighScore != 69 {
		t.Errorf("expected high score 69, got %d", state.Counter.HighScore)
	}
	if state.Counter.RecordBroken {
		t.Error("expected RecordBroken to stay clear on an egg record")
	}
	if len(rr.Commands) != 1 {
		t.Fatalf("expected 1 command on an egg record, got %d", len(rr.Commands))
	}
	if persist, ok := rr.Commands[0].(CmdPersistHighScore); !ok || persist.Score != 69 {
		t.Fatalf("expected CmdPersistHighScore(69), got %v", rr.Commands[0])
	}

	foundKind := ""
	for _, bc := range rr.Broadcasts {
		if sp, ok := bc.(BroadcastSpectacleStarted); ok {
			foundKind = sp.Kind
		}
	}
	if foundKind != "egg_wink" {
		t.Errorf("expected spectacle kind %q, got %q", "egg_wink", foundKind)
	}

	// Taps during the motif are swallowed.
	rr = Reduce(state, TimedEvent{Event: CountTap{}, At: t0.Add(50 * time.Millisecond)}, cfg)
	state = rr.State
	if state.Counter.Count != 69 {
		t.Errorf("expected taps swallowed during the egg, got count=%d", state.Counter.Count)
	}

	// Run the motif out; its message and confetti land on the final tick.
	var finishBcs []StateBroadcast
	now := t0
	for i := 0; i < 20; i++ {
		now = now.Add(100 * time.Millisecond)
		rr = Reduce(state, Tick{Now: now}, cfg)
		state = rr.State
		if len(rr.Broadcasts) > 0 {
			finishBcs = rr.Broadcasts
		}
		if !state.Spectacle.Active() && state.Message.Active {
			break
		}
	}

	if state.Spectacle.Active() {
		t.Fatal("egg motif never finished within 20 ticks")
	}
	if state.Message.Full != "Nice." {
		t.Errorf("expected egg message %q, got %q", "Nice.", state.Message.Full)
	}
	if !state.Confetti.Active() {
		t.Error("expected confetti after the egg motif")
	}

	foundMsg, foundConfetti := false, false
	for _, bc := range finishBcs {
		switch b := bc.(type) {
		case BroadcastMessageShown:
			foundMsg = b.Text == "Nice."
		case BroadcastSpectacleStarted:
			foundConfetti = b.Kind == "confetti"
		}
	}
	if !foundMsg || !foundConfetti {
		t.Errorf("expected message and confetti broadcasts on the finishing tick, got msg=%v confetti=%v",
			foundMsg, foundConfetti)
	}
}

// TestReducer_IdleDimAndWake tests that the panel dims after the idle window
// and that the next button event restores full brightness.
func TestReducer_IdleDimAndWake(t *testing.T) {
	cfg := testEngineConfig()
	cfg.TauntMinClicks = 100

	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(1000, 9, t0)

	rr := Reduce(state, Tick{Now: t0.Add(29 * time.Second)}, cfg)
	state = rr.State
	if state.Idle.Dimmed {
		t.Error("expected panel awake before the idle window")
	}
	if len(rr.Commands) != 0 {
		t.Fatalf("expected 0 commands before the idle window, got %d", len(rr.Commands))
	}

	rr = Reduce(state, Tick{Now: t0.Add(30 * time.Second)}, cfg)
	state = rr.State
	if !state.Idle.Dimmed {
		t.Fatal("expected panel dimmed at the idle window")
	}
	if len(rr.Commands) != 1 {
		t.Fatalf("expected 1 command on dim, got %d", len(rr.Commands))
	}
	dim, ok := rr.Commands[0].(CmdSetBrightness)
	if !ok {
		t.Fatalf("expected CmdSetBrightness, got %T", rr.Commands[0])
	}
	if dim.Level != cfg.BrightnessDim {
		t.Errorf("expected dim level %d, got %d", cfg.BrightnessDim, dim.Level)
	}

	// Dimming is edge-triggered, not repeated.
	rr = Reduce(state, Tick{Now: t0.Add(31 * time.Second)}, cfg)
	state = rr.State
	if len(rr.Commands) != 0 {
		t.Fatalf("expected no repeat dim command, got %d", len(rr.Commands))
	}

	// Any button activity wakes the panel.
	rr = Reduce(state, TimedEvent{Event: CountTap{}, At: t0.Add(32 * time.Second)}, cfg)
	state = rr.State
	if state.Idle.Dimmed {
		t.Error("expected panel awake after a tap")
	}
	if len(rr.Commands) != 1 {
		t.Fatalf("expected 1 command on wake, got %d", len(rr.Commands))
	}
	wake, ok := rr.Commands[0].(CmdSetBrightness)
	if !ok {
		t.Fatalf("expected CmdSetBrightness, got %T", rr.Commands[0])
	}
	if wake.Level != cfg.BrightnessFull {
		t.Errorf("expected wake level %d, got %d", cfg.BrightnessFull, wake.Level)
	}
}

// TestReducer_ShowMessage_CustomDurationAndExpiry tests the injected message
// path: a custom duration is honored and expiry clears the message.
func TestReducer_ShowMessage_CustomDurationAndExpiry(t *testing.T) {
	cfg := testEngineConfig()
	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(0, 1, t0)

	rr := Reduce(state, TimedEvent{Event: ShowMessage{Text: "Build broke", DurationMS: 1000}, At: t0}, cfg)
	state = rr.State

	if state.Message.Full != "Build broke" {
		t.Fatalf("expected injected message, got %q", state.Message.Full)
	}
	if !state.Message.ExpiresAt.Equal(t0.Add(time.Second)) {
		t.Errorf("expected expiry at %v, got %v", t0.Add(time.Second), state.Message.ExpiresAt)
	}

	rr = Reduce(state, Tick{Now: t0.Add(time.Second)}, cfg)
	state = rr.State
	if !state.Message.Active {
		t.Error("expected message still visible at its deadline")
	}

	rr = Reduce(state, Tick{Now: t0.Add(time.Second + 50*time.Millisecond)}, cfg)
	state = rr.State
	if state.Message.Active {
		t.Error("expected message cleared past its deadline")
	}
	if len(rr.Broadcasts) != 1 {
		t.Fatalf("expected 1 broadcast on expiry, got %d", len(rr.Broadcasts))
	}
	if _, ok := rr.Broadcasts[0].(BroadcastMessageCleared); !ok {
		t.Fatalf("expected BroadcastMessageCleared, got %T", rr.Broadcasts[0])
	}

	// A zero duration falls back to the configured default.
	rr = Reduce(state, TimedEvent{Event: ShowMessage{Text: "Doorbell"}, At: t0.Add(2 * time.Second)}, cfg)
	state = rr.State
	want := t0.Add(2 * time.Second).Add(cfg.MessageDuration)
	if !state.Message.ExpiresAt.Equal(want) {
		t.Errorf("expected default expiry at %v, got %v", want, state.Message.ExpiresAt)
	}
}

// TestReducer_RefillTaunts tests the forced refill event: it fetches when
// remote taunts are enabled and idle, and is a no-op otherwise.
func TestReducer_RefillTaunts(t *testing.T) {
	cfg := testEngineConfig()
	cfg.RemoteEnabled = true

	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(0, 1, t0)

	rr := Reduce(state, TimedEvent{Event: RefillTaunts{}, At: t0}, cfg)
	state = rr.State
	if len(rr.Commands) != 1 {
		t.Fatalf("expected 1 fetch command, got %d", len(rr.Commands))
	}
	fetch, ok := rr.Commands[0].(CmdFetchTaunts)
	if !ok {
		t.Fatalf("expected CmdFetchTaunts, got %T", rr.Commands[0])
	}
	if fetch.Count != cfg.RemoteBatch {
		t.Errorf("expected default batch %d, got %d", cfg.RemoteBatch, fetch.Count)
	}

	// A refill while one is in flight is dropped.
	rr = Reduce(state, TimedEvent{Event: RefillTaunts{Count: 3}, At: t0.Add(time.Second)}, cfg)
	state = rr.State
	if len(rr.Commands) != 0 {
		t.Fatalf("expected no duplicate fetch, got %d commands", len(rr.Commands))
	}

	// An explicit count is passed through.
	state.Taunts.FetchInFlight = false
	rr = Reduce(state, TimedEvent{Event: RefillTaunts{Count: 3}, At: t0.Add(2 * time.Second)}, cfg)
	state = rr.State
	if fetch, ok := rr.Commands[0].(CmdFetchTaunts); !ok || fetch.Count != 3 {
		t.Fatalf("expected CmdFetchTaunts(3), got %v", rr.Commands[0])
	}

	// Without a credential the refill is a no-op.
	cfg.RemoteEnabled = false
	state.Taunts.FetchInFlight = false
	rr = Reduce(state, TimedEvent{Event: RefillTaunts{}, At: t0.Add(3 * time.Second)}, cfg)
	if len(rr.Commands) != 0 {
		t.Fatalf("expected no fetch with remote disabled, got %d commands", len(rr.Commands))
	}
}

// TestReducer_RequestStateSnapshot tests that a snapshot request turns into a
// publish command carrying a copy of the current state.
func TestReducer_RequestStateSnapshot(t *testing.T) {
	cfg := testEngineConfig()
	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(10, 1, t0)
	state.Counter.Count = 5

	reply := make(chan StateSnapshot, 1)
	rr := Reduce(state, TimedEvent{Event: RequestStateSnapshot{Reply: reply}, At: t0}, cfg)

	if len(rr.Commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(rr.Commands))
	}
	pub, ok := rr.Commands[0].(CmdPublishSnapshot)
	if !ok {
		t.Fatalf("expected CmdPublishSnapshot, got %T", rr.Commands[0])
	}
	if pub.Reply != reply {
		t.Error("expected the reply channel to pass through unchanged")
	}
	if pub.Snapshot.Count != 5 || pub.Snapshot.HighScore != 10 {
		t.Errorf("expected snapshot count=5 high_score=10, got count=%d high_score=%d",
			pub.Snapshot.Count, pub.Snapshot.HighScore)
	}
	if !pub.Snapshot.At.Equal(t0) {
		t.Errorf("expected snapshot timestamp %v, got %v", t0, pub.Snapshot.At)
	}
}

// TestReducer_CommandFailed_KeepsState tests that effect failures leave the
// state untouched.
func TestReducer_CommandFailed_KeepsState(t *testing.T) {
	cfg := testEngineConfig()
	t0 := time.Unix(1000, 0).UTC()
	state := NewDeviceState(10, 1, t0)
	state.Counter.Count = 5

	failed := CommandFailed{
		Command: CmdPersistHighScore{Score: 5},
		Err:     errors.New("disk full"),
		At:      t0,
	}
	rr := Reduce(state, TimedEvent{Event: failed, At: t0}, cfg)

	if rr.State.Counter.Count != 5 || rr.State.Counter.HighScore != 10 {
		t.Errorf("expected state untouched, got count=%d high_score=%d",
			rr.State.Counter.Count, rr.State.Counter.HighScore)
	}
	if len(rr.Commands) != 0 || len(rr.Broadcasts) != 0 {
		t.Errorf("expected no commands or broadcasts, got %d and %d", len(rr.Commands), len(rr.Broadcasts))
	}
}
