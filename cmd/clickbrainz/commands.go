package main

import "fmt"

// ==============================
// Commands (side effects)
// ==============================

// Command represents an external side effect to be executed by the daemon loop.
// In this codebase, those are score persistence, panel brightness, remote
// taunt fetches and snapshot delivery.
type Command interface {
	commandMarker()
	String() string
}

// CmdPersistHighScore writes the high score to disk.
type CmdPersistHighScore struct {
	Score int64
}

func (CmdPersistHighScore) commandMarker() {}
func (c CmdPersistHighScore) String() string {
	return fmt.Sprintf("CmdPersistHighScore(score=%d)", c.Score)
}

// CmdFetchTaunts requests a batch of taunts from the remote service. The
// fetch runs asynchronously; completion arrives as a TauntBatchFetched event.
type CmdFetchTaunts struct {
	Count int
}

func (CmdFetchTaunts) commandMarker() {}
func (c CmdFetchTaunts) String() string {
	return fmt.Sprintf("CmdFetchTaunts(count=%d)", c.Count)
}

// CmdSetBrightness changes panel contrast (idle dim / wake).
type CmdSetBrightness struct {
	Level byte
}

func (CmdSetBrightness) commandMarker() {}
func (c CmdSetBrightness) String() string {
	return fmt.Sprintf("CmdSetBrightness(level=%d)", c.Level)
}

// CmdPublishSnapshot delivers a state snapshot to a waiting requester.
type CmdPublishSnapshot struct {
	Snapshot StateSnapshot
	Reply    chan StateSnapshot
}

func (CmdPublishSnapshot) commandMarker() {}
func (CmdPublishSnapshot) String() string { return "CmdPublishSnapshot()" }
