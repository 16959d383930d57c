package main

import (
	"strings"
	"time"
)

// scrollPadding is the gap, in characters, between the end of a scrolling
// line and its wrapped-around start.
const scrollPadding = 3

// MessageState is the single transient message slot. A new message replaces
// the current one; expiry clears it.
type MessageState struct {
	// Full is the unwrapped text, kept for snapshots and broadcasts.
	Full string

	// Line1 always fits the display width. Line2 holds the remainder and may
	// exceed it, in which case it scrolls.
	Line1 string
	Line2 string

	Active    bool
	ExpiresAt time.Time

	// ScrollOffset is the cyclic window position into Line2 when it is
	// over-wide. NextScrollAt paces advancement.
	ScrollOffset int
	NextScrollAt time.Time
}

// Show replaces the current message, wraps it and resets scrolling.
// This is intended to be called only by the daemon goroutine (single-owner).
func (m *MessageState) Show(text string, duration time.Duration, scrollInterval time.Duration, now time.Time) {
	line1, line2 := wordWrap(text, messageCols)
	m.Full = text
	m.Line1 = line1
	m.Line2 = line2
	m.Active = true
	m.ExpiresAt = now.Add(duration)
	m.ScrollOffset = 0
	m.NextScrollAt = now.Add(scrollInterval)
}

// Clear removes the message.
func (m *MessageState) Clear() {
	*m = MessageState{}
}

// StepTime advances expiry and scrolling. Returns true if anything visible
// changed. This is intended to be called only by the daemon goroutine
// (single-owner).
func (m *MessageState) StepTime(now time.Time, scrollInterval time.Duration) bool {
	if !m.Active {
		return false
	}

	if now.After(m.ExpiresAt) {
		m.Clear()
		return true
	}

	// Only an over-wide second line scrolls.
	if len(m.Line2) <= messageCols {
		return false
	}
	if now.Before(m.NextScrollAt) {
		return false
	}

	m.ScrollOffset++
	if m.ScrollOffset >= len(m.Line2)+scrollPadding {
		m.ScrollOffset = 0
	}
	m.NextScrollAt = now.Add(scrollInterval)
	return true
}

// VisibleLine2 returns the portion of the second line that should be drawn:
// the whole line when it fits, otherwise a fixed-width sliding window over
// the line joined to itself across a small gap.
func (m *MessageState) VisibleLine2() string {
	if len(m.Line2) <= messageCols {
		return m.Line2
	}
	padded := m.Line2 + strings.Repeat(" ", scrollPadding) + m.Line2
	return padded[m.ScrollOffset : m.ScrollOffset+messageCols]
}

// wordWrap splits text into two lines at most width characters wide,
// breaking at the nearest space before the boundary. The first returned line
// always fits; the second may be longer than width and is scrolled by the
// caller.
func wordWrap(text string, width int) (string, string) {
	if len(text) <= width {
		return text, ""
	}

	breakPoint := width
	for i := width; i > 0; i-- {
		if text[i-1] == ' ' {
			breakPoint = i - 1
			break
		}
	}

	return strings.TrimSpace(text[:breakPoint]), strings.TrimSpace(text[breakPoint:])
}
