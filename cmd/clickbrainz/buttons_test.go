package main

import (
	"testing"
	"time"
)

// TestClassifier_CountTap_OnPressEdge tests that the count button taps on the
// press edge only: holding and releasing emit nothing further.
func TestClassifier_CountTap_OnPressEdge(t *testing.T) {
	k := NewButtonClassifier(200*time.Millisecond, time.Second, 3*time.Second)
	t0 := time.Unix(1000, 0).UTC()

	evs := k.Sample(true, false, t0)
	if len(evs) != 1 {
		t.Fatalf("expected 1 event on the press edge, got %d", len(evs))
	}
	if _, ok := evs[0].(CountTap); !ok {
		t.Fatalf("expected CountTap, got %T", evs[0])
	}

	evs = k.Sample(true, false, t0.Add(100*time.Millisecond))
	if len(evs) != 0 {
		t.Errorf("expected no events while held, got %d", len(evs))
	}

	evs = k.Sample(false, false, t0.Add(150*time.Millisecond))
	if len(evs) != 0 {
		t.Errorf("expected no events on release, got %d", len(evs))
	}

	evs = k.Sample(true, false, t0.Add(400*time.Millisecond))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event on a fresh press, got %d", len(evs))
	}
	if _, ok := evs[0].(CountTap); !ok {
		t.Fatalf("expected CountTap, got %T", evs[0])
	}
}

// TestClassifier_CountTap_Debounce tests that press edges inside the debounce
// window are dropped and that the window is measured from the last accepted
// edge, not the last rejected one.
func TestClassifier_CountTap_Debounce(t *testing.T) {
	k := NewButtonClassifier(200*time.Millisecond, time.Second, 3*time.Second)
	t0 := time.Unix(1000, 0).UTC()

	evs := k.Sample(true, false, t0)
	if len(evs) != 1 {
		t.Fatalf("expected the first press accepted, got %d events", len(evs))
	}
	k.Sample(false, false, t0.Add(50*time.Millisecond))

	// Bounce: a re-press 100ms after the accepted edge is dropped.
	evs = k.Sample(true, false, t0.Add(100*time.Millisecond))
	if len(evs) != 0 {
		t.Errorf("expected bounce press dropped, got %d events", len(evs))
	}
	k.Sample(false, false, t0.Add(150*time.Millisecond))

	// 250ms after the ACCEPTED edge clears the 200ms window even though the
	// rejected edge was only 150ms ago.
	evs = k.Sample(true, false, t0.Add(250*time.Millisecond))
	if len(evs) != 1 {
		t.Fatalf("expected press accepted past the window, got %d events", len(evs))
	}
	if _, ok := evs[0].(CountTap); !ok {
		t.Fatalf("expected CountTap, got %T", evs[0])
	}
}

// TestClassifier_ResetTapVsHold tests the two reset outcomes: a short press
// resolves to a tap at release, a press past the threshold fires the hold
// exactly once and resolves to a hold end.
func TestClassifier_ResetTapVsHold(t *testing.T) {
	k := NewButtonClassifier(200*time.Millisecond, time.Second, 3*time.Second)
	t0 := time.Unix(1000, 0).UTC()

	// Short press: start, then tap at release.
	evs := k.Sample(false, true, t0)
	if len(evs) != 1 {
		t.Fatalf("expected 1 event on reset press, got %d", len(evs))
	}
	if _, ok := evs[0].(ResetHoldStart); !ok {
		t.Fatalf("expected ResetHoldStart, got %T", evs[0])
	}
	evs = k.Sample(false, true, t0.Add(500*time.Millisecond))
	if len(evs) != 0 {
		t.Errorf("expected no events below the hold threshold, got %d", len(evs))
	}
	evs = k.Sample(false, false, t0.Add(800*time.Millisecond))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event on short release, got %d", len(evs))
	}
	if _, ok := evs[0].(ResetTap); !ok {
		t.Fatalf("expected ResetTap, got %T", evs[0])
	}

	// Long press: start, hold fires once at the threshold, end at release.
	t1 := t0.Add(2 * time.Second)
	evs = k.Sample(false, true, t1)
	if _, ok := evs[0].(ResetHoldStart); !ok {
		t.Fatalf("expected ResetHoldStart, got %T", evs[0])
	}
	evs = k.Sample(false, true, t1.Add(time.Second))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event at the hold threshold, got %d", len(evs))
	}
	if _, ok := evs[0].(ResetHoldActive); !ok {
		t.Fatalf("expected ResetHoldActive, got %T", evs[0])
	}
	evs = k.Sample(false, true, t1.Add(1500*time.Millisecond))
	if len(evs) != 0 {
		t.Errorf("expected the hold to fire only once, got %d events", len(evs))
	}
	evs = k.Sample(false, false, t1.Add(2*time.Second))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event on hold release, got %d", len(evs))
	}
	if _, ok := evs[0].(ResetHoldEnd); !ok {
		t.Fatalf("expected ResetHoldEnd, got %T", evs[0])
	}
}

// TestClassifier_SecretCombo_FiresOnceAndRearms tests the dual-press episode:
// no single-button events leak, the combo fires once after the threshold, a
// re-press inside the episode cannot re-fire it, and a fresh episode after
// full release can.
func TestClassifier_SecretCombo_FiresOnceAndRearms(t *testing.T) {
	k := NewButtonClassifier(200*time.Millisecond, time.Second, 3*time.Second)
	t0 := time.Unix(1000, 0).UTC()

	// Both press edges land on the same sample: nothing leaks.
	evs := k.Sample(true, true, t0)
	if len(evs) != 0 {
		t.Fatalf("expected no events on a dual press, got %d (%T first)", len(evs), evs[0])
	}

	evs = k.Sample(true, true, t0.Add(2900*time.Millisecond))
	if len(evs) != 0 {
		t.Errorf("expected no events below the combo threshold, got %d", len(evs))
	}

	evs = k.Sample(true, true, t0.Add(3*time.Second))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event at the combo threshold, got %d", len(evs))
	}
	if _, ok := evs[0].(SecretCombo); !ok {
		t.Fatalf("expected SecretCombo, got %T", evs[0])
	}

	evs = k.Sample(true, true, t0.Add(4*time.Second))
	if len(evs) != 0 {
		t.Errorf("expected the combo to fire only once, got %d events", len(evs))
	}

	// Releasing one button keeps the episode open and stays silent.
	evs = k.Sample(true, false, t0.Add(5*time.Second))
	if len(evs) != 0 {
		t.Errorf("expected silence inside the episode, got %d events", len(evs))
	}

	// Re-pressing inside the episode cannot re-fire the combo.
	k.Sample(true, true, t0.Add(5500*time.Millisecond))
	evs = k.Sample(true, true, t0.Add(9*time.Second))
	if len(evs) != 0 {
		t.Errorf("expected no re-fire inside the episode, got %d events", len(evs))
	}

	// Full release ends the episode and re-arms everything.
	evs = k.Sample(false, false, t0.Add(10*time.Second))
	if len(evs) != 0 {
		t.Errorf("expected no events on episode release, got %d", len(evs))
	}
	evs = k.Sample(true, false, t0.Add(11*time.Second))
	if len(evs) != 1 {
		t.Fatalf("expected a count tap after the episode, got %d events", len(evs))
	}
	if _, ok := evs[0].(CountTap); !ok {
		t.Fatalf("expected CountTap, got %T", evs[0])
	}
	k.Sample(false, false, t0.Add(12*time.Second))

	// A fresh episode can fire again.
	k.Sample(true, true, t0.Add(13*time.Second))
	evs = k.Sample(true, true, t0.Add(16*time.Second))
	if len(evs) != 1 {
		t.Fatalf("expected a second combo in a fresh episode, got %d events", len(evs))
	}
	if _, ok := evs[0].(SecretCombo); !ok {
		t.Fatalf("expected SecretCombo, got %T", evs[0])
	}
}

// TestClassifier_Combo_CancelsInProgressHold tests that a dual press during a
// reset hold closes the hold: with a ResetHoldEnd if the hold had fired, and
// silently if it had not.
func TestClassifier_Combo_CancelsInProgressHold(t *testing.T) {
	k := NewButtonClassifier(200*time.Millisecond, time.Second, 3*time.Second)
	t0 := time.Unix(1000, 0).UTC()

	// Hold fires, then the count button joins.
	k.Sample(false, true, t0)
	evs := k.Sample(false, true, t0.Add(1200*time.Millisecond))
	if len(evs) != 1 {
		t.Fatalf("expected the hold to fire, got %d events", len(evs))
	}
	evs = k.Sample(true, true, t0.Add(1500*time.Millisecond))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event when the dual press cancels the hold, got %d", len(evs))
	}
	if _, ok := evs[0].(ResetHoldEnd); !ok {
		t.Fatalf("expected ResetHoldEnd, got %T", evs[0])
	}

	// The combo still fires, timed from the dual press.
	evs = k.Sample(true, true, t0.Add(4500*time.Millisecond))
	if len(evs) != 1 {
		t.Fatalf("expected the combo after the cancelled hold, got %d events", len(evs))
	}
	if _, ok := evs[0].(SecretCombo); !ok {
		t.Fatalf("expected SecretCombo, got %T", evs[0])
	}
	k.Sample(false, false, t0.Add(5*time.Second))

	// A dual press before the hold threshold cancels without a hold end.
	t1 := t0.Add(10 * time.Second)
	k.Sample(false, true, t1)
	evs = k.Sample(true, true, t1.Add(500*time.Millisecond))
	if len(evs) != 0 {
		t.Errorf("expected a silent cancel before the hold fires, got %d events", len(evs))
	}

	// Releasing both afterwards produces neither a tap nor a hold end.
	evs = k.Sample(false, false, t1.Add(time.Second))
	if len(evs) != 0 {
		t.Errorf("expected no reset outcome after a combo cancel, got %d events", len(evs))
	}
}

// TestClassifier_IndependentDebounceWindows tests that the two buttons keep
// separate debounce clocks.
func TestClassifier_IndependentDebounceWindows(t *testing.T) {
	k := NewButtonClassifier(200*time.Millisecond, time.Second, 3*time.Second)
	t0 := time.Unix(1000, 0).UTC()

	evs := k.Sample(true, false, t0)
	if len(evs) != 1 {
		t.Fatalf("expected the count press accepted, got %d events", len(evs))
	}
	k.Sample(false, false, t0.Add(20*time.Millisecond))

	// A reset press 50ms later is on a different channel and is accepted.
	evs = k.Sample(false, true, t0.Add(50*time.Millisecond))
	if len(evs) != 1 {
		t.Fatalf("expected the reset press accepted, got %d events", len(evs))
	}
	if _, ok := evs[0].(ResetHoldStart); !ok {
		t.Fatalf("expected ResetHoldStart, got %T", evs[0])
	}
}
