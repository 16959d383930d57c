package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestScoreStore_MissingFileStartsAtZero tests that a fresh device with no
// score file boots with a zero high score.
func TestScoreStore_MissingFileStartsAtZero(t *testing.T) {
	store := NewScoreStore(filepath.Join(t.TempDir(), "highscore.json"), testLogger())
	if got := store.Load(); got != 0 {
		t.Errorf("expected 0 for a missing file, got %d", got)
	}
}

// TestScoreStore_SaveThenLoad tests the round trip and the on-disk shape.
func TestScoreStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.json")
	store := NewScoreStore(path, testLogger())

	if err := store.Save(1234); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := store.Load(); got != 1234 {
		t.Errorf("expected 1234, got %d", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading the score file failed: %v", err)
	}
	if got := string(data); got != "{\"high_score\":1234}\n" {
		t.Errorf("expected the document %q, got %q", "{\"high_score\":1234}\n", got)
	}

	// The temp file from the atomic write must not linger.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("expected no leftover temp file, stat returned %v", err)
	}
}

// TestScoreStore_SaveOverwrites tests that a later save replaces the value.
func TestScoreStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.json")
	store := NewScoreStore(path, testLogger())

	if err := store.Save(10); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(20); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if got := store.Load(); got != 20 {
		t.Errorf("expected 20, got %d", got)
	}
}

// TestScoreStore_SaveCreatesParentDirectory tests that saving into a missing
// directory creates it.
func TestScoreStore_SaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "highscore.json")
	store := NewScoreStore(path, testLogger())

	if err := store.Save(7); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := store.Load(); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

// TestScoreStore_CorruptFileStartsAtZero tests that garbage on disk does not
// block startup.
func TestScoreStore_CorruptFileStartsAtZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0644); err != nil {
		t.Fatalf("seeding the corrupt file failed: %v", err)
	}

	store := NewScoreStore(path, testLogger())
	if got := store.Load(); got != 0 {
		t.Errorf("expected 0 for a corrupt file, got %d", got)
	}
}

// TestScoreStore_NegativeValueStartsAtZero tests that a tampered negative
// score is ignored.
func TestScoreStore_NegativeValueStartsAtZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.json")
	if err := os.WriteFile(path, []byte("{\"high_score\":-5}\n"), 0644); err != nil {
		t.Fatalf("seeding the file failed: %v", err)
	}

	store := NewScoreStore(path, testLogger())
	if got := store.Load(); got != 0 {
		t.Errorf("expected 0 for a negative score, got %d", got)
	}
}
