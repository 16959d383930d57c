package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ScoreStore persists the high score as a tiny JSON document. Writes go
// through a temp file and rename so a power cut mid-write leaves the previous
// value intact instead of a truncated file.
type ScoreStore struct {
	path   string
	logger *slog.Logger
}

func NewScoreStore(path string, logger *slog.Logger) *ScoreStore {
	return &ScoreStore{path: ExpandPath(path), logger: logger}
}

type scoreDocument struct {
	HighScore int64 `json:"high_score"`
}

// Load returns the stored high score. A missing, unreadable or corrupt file
// starts the counter back at zero rather than failing startup.
func (s *ScoreStore) Load() int64 {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("high score file unreadable, starting at zero",
				"path", s.path, "error", err)
		}
		return 0
	}

	var doc scoreDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("high score file corrupt, starting at zero",
			"path", s.path, "error", err)
		return 0
	}
	if doc.HighScore < 0 {
		return 0
	}
	return doc.HighScore
}

// Save writes score to disk, creating the parent directory if needed.
func (s *ScoreStore) Save(score int64) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create score directory: %w", err)
	}

	data, err := json.Marshal(scoreDocument{HighScore: score})
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace high score file: %w", err)
	}
	return nil
}
