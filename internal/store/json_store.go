// Package store writes scored races and web payloads as JSON files,
// one file per race keyed by race ID.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// JSONStore persists documents under a base directory.
type JSONStore struct {
	scoredDir string
	webDir    string
	logger    *logrus.Logger
}

// NewJSONStore creates a store writing scored results and web payloads to
// the given directories.
func NewJSONStore(scoredDir, webDir string, logger *logrus.Logger) *JSONStore {
	return &JSONStore{scoredDir: scoredDir, webDir: webDir, logger: logger}
}

// SaveScored writes a scored race result to the scored directory.
func (s *JSONStore) SaveScored(raceID string, doc any) (string, error) {
	return s.write(s.scoredDir, raceID, doc)
}

// SaveWeb writes a display payload to the web directory.
func (s *JSONStore) SaveWeb(raceID string, doc any) (string, error) {
	return s.write(s.webDir, raceID, doc)
}

func (s *JSONStore) write(dir, raceID string, doc any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal document for race %s: %w", raceID, err)
	}

	path := filepath.Join(dir, raceID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.logger.WithField("path", path).Debug("Saved JSON document")
	return path, nil
}
