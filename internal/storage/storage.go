package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nmendoza/tombacal/internal/match"
)

// Storage handles persistence of the match snapshot file
type Storage struct {
	path string
}

// New creates a Storage instance for the given snapshot path
func New(path string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating snapshot directory: %w", err)
		}
	}

	return &Storage{path: path}, nil
}

// Path returns the resolved snapshot path
func (s *Storage) Path() string {
	return s.path
}

// Save writes the records as an indented JSON array, overwriting any prior
// snapshot.
func (s *Storage) Save(records []*match.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// Load reads the snapshot back. A missing file is an error: the sync phase
// must not run before an extraction has produced output.
func (s *Storage) Load() ([]*match.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot %s not found, run the fetch phase first", s.path)
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var records []*match.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	return records, nil
}
