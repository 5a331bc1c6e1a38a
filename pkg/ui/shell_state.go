package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ShellState is the drawer and menu state carried across sessions.
type ShellState struct {
	Opened    bool      `json:"opened"`
	Collapsed bool      `json:"collapsed"`
	Preset    string    `json:"preset,omitempty"`  // last preset cycled to
	Section   string    `json:"section,omitempty"` // active menu section ID
	SavedAt   time.Time `json:"saved_at"`
}

// StateStore loads and saves ShellState as JSON. Safe for concurrent use.
type StateStore struct {
	mu    sync.Mutex
	path  string
	state ShellState
	dirty bool // Has unsaved changes
}

// NewStateStore creates a store backed by path. An empty path keeps state
// in memory only.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the backing file.
func (s *StateStore) Path() string {
	return s.path
}

// Load reads state from disk. A missing file yields fresh state and no
// error; an unreadable or corrupt file yields fresh state and the error.
func (s *StateStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = ShellState{}
	s.dirty = false
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading shell state: %w", err)
	}

	var st ShellState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("parsing shell state %s: %w", s.path, err)
	}
	s.state = st
	return nil
}

// Save writes state to disk when it has changed.
func (s *StateStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty || s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	s.state.SavedAt = time.Now()
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing shell state: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing shell state: %w", err)
	}

	s.dirty = false
	return nil
}

// Get returns a copy of the current state.
func (s *StateStore) Get() ShellState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the state and marks it dirty if anything changed.
func (s *StateStore) Update(fn func(*ShellState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state
	fn(&s.state)
	if s.state != before {
		s.dirty = true
	}
}

// IsDirty returns whether there are unsaved changes.
func (s *StateStore) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}
