package store

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
)

const stateFileName = "state.json"

// State is what the TUI restores on relaunch. Loading is best effort: a missing or
// corrupted file yields the zero state.
type State struct {
	Version int `json:"version"`

	// LastLocation is the list location shown when the TUI last quit.
	LastLocation string `json:"lastLocation,omitempty"`

	// View is one of: list|dashboard|bookmarks
	View string `json:"view,omitempty"`
}

func (s Store) LoadState() (*State, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &State{Version: 1}, nil
	}
	b, err := os.ReadFile(s.Path(stateFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &State{Version: 1}, nil
		}
		return nil, err
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return &State{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveState(st *State) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, "state.json.*.tmp", s.Path(stateFileName), b, 0o644)
}
