// Package state persists local client state between invocations.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State represents the local client state as a generic map of key-value pairs.
// The session store keeps the auth token and cached user profile here.
type State map[string]interface{}

// File is a yaml-backed state file. Each instance owns one path, so tests can
// point it at a temporary directory instead of the user's home.
type File struct {
	path string
}

// DefaultFile returns the state file at ~/.vizinhanca/state.yml.
func DefaultFile() (*File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	return NewFile(filepath.Join(home, ".vizinhanca", "state.yml")), nil
}

// NewFile returns a state file at an explicit path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func (f *File) Load() (State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save saves the state to the state file.
func (f *File) Save(state State) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	// Token lives in here, keep it private to the user
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// GetString is a convenience function to get a string value from state.
// Returns empty string if the key doesn't exist or the value is not a string.
func (f *File) GetString(key string) (string, error) {
	state, err := f.Load()
	if err != nil {
		return "", err
	}

	val, ok := state[key]
	if !ok {
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", nil
	}

	return str, nil
}

// Set sets a value in the state.
func (f *File) Set(key string, value interface{}) error {
	state, err := f.Load()
	if err != nil {
		return err
	}

	state[key] = value
	return f.Save(state)
}

// Delete removes a key from the state.
func (f *File) Delete(key string) error {
	state, err := f.Load()
	if err != nil {
		return err
	}

	delete(state, key)
	return f.Save(state)
}
