package dice

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNoLastRoll is returned by Load before anything was saved.
var ErrNoLastRoll = errors.New("no previous roll")

// Store persists the most recent roll in a msgpack file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStorePath is $XDG_STATE_HOME/dndml/lastroll.mp, falling back to
// ~/.local/state/dndml/lastroll.mp.
func DefaultStorePath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "dndml", "lastroll.mp"), nil
}

func (s *Store) Path() string {
	return s.path
}

// Save replaces the stored roll atomically.
func (s *Store) Save(r Roll) error {
	data, err := msgpack.Marshal(&r)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".lastroll-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Load returns the stored roll, or ErrNoLastRoll when there is none.
func (s *Store) Load() (Roll, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Roll{}, ErrNoLastRoll
		}
		return Roll{}, err
	}
	var r Roll
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return Roll{}, fmt.Errorf("read last roll %s: %w", s.path, err)
	}
	if err := r.Notation.Validate(); err != nil {
		return Roll{}, fmt.Errorf("read last roll %s: %w", s.path, err)
	}
	return r, nil
}
