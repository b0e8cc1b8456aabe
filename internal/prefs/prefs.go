// Package prefs persists user preferences outside the entity store.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/peterbourgon/diskv/v3"
)

const (
	keyEnabledStatuses    = "enabled_statuses"
	keyUseBlackForeground = "use_black_foreground"
)

// Store is a small key/value preference store backed by diskv
type Store struct {
	d *diskv.Diskv
}

// Open creates or opens the preference store rooted at dir
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

// EnabledStatuses returns the saved enabled-status names. ok is false when nothing was saved yet.
func (s *Store) EnabledStatuses() (names []string, ok bool, err error) {
	if !s.d.Has(keyEnabledStatuses) {
		return nil, false, nil
	}
	b, err := s.d.Read(keyEnabledStatuses)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read enabled statuses: %w", err)
	}
	if err := json.Unmarshal(b, &names); err != nil {
		return nil, false, fmt.Errorf("failed to decode enabled statuses: %w", err)
	}
	return names, true, nil
}

// SetEnabledStatuses replaces the saved enabled-status names
func (s *Store) SetEnabledStatuses(names []string) error {
	if names == nil {
		names = []string{}
	}
	b, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to encode enabled statuses: %w", err)
	}
	if err := s.d.Write(keyEnabledStatuses, b); err != nil {
		return fmt.Errorf("failed to write enabled statuses: %w", err)
	}
	return nil
}

// UseBlackForeground reports whether status badges render with black text
func (s *Store) UseBlackForeground() bool {
	b, err := s.d.Read(keyUseBlackForeground)
	if err != nil {
		return false
	}
	v, _ := strconv.ParseBool(string(b))
	return v
}

// SetUseBlackForeground saves the badge text preference
func (s *Store) SetUseBlackForeground(v bool) error {
	if err := s.d.Write(keyUseBlackForeground, []byte(strconv.FormatBool(v))); err != nil {
		return fmt.Errorf("failed to write foreground preference: %w", err)
	}
	return nil
}

// Reset removes every saved preference
func (s *Store) Reset() error {
	return s.d.EraseAll()
}
