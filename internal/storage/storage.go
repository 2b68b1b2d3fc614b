package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has no value
var ErrNotFound = errors.New("key not found")

// Storage is a flat key/value store used for recency, history and plugin state
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Store is a Storage backed by a resource that must be closed
type Store interface {
	Storage
	Close() error
}

type scoped struct {
	inner  Storage
	prefix string
}

// Scoped returns a view of s where every key is prefixed with prefix
func Scoped(s Storage, prefix string) Storage {
	return &scoped{inner: s, prefix: prefix}
}

func (s *scoped) Get(key string) ([]byte, error)     { return s.inner.Get(s.prefix + key) }
func (s *scoped) Set(key string, value []byte) error { return s.inner.Set(s.prefix+key, value) }
func (s *scoped) Remove(key string) error            { return s.inner.Remove(s.prefix + key) }

// GetJSON decodes the value stored under key into v.
// It returns false without error when the key is missing.
func GetJSON(s Storage, key string, v any) (bool, error) {
	data, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key
func SetJSON(s Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.Set(key, data)
}
