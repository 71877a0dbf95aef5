package memory

import (
	"context"
	"sync"
)

// Store keeps preferences in process memory only.
type Store struct {
	mu         sync.RWMutex
	prefs      map[string]string
	attributes map[string]map[string]string
}

func NewStore() *Store {
	return &Store{
		prefs:      make(map[string]string),
		attributes: make(map[string]map[string]string),
	}
}

func (s *Store) GetPreference(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.prefs[key]
	return v, ok, nil
}

func (s *Store) SetPreference(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[key] = value
	return nil
}

func (s *Store) GetAttribute(_ context.Context, ticketKey, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.attributes[ticketKey][name]
	return v, ok, nil
}

func (s *Store) SetAttribute(_ context.Context, ticketKey, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attributes[ticketKey] == nil {
		s.attributes[ticketKey] = make(map[string]string)
	}
	s.attributes[ticketKey][name] = value
	return nil
}

func (s *Store) Close() error {
	return nil
}
