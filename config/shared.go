// ABOUTME: Mutex-guarded config holder shared by the editor and the file watcher
// ABOUTME: Readers always get a copy

package config

import "sync"

// Shared wraps Config with a mutex for thread-safe access between the watcher and the UI
type Shared struct {
	mu     sync.RWMutex
	config Config
}

// NewShared returns a holder initialised with cfg
func NewShared(cfg Config) *Shared {
	return &Shared{config: cfg}
}

// Get returns a copy of the current config (thread-safe read)
func (s *Shared) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// Update replaces the config (thread-safe write)
func (s *Shared) Update(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = cfg
}
