package client

import "sync"

// Store is a single-slot holder for the most recent successful analysis
// report. Failures are never stored. The slot starts empty, is overwritten
// on every success and is never cleared; the result view reads it and must
// not mutate what it gets back.
type Store struct {
	mu     sync.RWMutex
	report *Report
}

func NewStore() *Store {
	return &Store{}
}

// Set replaces the held report.
func (s *Store) Set(r *Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = r
}

// Get returns the held report, or nil when no successful analysis has
// happened yet.
func (s *Store) Get() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}
