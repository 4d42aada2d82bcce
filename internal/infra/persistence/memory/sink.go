// Package memory provides an in-process sink holding the collection in RAM.
// It backs tests and ephemeral runs where durability is not wanted.
package memory

import (
	"context"
	"sync"

	"electroplan/pkg/domain"
)

// Sink stores the collection in memory. Safe for concurrent use. Everything
// crossing the boundary is deep-copied, so callers can never alias the stored
// state.
type Sink struct {
	mu       sync.Mutex
	projects []domain.Project
	saves    int
	saveErr  error
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Save replaces the stored collection.
func (s *Sink) Save(_ context.Context, projects []domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.projects = domain.CloneProjects(projects)
	return nil
}

// Load returns a copy of the stored collection.
func (s *Sink) Load(_ context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.projects == nil {
		return []domain.Project{}, nil
	}
	return domain.CloneProjects(s.projects), nil
}

// Close is a no-op.
func (s *Sink) Close() error { return nil }

// FailWith makes every subsequent Save return err. Pass nil to restore normal
// operation. Test hook.
func (s *Sink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves returns the number of Save calls, including failed ones.
func (s *Sink) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
