// Package memory holds the session record in process memory. It is lost on
// restart and suits tests and throwaway demos.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/workboard/taskboard/internal/core/ports"
)

type SessionStore struct {
	mu     sync.Mutex
	record []byte
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Load(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return nil, ports.ErrNoSession
	}
	return slices.Clone(s.record), nil
}

func (s *SessionStore) Save(_ context.Context, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = slices.Clone(record)
	if s.record == nil {
		s.record = []byte{}
	}
	return nil
}

func (s *SessionStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}
