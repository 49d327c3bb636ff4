package session

import (
	"context"
	"sync"
)

// Memory is an in-process Provider. It holds at most one session and is
// used where no local store is wanted, such as one-shot commands and tests.
type Memory struct {
	mu      sync.Mutex
	current *Session
	clears  int
}

func NewMemory(s *Session) *Memory {
	m := &Memory{}
	if s != nil {
		cp := *s
		m.current = &cp
	}
	return m
}

func (m *Memory) Read(context.Context) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	cp := *m.current
	return &cp
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	m.clears++
	return nil
}

func (m *Memory) Replace(_ context.Context, s Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &s
	return nil
}

// Clears reports how many times Clear ran.
func (m *Memory) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}
