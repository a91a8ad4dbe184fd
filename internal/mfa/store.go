// Package mfa holds step-up verification challenges and code generation for the session gate.
package mfa

import (
	"context"
	"sync"
	"time"

	"report-portal/internal/mfa/domain"
)

// ChallengeStore holds pending step-up challenges by id.
type ChallengeStore interface {
	// Put stores c under c.ID, replacing any previous value.
	Put(ctx context.Context, c *domain.Challenge)
	// Get returns the challenge if present and not expired. Expired entries are dropped.
	Get(ctx context.Context, id string) (*domain.Challenge, bool)
	// Delete removes the challenge. Missing ids are ignored.
	Delete(ctx context.Context, id string)
}

// MemoryStore is an in-memory ChallengeStore implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	m    map[string]domain.Challenge
	nowF func() time.Time
}

// NewMemoryStore returns a new in-memory challenge store. nowF may be nil (defaults to time.Now).
func NewMemoryStore(nowF func() time.Time) *MemoryStore {
	if nowF == nil {
		nowF = time.Now
	}
	return &MemoryStore{
		m:    make(map[string]domain.Challenge),
		nowF: nowF,
	}
}

// Put stores a copy of c.
func (s *MemoryStore) Put(ctx context.Context, c *domain.Challenge) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[c.ID] = *c
}

// Get returns a copy of the challenge if present and not expired.
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Challenge, bool) {
	s.mu.RLock()
	c, ok := s.m[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.Expired(s.nowF()) {
		s.mu.Lock()
		delete(s.m, id)
		s.mu.Unlock()
		return nil, false
	}
	return &c, true
}

// Delete removes the challenge with the given id.
func (s *MemoryStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}
