package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "kinkeep/contexts/identity-access/auth-service/domain/errors"
	"kinkeep/contexts/identity-access/auth-service/ports"
)

// PendingLoginStore is an in-memory single-process pending login store.
// It sits behind the port so a shared store can replace it without
// touching call sites.
type PendingLoginStore struct {
	mu      sync.Mutex
	pending map[string]ports.PendingLogin
}

func NewPendingLoginStore() *PendingLoginStore {
	return &PendingLoginStore{pending: make(map[string]ports.PendingLogin)}
}

// Now implements the Clock port.
func (s *PendingLoginStore) Now() time.Time { return time.Now().UTC() }

// NewID implements the IDGenerator port.
func (s *PendingLoginStore) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *PendingLoginStore) Put(_ context.Context, pending ports.PendingLogin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[pending.Key] = pending
	return nil
}

func (s *PendingLoginStore) Consume(_ context.Context, key string, now time.Time) (ports.PendingLogin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.pending[key]
	if !ok {
		return ports.PendingLogin{}, domainerrors.ErrPendingLoginNotFound
	}
	delete(s.pending, key)
	if !now.Before(pending.ExpiresAt) {
		return ports.PendingLogin{}, domainerrors.ErrPendingLoginExpired
	}
	return pending, nil
}

func (s *PendingLoginStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, pending := range s.pending {
		if !now.Before(pending.ExpiresAt) {
			delete(s.pending, key)
			removed++
		}
	}
	return removed, nil
}
