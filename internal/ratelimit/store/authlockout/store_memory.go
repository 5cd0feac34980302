// Package authlockout stores failed sign-in records per lockout key.
package authlockout

import (
	"context"
	"sync"
	"time"

	"onboard/internal/ratelimit/models"
	"onboard/pkg/requestcontext"
)

// InMemoryAuthLockoutStore keeps lockout records in process memory.
type InMemoryAuthLockoutStore struct {
	mu      sync.Mutex
	records map[string]*models.AuthLockout
}

func New() *InMemoryAuthLockoutStore {
	return &InMemoryAuthLockoutStore{
		records: make(map[string]*models.AuthLockout),
	}
}

// Get returns a copy of the record for key, or nil when none exists.
func (s *InMemoryAuthLockoutStore) Get(_ context.Context, key string) (*models.AuthLockout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return clone(rec), nil
}

// RecordFailure counts a failure at the request time and returns the
// updated record.
func (s *InMemoryAuthLockoutStore) RecordFailure(ctx context.Context, key string, window time.Duration) (*models.AuthLockout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		rec = &models.AuthLockout{Identifier: key}
		s.records[key] = rec
	}
	rec.RecordFailureAt(requestcontext.Now(ctx), window)
	return clone(rec), nil
}

func (s *InMemoryAuthLockoutStore) Update(_ context.Context, record *models.AuthLockout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Identifier] = clone(record)
	return nil
}

func (s *InMemoryAuthLockoutStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// Sweep drops records that are unlocked at now and whose last failure is
// older than maxAge. Returns how many were removed.
func (s *InMemoryAuthLockoutStore) Sweep(now time.Time, maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, rec := range s.records {
		if !rec.IsLockedAt(now) && now.Sub(rec.LastFailureAt) > maxAge {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (s *InMemoryAuthLockoutStore) StartSweeper(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.Sweep(now, maxAge)
			}
		}
	}()
}

func clone(rec *models.AuthLockout) *models.AuthLockout {
	c := *rec
	if rec.LockedUntil != nil {
		until := *rec.LockedUntil
		c.LockedUntil = &until
	}
	return &c
}
