package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/levelup/internal/domain"
)

// ErrInjected is the error returned by FailingStore.
var ErrInjected = errors.New("injected store failure")

// MemoryStore keeps the last saved snapshot in memory.
type MemoryStore struct {
	mu    sync.Mutex
	snap  *domain.Snapshot
	Saves int
}

// NewMemoryStore returns a store preloaded with snap, or an empty store when
// snap is nil.
func NewMemoryStore(snap *domain.Snapshot) *MemoryStore {
	s := &MemoryStore{}
	if snap != nil {
		c := snap.Clone()
		s.snap = &c
	}
	return s
}

func (s *MemoryStore) Load(context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return domain.NewSnapshot(), nil
	}
	return s.snap.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := snap.Clone()
	s.snap = &c
	s.Saves++
	return nil
}

// Last returns the most recently saved snapshot and whether one exists.
func (s *MemoryStore) Last() (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return domain.Snapshot{}, false
	}
	return s.snap.Clone(), true
}

// FailingStore wraps a MemoryStore and fails every save from the FailFrom-th
// one on (1-based). FailFrom 0 never fails.
type FailingStore struct {
	*MemoryStore
	FailFrom int
	attempts int
}

// NewFailingStore returns a FailingStore over an empty memory store.
func NewFailingStore(failFrom int) *FailingStore {
	return &FailingStore{MemoryStore: NewMemoryStore(nil), FailFrom: failFrom}
}

func (s *FailingStore) Save(ctx context.Context, snap domain.Snapshot) error {
	s.attempts++
	if s.FailFrom > 0 && s.attempts >= s.FailFrom {
		return ErrInjected
	}
	return s.MemoryStore.Save(ctx, snap)
}
