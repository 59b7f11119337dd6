package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type memoryMatch struct {
	mu      sync.RWMutex
	matches map[string]entity.Match
}

// NewMemoryMatchRepository keeps match snapshots in process memory.
func NewMemoryMatchRepository() MatchRepository {
	return &memoryMatch{
		matches: make(map[string]entity.Match),
	}
}

func (that *memoryMatch) CreateOrUpdate(_ context.Context, match *entity.Match) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.matches[match.ID] = *match

	return nil
}

func (that *memoryMatch) GetByID(_ context.Context, id string) (*entity.Match, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	match, ok := that.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}

	return &match, nil
}

func (that *memoryMatch) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.matches[id]; !ok {
		return ErrMatchNotFound
	}

	delete(that.matches, id)

	return nil
}
