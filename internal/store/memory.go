package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryResults struct {
	mu    sync.Mutex
	games []GameResult
}

func NewMemoryResults() *MemoryResults {
	return &MemoryResults{}
}

func (m *MemoryResults) Record(_ context.Context, r GameResult) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now().UTC()
	}
	r.Placements = append([]Placement(nil), r.Placements...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, r)
	return nil
}

func (m *MemoryResults) Recent(_ context.Context, limit int) ([]GameResult, error) {
	if limit <= 0 {
		return nil, ErrBadLimit
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]GameResult, 0, min(limit, len(m.games)))
	for i := len(m.games) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.games[i])
	}
	return out, nil
}
