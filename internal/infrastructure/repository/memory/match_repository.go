package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/match"
	"github.com/rizkyfalih/league-manager/internal/domain/result"
)

type MatchRepository struct {
	mu     sync.RWMutex
	items  map[string]match.Match
	orders []string
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	orders := make([]string, 0, len(matches))

	for _, item := range matches {
		items[item.ID] = cloneMatch(item)
		orders = append(orders, item.ID)
	}

	return &MatchRepository{
		items:  items,
		orders: orders,
	}
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, id := range r.orders {
		if r.items[id].SeasonID == seasonID {
			out = append(out, cloneMatch(r.items[id]))
		}
	}

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return cloneMatch(item), true, nil
}

func (r *MatchRepository) CreateBatch(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if _, ok := r.items[item.ID]; !ok {
			r.orders = append(r.orders, item.ID)
		}
		r.items[item.ID] = cloneMatch(item)
	}
	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneMatch(item)
	return nil
}

func (r *MatchRepository) CountOnDate(_ context.Context, seasonID string, date time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := result.NormalizeDate(date)
	count := 0
	for _, id := range r.orders {
		item := r.items[id]
		if item.SeasonID == seasonID && result.NormalizeDate(item.Date).Equal(day) {
			count++
		}
	}

	return count, nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, matchID)
	for i, id := range r.orders {
		if id == matchID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}

func cloneMatch(item match.Match) match.Match {
	copied := item
	copied.Goals = append([]match.GoalEvent(nil), item.Goals...)
	return copied
}
