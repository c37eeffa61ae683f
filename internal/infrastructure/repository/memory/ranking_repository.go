package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/ranking"
)

type RankingRepository struct {
	mu     sync.RWMutex
	items  map[string]ranking.Ranking
	orders []string
}

func NewRankingRepository() *RankingRepository {
	return &RankingRepository{items: make(map[string]ranking.Ranking)}
}

func (r *RankingRepository) ListByDate(_ context.Context, seasonID string, date time.Time) ([]ranking.Ranking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ranking.Ranking, 0)
	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID == seasonID && item.Date.Equal(date) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *RankingRepository) LatestDate(_ context.Context, seasonID string) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest time.Time
	found := false
	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID != seasonID {
			continue
		}
		if !found || item.Date.After(latest) {
			latest = item.Date
			found = true
		}
	}
	return latest, found, nil
}

func (r *RankingRepository) ExistsForDate(_ context.Context, seasonID string, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID == seasonID && item.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *RankingRepository) Upsert(_ context.Context, item ranking.Ranking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rankingKey(item.SeasonID, item.TeamID, item.Date)
	if existing, ok := r.items[key]; ok {
		item.ID = existing.ID
	} else {
		r.orders = append(r.orders, key)
	}
	r.items[key] = item
	return nil
}

func (r *RankingRepository) DeleteBySeason(_ context.Context, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	for _, key := range r.orders {
		if r.items[key].SeasonID == seasonID {
			delete(r.items, key)
			continue
		}
		kept = append(kept, key)
	}
	r.orders = kept
	return nil
}

type PlayerRankingRepository struct {
	mu     sync.RWMutex
	items  map[string]ranking.PlayerRanking
	orders []string
}

func NewPlayerRankingRepository() *PlayerRankingRepository {
	return &PlayerRankingRepository{items: make(map[string]ranking.PlayerRanking)}
}

func (r *PlayerRankingRepository) ListByDate(_ context.Context, seasonID string, date time.Time) ([]ranking.PlayerRanking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ranking.PlayerRanking, 0)
	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID == seasonID && item.Date.Equal(date) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PlayerRankingRepository) LatestDate(_ context.Context, seasonID string) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest time.Time
	found := false
	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID != seasonID {
			continue
		}
		if !found || item.Date.After(latest) {
			latest = item.Date
			found = true
		}
	}
	return latest, found, nil
}

func (r *PlayerRankingRepository) ExistsForDate(_ context.Context, seasonID string, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID == seasonID && item.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *PlayerRankingRepository) Upsert(_ context.Context, item ranking.PlayerRanking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rankingKey(item.SeasonID, item.PlayerID, item.Date)
	if existing, ok := r.items[key]; ok {
		item.ID = existing.ID
	} else {
		r.orders = append(r.orders, key)
	}
	r.items[key] = item
	return nil
}

func (r *PlayerRankingRepository) DeleteBySeason(_ context.Context, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	for _, key := range r.orders {
		if r.items[key].SeasonID == seasonID {
			delete(r.items, key)
			continue
		}
		kept = append(kept, key)
	}
	r.orders = kept
	return nil
}

func rankingKey(seasonID, entityID string, date time.Time) string {
	return seasonID + "::" + entityID + "::" + date.Format(time.DateOnly)
}
