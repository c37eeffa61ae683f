package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/result"
)

type TeamResultRepository struct {
	mu     sync.RWMutex
	items  map[string]result.TeamResult
	orders []string
}

func NewTeamResultRepository() *TeamResultRepository {
	return &TeamResultRepository{items: make(map[string]result.TeamResult)}
}

func (r *TeamResultRepository) FindExact(_ context.Context, teamID, seasonID string, date time.Time) (result.TeamResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[snapshotKey(teamID, seasonID, date)]
	if !ok {
		return result.TeamResult{}, false, nil
	}

	return cloneTeamResult(item), true, nil
}

func (r *TeamResultRepository) FindLatestBefore(_ context.Context, teamID, seasonID string, date time.Time) (result.TeamResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best result.TeamResult
	found := false
	for _, key := range r.orders {
		item := r.items[key]
		if item.TeamID != teamID || item.SeasonID != seasonID {
			continue
		}
		if !item.Date.Before(date) {
			continue
		}
		if !found || item.Date.After(best.Date) {
			best = item
			found = true
		}
	}

	if !found {
		return result.TeamResult{}, false, nil
	}
	return cloneTeamResult(best), true, nil
}

func (r *TeamResultRepository) ListLatestPerTeam(_ context.Context, seasonID string, date time.Time) ([]result.TeamResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latest := make(map[string]result.TeamResult)
	teamOrder := make([]string, 0)
	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID != seasonID || item.Date.After(date) {
			continue
		}
		current, ok := latest[item.TeamID]
		if !ok {
			teamOrder = append(teamOrder, item.TeamID)
			latest[item.TeamID] = item
			continue
		}
		if item.Date.After(current.Date) {
			latest[item.TeamID] = item
		}
	}

	out := make([]result.TeamResult, 0, len(teamOrder))
	for _, teamID := range teamOrder {
		out = append(out, cloneTeamResult(latest[teamID]))
	}
	return out, nil
}

func (r *TeamResultRepository) ListByDate(_ context.Context, seasonID string, date time.Time) ([]result.TeamResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.TeamResult, 0)
	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID == seasonID && item.Date.Equal(date) {
			out = append(out, cloneTeamResult(item))
		}
	}
	return out, nil
}

func (r *TeamResultRepository) Upsert(_ context.Context, item result.TeamResult) (result.TeamResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := snapshotKey(item.TeamID, item.SeasonID, item.Date)
	if existing, ok := r.items[key]; ok {
		item.ID = existing.ID
	} else {
		r.orders = append(r.orders, key)
	}
	r.items[key] = cloneTeamResult(item)
	return item, nil
}

func (r *TeamResultRepository) DeleteBySeason(_ context.Context, seasonID string) error {
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

type PlayerResultRepository struct {
	mu     sync.RWMutex
	items  map[string]result.PlayerResult
	orders []string
}

func NewPlayerResultRepository() *PlayerResultRepository {
	return &PlayerResultRepository{items: make(map[string]result.PlayerResult)}
}

func (r *PlayerResultRepository) FindExact(_ context.Context, playerID, seasonID string, date time.Time) (result.PlayerResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[snapshotKey(playerID, seasonID, date)]
	if !ok {
		return result.PlayerResult{}, false, nil
	}

	return item, true, nil
}

func (r *PlayerResultRepository) FindLatestBefore(_ context.Context, playerID, seasonID string, date time.Time) (result.PlayerResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best result.PlayerResult
	found := false
	for _, key := range r.orders {
		item := r.items[key]
		if item.PlayerID != playerID || item.SeasonID != seasonID {
			continue
		}
		if !item.Date.Before(date) {
			continue
		}
		if !found || item.Date.After(best.Date) {
			best = item
			found = true
		}
	}

	if !found {
		return result.PlayerResult{}, false, nil
	}
	return best, true, nil
}

func (r *PlayerResultRepository) ListLatestPerPlayer(_ context.Context, seasonID string, date time.Time) ([]result.PlayerResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latest := make(map[string]result.PlayerResult)
	playerOrder := make([]string, 0)
	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID != seasonID || item.Date.After(date) {
			continue
		}
		current, ok := latest[item.PlayerID]
		if !ok {
			playerOrder = append(playerOrder, item.PlayerID)
			latest[item.PlayerID] = item
			continue
		}
		if item.Date.After(current.Date) {
			latest[item.PlayerID] = item
		}
	}

	out := make([]result.PlayerResult, 0, len(playerOrder))
	for _, playerID := range playerOrder {
		out = append(out, latest[playerID])
	}
	return out, nil
}

func (r *PlayerResultRepository) ListByDate(_ context.Context, seasonID string, date time.Time) ([]result.PlayerResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.PlayerResult, 0)
	for _, key := range r.orders {
		item := r.items[key]
		if item.SeasonID == seasonID && item.Date.Equal(date) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PlayerResultRepository) Upsert(_ context.Context, item result.PlayerResult) (result.PlayerResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := snapshotKey(item.PlayerID, item.SeasonID, item.Date)
	if existing, ok := r.items[key]; ok {
		item.ID = existing.ID
	} else {
		r.orders = append(r.orders, key)
	}
	r.items[key] = item
	return item, nil
}

func (r *PlayerResultRepository) DeleteBySeason(_ context.Context, seasonID string) error {
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

func snapshotKey(entityID, seasonID string, date time.Time) string {
	return entityID + "::" + seasonID + "::" + date.Format(time.DateOnly)
}

func cloneTeamResult(item result.TeamResult) result.TeamResult {
	copied := item
	copied.HeadToHead = make(map[string]int, len(item.HeadToHead))
	for opponentID, points := range item.HeadToHead {
		copied.HeadToHead[opponentID] = points
	}
	return copied
}
