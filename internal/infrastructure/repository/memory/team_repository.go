package memory

import (
	"context"
	"sync"

	"github.com/rizkyfalih/league-manager/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	items  map[string]team.Team
	orders []string
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	orders := make([]string, 0, len(teams))

	for _, item := range teams {
		items[item.ID] = item
		orders = append(orders, item.ID)
	}

	return &TeamRepository{
		items:  items,
		orders: orders,
	}
}

func (r *TeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, id := range r.orders {
		if r.items[id].SeasonID == seasonID {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, seasonID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	if !ok || item.SeasonID != seasonID {
		return team.Team{}, false, nil
	}

	return item, true, nil
}

func (r *TeamRepository) GetByName(_ context.Context, seasonID, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		item := r.items[id]
		if item.SeasonID == seasonID && item.Name == name {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, seasonID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[teamID]
	if !ok || item.SeasonID != seasonID {
		return nil
	}

	delete(r.items, teamID)
	for i, id := range r.orders {
		if id == teamID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}
