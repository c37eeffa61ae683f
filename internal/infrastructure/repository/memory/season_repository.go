package memory

import (
	"context"
	"sync"

	"github.com/rizkyfalih/league-manager/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[string]season.Season
	orders []string
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	orders := make([]string, 0, len(seasons))

	for _, item := range seasons {
		items[item.ID] = item
		orders = append(orders, item.ID)
	}

	return &SeasonRepository{
		items:  items,
		orders: orders,
	}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}

	return item, true, nil
}

func (r *SeasonRepository) GetByName(_ context.Context, name string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if r.items[id].Name == name {
			return r.items[id], true, nil
		}
	}

	return season.Season{}, false, nil
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *SeasonRepository) Update(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *SeasonRepository) Delete(_ context.Context, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, seasonID)
	for i, id := range r.orders {
		if id == seasonID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}
