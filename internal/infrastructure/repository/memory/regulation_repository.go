package memory

import (
	"context"
	"sync"

	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
)

type RegulationRepository struct {
	mu     sync.RWMutex
	items  map[string]regulation.Regulation
	orders []string
}

func NewRegulationRepository(regulations []regulation.Regulation) *RegulationRepository {
	items := make(map[string]regulation.Regulation, len(regulations))
	orders := make([]string, 0, len(regulations))

	for _, item := range regulations {
		key := regulationKey(item.SeasonID, item.Kind)
		items[key] = item
		orders = append(orders, key)
	}

	return &RegulationRepository{
		items:  items,
		orders: orders,
	}
}

func (r *RegulationRepository) ListBySeason(_ context.Context, seasonID string) ([]regulation.Regulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]regulation.Regulation, 0)
	for _, key := range r.orders {
		if r.items[key].SeasonID == seasonID {
			out = append(out, r.items[key])
		}
	}

	return out, nil
}

func (r *RegulationRepository) GetByKind(_ context.Context, seasonID, kind string) (regulation.Regulation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[regulationKey(seasonID, kind)]
	if !ok {
		return regulation.Regulation{}, false, nil
	}

	return item, true, nil
}

func (r *RegulationRepository) Create(_ context.Context, item regulation.Regulation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := regulationKey(item.SeasonID, item.Kind)
	if _, ok := r.items[key]; !ok {
		r.orders = append(r.orders, key)
	}
	r.items[key] = item
	return nil
}

func (r *RegulationRepository) Update(_ context.Context, item regulation.Regulation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[regulationKey(item.SeasonID, item.Kind)] = item
	return nil
}

func (r *RegulationRepository) Delete(_ context.Context, seasonID, kind string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := regulationKey(seasonID, kind)
	delete(r.items, key)
	for i, existing := range r.orders {
		if existing == key {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}

func regulationKey(seasonID, kind string) string {
	return seasonID + "::" + kind
}
