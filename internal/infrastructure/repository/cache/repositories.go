// Package cache wraps repositories with a read-through TTL cache. Only the
// slow-changing reference data (seasons, teams, regulations) is cached;
// results and rankings change on every recompute and always hit the store.
package cache

import (
	"context"

	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	basecache "github.com/rizkyfalih/league-manager/internal/platform/cache"
)

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	key := "season:id:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeasonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeasonByID)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) GetByName(ctx context.Context, name string) (season.Season, bool, error) {
	key := "season:name:" + name
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedSeasonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeasonByID)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "season:")
	return nil
}

func (r *SeasonRepository) Update(ctx context.Context, item season.Season) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "season:")
	return nil
}

func (r *SeasonRepository) Delete(ctx context.Context, seasonID string) error {
	if err := r.next.Delete(ctx, seasonID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "season:")
	return nil
}

type cachedSeasonByID struct {
	value  season.Season
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.Team, error) {
	key := "team:list:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, seasonID, teamID string) (team.Team, bool, error) {
	key := "team:id:" + seasonID + ":" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, seasonID, name string) (team.Team, bool, error) {
	key := "team:name:" + seasonID + ":" + name
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, seasonID, name)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, seasonID, teamID string) error {
	if err := r.next.Delete(ctx, seasonID, teamID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type RegulationRepository struct {
	next  regulation.Repository
	cache *basecache.Store
}

func NewRegulationRepository(next regulation.Repository, cache *basecache.Store) *RegulationRepository {
	return &RegulationRepository{next: next, cache: cache}
}

func (r *RegulationRepository) ListBySeason(ctx context.Context, seasonID string) ([]regulation.Regulation, error) {
	key := "regulation:list:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		out := make([]regulation.Regulation, 0, len(items))
		for _, item := range items {
			out = append(out, cloneRegulation(item))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]regulation.Regulation)
	out := make([]regulation.Regulation, 0, len(items))
	for _, item := range items {
		out = append(out, cloneRegulation(item))
	}
	return out, nil
}

func (r *RegulationRepository) GetByKind(ctx context.Context, seasonID, kind string) (regulation.Regulation, bool, error) {
	key := regulationKindKey(seasonID, kind)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByKind(ctx, seasonID, kind)
		if err != nil {
			return nil, err
		}
		return cachedRegulationByKind{
			value:  cloneRegulation(item),
			exists: exists,
		}, nil
	})
	if err != nil {
		return regulation.Regulation{}, false, err
	}

	cached, _ := v.(cachedRegulationByKind)
	return cloneRegulation(cached.value), cached.exists, nil
}

func (r *RegulationRepository) Create(ctx context.Context, item regulation.Regulation) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "regulation:list:"+item.SeasonID)
	r.cache.Delete(ctx, regulationKindKey(item.SeasonID, item.Kind))
	return nil
}

func (r *RegulationRepository) Update(ctx context.Context, item regulation.Regulation) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "regulation:list:"+item.SeasonID)
	r.cache.Delete(ctx, regulationKindKey(item.SeasonID, item.Kind))
	return nil
}

func (r *RegulationRepository) Delete(ctx context.Context, seasonID, kind string) error {
	if err := r.next.Delete(ctx, seasonID, kind); err != nil {
		return err
	}
	r.cache.Delete(ctx, "regulation:list:"+seasonID)
	r.cache.Delete(ctx, regulationKindKey(seasonID, kind))
	return nil
}

type cachedRegulationByKind struct {
	value  regulation.Regulation
	exists bool
}

// cloneRegulation copies the payload pointers so cached entries stay
// immutable when callers mutate what they get back.
func cloneRegulation(item regulation.Regulation) regulation.Regulation {
	out := item
	if item.Age != nil {
		age := *item.Age
		out.Age = &age
	}
	if item.Match != nil {
		match := *item.Match
		out.Match = &match
	}
	if item.Goal != nil {
		goal := *item.Goal
		goal.GoalTypes = append([]string(nil), item.Goal.GoalTypes...)
		out.Goal = &goal
	}
	if item.Ranking != nil {
		ranking := *item.Ranking
		ranking.RankingCriteria = append([]string(nil), item.Ranking.RankingCriteria...)
		out.Ranking = &ranking
	}
	return out
}

func regulationKindKey(seasonID, kind string) string {
	return "regulation:kind:" + seasonID + ":" + kind
}
