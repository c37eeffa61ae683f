package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rizkyfalih/league-manager/internal/domain/season"
	idgen "github.com/rizkyfalih/league-manager/internal/platform/id"
)

type SeasonService struct {
	seasonRepo season.Repository
	idGen      idgen.Generator
}

func NewSeasonService(seasonRepo season.Repository, idGen idgen.Generator) *SeasonService {
	return &SeasonService{
		seasonRepo: seasonRepo,
		idGen:      idGen,
	}
}

func (s *SeasonService) List(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.List")
	defer span.End()

	items, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return items, nil
}

func (s *SeasonService) GetByID(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetByID")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	return item, nil
}

func (s *SeasonService) Create(ctx context.Context, item season.Season) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Create")
	defer span.End()

	item.Name = strings.TrimSpace(item.Name)

	newID, err := s.idGen.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}
	item.ID = newID

	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, taken, err := s.seasonRepo.GetByName(ctx, item.Name)
	if err != nil {
		return season.Season{}, fmt.Errorf("check season name: %w", err)
	}
	if taken {
		return season.Season{}, fmt.Errorf("%w: season name %q", ErrConflict, item.Name)
	}

	if err := s.seasonRepo.Create(ctx, item); err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}

	return item, nil
}

func (s *SeasonService) Update(ctx context.Context, seasonID string, patch season.Patch) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Update")
	defer span.End()

	current, err := s.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, err
	}

	updated := patch.Apply(current)
	updated.Name = strings.TrimSpace(updated.Name)
	if err := updated.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if updated.Name != current.Name {
		_, taken, err := s.seasonRepo.GetByName(ctx, updated.Name)
		if err != nil {
			return season.Season{}, fmt.Errorf("check season name: %w", err)
		}
		if taken {
			return season.Season{}, fmt.Errorf("%w: season name %q", ErrConflict, updated.Name)
		}
	}

	if err := s.seasonRepo.Update(ctx, updated); err != nil {
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}

	return updated, nil
}

func (s *SeasonService) Delete(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, seasonID); err != nil {
		return err
	}

	if err := s.seasonRepo.Delete(ctx, seasonID); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}

	return nil
}
