package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/season"
	idgen "github.com/rizkyfalih/league-manager/internal/platform/id"
)

type RegulationService struct {
	seasonRepo     season.Repository
	regulationRepo regulation.Repository
	idGen          idgen.Generator
}

func NewRegulationService(
	seasonRepo season.Repository,
	regulationRepo regulation.Repository,
	idGen idgen.Generator,
) *RegulationService {
	return &RegulationService{
		seasonRepo:     seasonRepo,
		regulationRepo: regulationRepo,
		idGen:          idGen,
	}
}

func (s *RegulationService) ListBySeason(ctx context.Context, seasonID string) ([]regulation.Regulation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegulationService.ListBySeason")
	defer span.End()

	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return nil, err
	}

	items, err := s.regulationRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list regulations: %w", err)
	}
	return items, nil
}

func (s *RegulationService) GetByKind(ctx context.Context, seasonID, kind string) (regulation.Regulation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegulationService.GetByKind")
	defer span.End()

	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return regulation.Regulation{}, err
	}
	if !regulation.IsKnownKind(kind) {
		return regulation.Regulation{}, fmt.Errorf("%w: unknown regulation kind %q", ErrInvalidInput, kind)
	}

	item, exists, err := s.regulationRepo.GetByKind(ctx, seasonID, kind)
	if err != nil {
		return regulation.Regulation{}, fmt.Errorf("get regulation: %w", err)
	}
	if !exists {
		return regulation.Regulation{}, fmt.Errorf("%w: regulation kind=%s season=%s", ErrNotFound, kind, seasonID)
	}

	return item, nil
}

// Create enforces at most one regulation per (season, kind).
func (s *RegulationService) Create(ctx context.Context, item regulation.Regulation) (regulation.Regulation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegulationService.Create")
	defer span.End()

	if err := s.ensureSeason(ctx, item.SeasonID); err != nil {
		return regulation.Regulation{}, err
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return regulation.Regulation{}, fmt.Errorf("generate regulation id: %w", err)
	}
	item.ID = newID

	if err := item.Validate(); err != nil {
		if errors.Is(err, regulation.ErrUnknownCriterion) {
			return regulation.Regulation{}, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
		}
		return regulation.Regulation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.regulationRepo.GetByKind(ctx, item.SeasonID, item.Kind)
	if err != nil {
		return regulation.Regulation{}, fmt.Errorf("check regulation kind: %w", err)
	}
	if exists {
		return regulation.Regulation{}, fmt.Errorf("%w: regulation kind=%s season=%s", ErrConflict, item.Kind, item.SeasonID)
	}

	if err := s.regulationRepo.Create(ctx, item); err != nil {
		return regulation.Regulation{}, fmt.Errorf("create regulation: %w", err)
	}

	return item, nil
}

// Update replaces the payload of an existing (season, kind) regulation.
func (s *RegulationService) Update(ctx context.Context, item regulation.Regulation) (regulation.Regulation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegulationService.Update")
	defer span.End()

	current, err := s.GetByKind(ctx, item.SeasonID, item.Kind)
	if err != nil {
		return regulation.Regulation{}, err
	}

	item.ID = current.ID
	if err := item.Validate(); err != nil {
		if errors.Is(err, regulation.ErrUnknownCriterion) {
			return regulation.Regulation{}, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
		}
		return regulation.Regulation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.regulationRepo.Update(ctx, item); err != nil {
		return regulation.Regulation{}, fmt.Errorf("update regulation: %w", err)
	}

	return item, nil
}

func (s *RegulationService) Delete(ctx context.Context, seasonID, kind string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegulationService.Delete")
	defer span.End()

	if _, err := s.GetByKind(ctx, seasonID, kind); err != nil {
		return err
	}

	if err := s.regulationRepo.Delete(ctx, seasonID, kind); err != nil {
		return fmt.Errorf("delete regulation: %w", err)
	}

	return nil
}

func (s *RegulationService) ensureSeason(ctx context.Context, seasonID string) error {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	return nil
}
