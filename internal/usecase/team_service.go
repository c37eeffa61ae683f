package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	idgen "github.com/rizkyfalih/league-manager/internal/platform/id"
)

type TeamService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	idGen      idgen.Generator
}

func NewTeamService(seasonRepo season.Repository, teamRepo team.Repository, idGen idgen.Generator) *TeamService {
	return &TeamService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
	}
}

func (s *TeamService) ListBySeason(ctx context.Context, seasonID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListBySeason")
	defer span.End()

	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return nil, err
	}

	items, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) GetByID(ctx context.Context, seasonID, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetByID")
	defer span.End()

	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return team.Team{}, err
	}

	item, exists, err := s.teamRepo.GetByID(ctx, seasonID, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

func (s *TeamService) Create(ctx context.Context, item team.Team) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	if err := s.ensureSeason(ctx, item.SeasonID); err != nil {
		return team.Team{}, err
	}

	item.Name = strings.TrimSpace(item.Name)

	newID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	item.ID = newID

	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, taken, err := s.teamRepo.GetByName(ctx, item.SeasonID, item.Name)
	if err != nil {
		return team.Team{}, fmt.Errorf("check team name: %w", err)
	}
	if taken {
		return team.Team{}, fmt.Errorf("%w: team name %q in season %s", ErrConflict, item.Name, item.SeasonID)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return item, nil
}

func (s *TeamService) Update(ctx context.Context, seasonID, teamID string, patch team.Patch) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	current, err := s.GetByID(ctx, seasonID, teamID)
	if err != nil {
		return team.Team{}, err
	}

	updated := patch.Apply(current)
	updated.Name = strings.TrimSpace(updated.Name)
	if err := updated.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if updated.Name != current.Name {
		_, taken, err := s.teamRepo.GetByName(ctx, seasonID, updated.Name)
		if err != nil {
			return team.Team{}, fmt.Errorf("check team name: %w", err)
		}
		if taken {
			return team.Team{}, fmt.Errorf("%w: team name %q in season %s", ErrConflict, updated.Name, seasonID)
		}
	}

	if err := s.teamRepo.Update(ctx, updated); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return updated, nil
}

func (s *TeamService) Delete(ctx context.Context, seasonID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, seasonID, teamID); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, seasonID, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	return nil
}

func (s *TeamService) ensureSeason(ctx context.Context, seasonID string) error {
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
