package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/player"
	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	idgen "github.com/rizkyfalih/league-manager/internal/platform/id"
)

// PlayerService manages rosters. Regulation-derived constraints (age range,
// roster cap, foreign-player cap) are enforced at creation time only.
type PlayerService struct {
	teamRepo       team.Repository
	playerRepo     player.Repository
	regulationRepo regulation.Repository
	idGen          idgen.Generator
	now            func() time.Time
}

func NewPlayerService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	regulationRepo regulation.Repository,
	idGen idgen.Generator,
) *PlayerService {
	return &PlayerService{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		regulationRepo: regulationRepo,
		idGen:          idGen,
		now:            time.Now,
	}
}

func (s *PlayerService) ListByTeam(ctx context.Context, seasonID, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByTeam")
	defer span.End()

	if _, err := s.ensureTeam(ctx, seasonID, teamID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) GetByID(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetByID")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}

func (s *PlayerService) Create(ctx context.Context, seasonID string, item player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	if _, err := s.ensureTeam(ctx, seasonID, item.TeamID); err != nil {
		return player.Player{}, err
	}

	item.Name = strings.TrimSpace(item.Name)

	newID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	item.ID = newID

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	roster, err := s.playerRepo.ListByTeam(ctx, item.TeamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("list roster: %w", err)
	}

	if err := s.checkAgeRules(ctx, seasonID, item, roster); err != nil {
		return player.Player{}, err
	}

	_, taken, err := s.playerRepo.GetByShirtNumber(ctx, item.TeamID, item.ShirtNumber)
	if err != nil {
		return player.Player{}, fmt.Errorf("check shirt number: %w", err)
	}
	if taken {
		return player.Player{}, fmt.Errorf("%w: shirt number %d in team %s", ErrConflict, item.ShirtNumber, item.TeamID)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return item, nil
}

func (s *PlayerService) Update(ctx context.Context, playerID string, patch player.Patch) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	current, err := s.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	updated := patch.Apply(current)
	updated.Name = strings.TrimSpace(updated.Name)
	if err := updated.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if updated.ShirtNumber != current.ShirtNumber {
		_, taken, err := s.playerRepo.GetByShirtNumber(ctx, current.TeamID, updated.ShirtNumber)
		if err != nil {
			return player.Player{}, fmt.Errorf("check shirt number: %w", err)
		}
		if taken {
			return player.Player{}, fmt.Errorf("%w: shirt number %d in team %s", ErrConflict, updated.ShirtNumber, current.TeamID)
		}
	}

	if err := s.playerRepo.Update(ctx, updated); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	return updated, nil
}

func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, playerID); err != nil {
		return err
	}

	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	return nil
}

// checkAgeRules applies the season's ageRules regulation when one exists.
func (s *PlayerService) checkAgeRules(ctx context.Context, seasonID string, item player.Player, roster []player.Player) error {
	reg, found, err := s.regulationRepo.GetByKind(ctx, seasonID, regulation.KindAgeRules)
	if err != nil {
		return fmt.Errorf("get age rules regulation: %w", err)
	}
	if !found || reg.Age == nil {
		return nil
	}

	rules := *reg.Age
	age := item.AgeAt(s.now().UTC())
	if age < rules.MinAge || age > rules.MaxAge {
		return fmt.Errorf("%w: player age %d outside allowed range [%d, %d]", ErrInvalidInput, age, rules.MinAge, rules.MaxAge)
	}

	if len(roster) >= rules.MaxPlayers {
		return fmt.Errorf("%w: team roster is full (%d players)", ErrInvalidInput, rules.MaxPlayers)
	}

	if item.IsForeign {
		foreignCount := 0
		for _, member := range roster {
			if member.IsForeign {
				foreignCount++
			}
		}
		if foreignCount >= rules.MaxForeignPlayers {
			return fmt.Errorf("%w: team already has %d foreign players", ErrInvalidInput, foreignCount)
		}
	}

	return nil
}

func (s *PlayerService) ensureTeam(ctx context.Context, seasonID, teamID string) (team.Team, error) {
	seasonID = strings.TrimSpace(seasonID)
	teamID = strings.TrimSpace(teamID)
	if seasonID == "" || teamID == "" {
		return team.Team{}, fmt.Errorf("%w: season and team ids are required", ErrInvalidInput)
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
