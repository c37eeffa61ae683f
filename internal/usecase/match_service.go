package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/match"
	"github.com/rizkyfalih/league-manager/internal/domain/player"
	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/result"
	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	idgen "github.com/rizkyfalih/league-manager/internal/platform/id"
	"github.com/rizkyfalih/league-manager/internal/platform/logging"
)

type MatchService struct {
	seasonRepo     season.Repository
	teamRepo       team.Repository
	playerRepo     player.Repository
	regulationRepo regulation.Repository
	matchRepo      match.Repository
	standings      *StandingService
	idGen          idgen.Generator
	logger         *logging.Logger
}

func NewMatchService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	regulationRepo regulation.Repository,
	matchRepo match.Repository,
	standings *StandingService,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		seasonRepo:     seasonRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		regulationRepo: regulationRepo,
		matchRepo:      matchRepo,
		standings:      standings,
		idGen:          idGen,
		logger:         logger,
	}
}

func (s *MatchService) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListBySeason")
	defer span.End()

	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) GetByID(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetByID")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

// GenerateSchedule creates the full round-robin fixture list for a season.
// Every pairing is assigned the earliest date from startDate whose match
// count is below the per-day cap and on which neither team already plays.
func (s *MatchService) GenerateSchedule(ctx context.Context, seasonID string, startDate time.Time) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GenerateSchedule")
	defer span.End()

	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	rules, err := s.matchRules(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: season %s needs at least two teams", ErrInvalidInput, seasonID)
	}

	existing, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list existing matches: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: season %s already has a schedule", ErrConflict, seasonID)
	}

	teamByID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		teamByID[item.ID] = item
	}

	pairings := roundRobinPairings(teams, rules.Rounds)

	firstDay := result.NormalizeDate(startDate)
	matchesPerDay := make(map[time.Time]int)
	teamBusy := make(map[time.Time]map[string]bool)

	out := make([]match.Match, 0, len(pairings))
	for _, pairing := range pairings {
		day := firstDay
		for {
			if matchesPerDay[day] < rules.MatchesPerDay && !teamBusy[day][pairing.homeID] && !teamBusy[day][pairing.awayID] {
				break
			}
			day = day.AddDate(0, 0, 1)
		}

		matchesPerDay[day]++
		if teamBusy[day] == nil {
			teamBusy[day] = make(map[string]bool)
		}
		teamBusy[day][pairing.homeID] = true
		teamBusy[day][pairing.awayID] = true

		newID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate match id: %w", err)
		}

		item := match.Match{
			ID:         newID,
			SeasonID:   seasonID,
			HomeTeamID: pairing.homeID,
			AwayTeamID: pairing.awayID,
			Date:       day,
			Stadium:    teamByID[pairing.homeID].Stadium,
			Status:     match.StatusScheduled,
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out = append(out, item)
	}

	if err := s.matchRepo.CreateBatch(ctx, out); err != nil {
		return nil, fmt.Errorf("persist schedule: %w", err)
	}

	s.logger.InfoContext(ctx, "schedule generated",
		"season_id", seasonID,
		"matches", len(out),
		"first_day", firstDay.Format(time.DateOnly),
	)

	return out, nil
}

// RecordResult finalizes a match with its score and goal events, then folds
// the result into the season's snapshots and rankings.
func (s *MatchService) RecordResult(ctx context.Context, matchID, score string, goals []match.GoalEvent) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult")
	defer span.End()

	item, err := s.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.IsFinished() {
		return match.Match{}, fmt.Errorf("%w: match %s already has a result", ErrConflict, matchID)
	}

	homeGoals, awayGoals, err := match.ParseScore(score)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(goals) > 0 && len(goals) != homeGoals+awayGoals {
		return match.Match{}, fmt.Errorf("%w: %d goal events for score %s", ErrInvalidInput, len(goals), score)
	}

	if err := s.validateGoals(ctx, item, goals); err != nil {
		return match.Match{}, err
	}

	// The standings update refuses to run without rankingRules; checking
	// here keeps the match row untouched in that case.
	if _, found, err := s.regulationRepo.GetByKind(ctx, item.SeasonID, regulation.KindRankingRules); err != nil {
		return match.Match{}, fmt.Errorf("get ranking rules regulation: %w", err)
	} else if !found {
		return match.Match{}, fmt.Errorf("%w: rankingRules for season=%s", ErrMissingRegulation, item.SeasonID)
	}

	item.Score = match.FormatScore(homeGoals, awayGoals)
	item.Goals = goals
	item.Status = match.StatusFinished

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	if err := s.standings.ApplyMatchResult(ctx, item); err != nil {
		return match.Match{}, err
	}

	return item, nil
}

// validateGoals checks each event against the season's goalRules regulation
// (when present) and the two rosters.
func (s *MatchService) validateGoals(ctx context.Context, item match.Match, goals []match.GoalEvent) error {
	if len(goals) == 0 {
		return nil
	}

	reg, found, err := s.regulationRepo.GetByKind(ctx, item.SeasonID, regulation.KindGoalRules)
	if err != nil {
		return fmt.Errorf("get goal rules regulation: %w", err)
	}

	rosterIDs := make(map[string]bool)
	for _, teamID := range []string{item.HomeTeamID, item.AwayTeamID} {
		roster, err := s.playerRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list roster team=%s: %w", teamID, err)
		}
		for _, member := range roster {
			rosterIDs[member.ID] = true
		}
	}

	for _, goal := range goals {
		if !rosterIDs[goal.PlayerID] {
			return fmt.Errorf("%w: scorer %s plays for neither team", ErrInvalidInput, goal.PlayerID)
		}
		if !found || reg.Goal == nil {
			continue
		}
		if !reg.Goal.AllowsType(goal.GoalType) {
			return fmt.Errorf("%w: goal type %q is not allowed", ErrInvalidInput, goal.GoalType)
		}
		if goal.Minute < 0 || goal.Minute > reg.Goal.MaxMinute {
			return fmt.Errorf("%w: goal minute %d outside [0, %d]", ErrInvalidInput, goal.Minute, reg.Goal.MaxMinute)
		}
	}

	return nil
}

func (s *MatchService) matchRules(ctx context.Context, seasonID string) (regulation.MatchRules, error) {
	item, found, err := s.regulationRepo.GetByKind(ctx, seasonID, regulation.KindMatchRules)
	if err != nil {
		return regulation.MatchRules{}, fmt.Errorf("get match rules regulation: %w", err)
	}
	if !found || item.Match == nil {
		return regulation.MatchRules{}, fmt.Errorf("%w: matchRules for season=%s", ErrMissingRegulation, seasonID)
	}

	return *item.Match, nil
}

func (s *MatchService) ensureSeason(ctx context.Context, seasonID string) error {
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

type pairing struct {
	homeID string
	awayID string
}

// roundRobinPairings lists every ordered pairing for the requested number of
// rounds, alternating home advantage between rounds.
func roundRobinPairings(teams []team.Team, rounds int) []pairing {
	out := make([]pairing, 0, rounds*len(teams)*(len(teams)-1)/2)
	for round := 0; round < rounds; round++ {
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				if round%2 == 0 {
					out = append(out, pairing{homeID: teams[i].ID, awayID: teams[j].ID})
				} else {
					out = append(out, pairing{homeID: teams[j].ID, awayID: teams[i].ID})
				}
			}
		}
	}
	return out
}
