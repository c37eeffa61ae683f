package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/rizkyfalih/league-manager/internal/domain/match"
	"github.com/rizkyfalih/league-manager/internal/domain/player"
	"github.com/rizkyfalih/league-manager/internal/domain/ranking"
	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/result"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	idgen "github.com/rizkyfalih/league-manager/internal/platform/id"
	"github.com/rizkyfalih/league-manager/internal/platform/logging"
)

// StandingsUpdatedEvent is pushed to the notifier after a successful ranking
// recomputation.
type StandingsUpdatedEvent struct {
	SeasonID string
	Date     time.Time
	Entries  []StandingsUpdatedEntry
}

type StandingsUpdatedEntry struct {
	TeamID string
	Rank   int
	Points int
}

// StandingsNotifier publishes standings changes to an external consumer.
type StandingsNotifier interface {
	PublishStandingsUpdated(ctx context.Context, event StandingsUpdatedEvent) error
}

// StandingRow is one rendered league-table row.
type StandingRow struct {
	Rank   int
	Team   team.Team
	Result result.TeamResult
}

// PlayerRankingRow is one rendered scorer-table row.
type PlayerRankingRow struct {
	Rank   int
	Player player.Player
	Result result.PlayerResult
}

// StandingService recomputes cumulative team and player snapshots from match
// results and derives dated rankings from them.
type StandingService struct {
	teamRepo          team.Repository
	playerRepo        player.Repository
	regulationRepo    regulation.Repository
	teamResultRepo    result.TeamResultRepository
	playerResultRepo  result.PlayerResultRepository
	rankingRepo       ranking.Repository
	playerRankingRepo ranking.PlayerRepository
	idGen             idgen.Generator
	notifier          StandingsNotifier
	logger            *logging.Logger
}

func NewStandingService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	regulationRepo regulation.Repository,
	teamResultRepo result.TeamResultRepository,
	playerResultRepo result.PlayerResultRepository,
	rankingRepo ranking.Repository,
	playerRankingRepo ranking.PlayerRepository,
	idGen idgen.Generator,
	notifier StandingsNotifier,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingService{
		teamRepo:          teamRepo,
		playerRepo:        playerRepo,
		regulationRepo:    regulationRepo,
		teamResultRepo:    teamResultRepo,
		playerResultRepo:  playerResultRepo,
		rankingRepo:       rankingRepo,
		playerRankingRepo: playerRankingRepo,
		idGen:             idGen,
		notifier:          notifier,
		logger:            logger,
	}
}

// ApplyMatchResult folds one finished match into both teams' snapshots and
// the scorers' snapshots, then re-derives the rankings for the match date.
func (s *StandingService) ApplyMatchResult(ctx context.Context, item match.Match) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ApplyMatchResult")
	defer span.End()

	if !item.IsFinished() {
		return fmt.Errorf("%w: match %s has no final result", ErrInvalidInput, item.ID)
	}

	homeGoals, awayGoals, err := match.ParseScore(item.Score)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Resolve the scoring configuration before touching any snapshot so a
	// misconfigured season fails without partial writes.
	rules, err := s.rankingRules(ctx, item.SeasonID)
	if err != nil {
		return err
	}

	date := result.NormalizeDate(item.Date)

	if err := s.applyTeamResult(ctx, rules, item.SeasonID, item.HomeTeamID, item.AwayTeamID, homeGoals, awayGoals, true, date); err != nil {
		return fmt.Errorf("apply home team result: %w", err)
	}
	if err := s.applyTeamResult(ctx, rules, item.SeasonID, item.AwayTeamID, item.HomeTeamID, awayGoals, homeGoals, false, date); err != nil {
		return fmt.Errorf("apply away team result: %w", err)
	}

	if err := s.applyPlayerResults(ctx, item, date); err != nil {
		return fmt.Errorf("apply player results: %w", err)
	}

	// The two ranking passes read disjoint snapshot sets.
	var teamErr, playerErr error
	var wg conc.WaitGroup
	wg.Go(func() {
		teamErr = s.RecomputeRanking(ctx, item.SeasonID, date)
	})
	wg.Go(func() {
		playerErr = s.RecomputePlayerRanking(ctx, item.SeasonID, date)
	})
	wg.Wait()

	if teamErr != nil {
		return fmt.Errorf("recompute team ranking: %w", teamErr)
	}
	if playerErr != nil {
		// A match between teams with empty rosters leaves nothing to rank;
		// that is not a failure of the result update itself.
		if errors.Is(playerErr, ErrNotFound) {
			s.logger.DebugContext(ctx, "no player results to rank", "season_id", item.SeasonID)
			return nil
		}
		return fmt.Errorf("recompute player ranking: %w", playerErr)
	}

	return nil
}

// applyTeamResult folds one match outcome into a single team's snapshot for
// the given day, creating the snapshot from the most recent earlier one when
// the day has no entry yet.
func (s *StandingService) applyTeamResult(
	ctx context.Context,
	rules regulation.RankingRules,
	seasonID, teamID, opponentID string,
	goalsFor, goalsAgainst int,
	isHome bool,
	date time.Time,
) error {
	snapshot, found, err := s.teamResultRepo.FindExact(ctx, teamID, seasonID, date)
	if err != nil {
		return fmt.Errorf("find team result for date: %w", err)
	}

	if !found {
		baseline, hasBaseline, err := s.teamResultRepo.FindLatestBefore(ctx, teamID, seasonID, date)
		if err != nil {
			return fmt.Errorf("find baseline team result: %w", err)
		}
		if hasBaseline {
			snapshot = baseline.CloneForDate(date)
		} else {
			snapshot = result.TeamResult{
				TeamID:     teamID,
				SeasonID:   seasonID,
				Date:       date,
				HeadToHead: make(map[string]int),
			}
		}
	}
	if snapshot.HeadToHead == nil {
		snapshot.HeadToHead = make(map[string]int)
	}

	snapshot.Played++
	snapshot.GoalsFor += goalsFor
	snapshot.GoalsAgainst += goalsAgainst
	snapshot.GoalDifference = snapshot.GoalsFor - snapshot.GoalsAgainst
	if !isHome {
		snapshot.AwayGoals += goalsFor
	}

	snapshot.Points += rules.PointsFor(goalsFor, goalsAgainst)
	switch {
	case goalsFor > goalsAgainst:
		snapshot.Won++
		snapshot.HeadToHead[opponentID] += 3
	case goalsFor == goalsAgainst:
		snapshot.Drawn++
		snapshot.HeadToHead[opponentID] += 1
	default:
		snapshot.Lost++
		snapshot.HeadToHead[opponentID] += 0
	}

	if snapshot.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate team result id: %w", err)
		}
		snapshot.ID = newID
	}

	if _, err := s.teamResultRepo.Upsert(ctx, snapshot); err != nil {
		return fmt.Errorf("upsert team result team=%s date=%s: %w", teamID, date.Format(time.DateOnly), err)
	}

	return nil
}

// applyPlayerResults advances the snapshot of every rostered player of both
// teams: one more match played, plus their goals from this match.
func (s *StandingService) applyPlayerResults(ctx context.Context, item match.Match, date time.Time) error {
	goalsByPlayer := make(map[string]int, len(item.Goals))
	for _, goal := range item.Goals {
		goalsByPlayer[goal.PlayerID]++
	}

	for _, teamID := range []string{item.HomeTeamID, item.AwayTeamID} {
		roster, err := s.playerRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list roster team=%s: %w", teamID, err)
		}

		for _, member := range roster {
			if err := s.applyPlayerResult(ctx, item.SeasonID, member.ID, goalsByPlayer[member.ID], date); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *StandingService) applyPlayerResult(ctx context.Context, seasonID, playerID string, goals int, date time.Time) error {
	snapshot, found, err := s.playerResultRepo.FindExact(ctx, playerID, seasonID, date)
	if err != nil {
		return fmt.Errorf("find player result for date: %w", err)
	}

	if !found {
		baseline, hasBaseline, err := s.playerResultRepo.FindLatestBefore(ctx, playerID, seasonID, date)
		if err != nil {
			return fmt.Errorf("find baseline player result: %w", err)
		}
		if hasBaseline {
			snapshot = baseline.CloneForDate(date)
		} else {
			snapshot = result.PlayerResult{
				PlayerID: playerID,
				SeasonID: seasonID,
				Date:     date,
			}
		}
	}

	snapshot.Played++
	snapshot.Goals += goals

	if snapshot.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate player result id: %w", err)
		}
		snapshot.ID = newID
	}

	if _, err := s.playerResultRepo.Upsert(ctx, snapshot); err != nil {
		return fmt.Errorf("upsert player result player=%s date=%s: %w", playerID, date.Format(time.DateOnly), err)
	}

	return nil
}

// RecomputeRanking re-derives the league table for one season and date from
// the snapshot set described by the season's ranking criteria.
func (s *StandingService) RecomputeRanking(ctx context.Context, seasonID string, date time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RecomputeRanking")
	defer span.End()

	date = result.NormalizeDate(date)

	rules, err := s.rankingRules(ctx, seasonID)
	if err != nil {
		return err
	}

	candidates, err := s.rankingCandidates(ctx, seasonID, date)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: no team results to rank for season=%s date=%s", ErrNotFound, seasonID, date.Format(time.DateOnly))
	}

	sortTeamResults(candidates, rules.RankingCriteria)

	for position, row := range candidates {
		newID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate ranking id: %w", err)
		}
		item := ranking.Ranking{
			ID:           newID,
			SeasonID:     seasonID,
			TeamID:       row.TeamID,
			TeamResultID: row.ID,
			Rank:         position + 1,
			Date:         date,
		}
		if err := s.rankingRepo.Upsert(ctx, item); err != nil {
			return fmt.Errorf("upsert ranking team=%s: %w", row.TeamID, err)
		}
	}

	s.notifyStandingsUpdated(ctx, seasonID, date, candidates)

	return nil
}

// rankingCandidates builds the snapshot set to rank. When a ranking already
// exists for the date the same-date snapshots are authoritative; otherwise
// every team with history contributes its most recent snapshot at or before
// the date.
func (s *StandingService) rankingCandidates(ctx context.Context, seasonID string, date time.Time) ([]result.TeamResult, error) {
	exists, err := s.rankingRepo.ExistsForDate(ctx, seasonID, date)
	if err != nil {
		return nil, fmt.Errorf("check existing ranking: %w", err)
	}

	if exists {
		rows, err := s.teamResultRepo.ListByDate(ctx, seasonID, date)
		if err != nil {
			return nil, fmt.Errorf("list team results by date: %w", err)
		}
		return rows, nil
	}

	rows, err := s.teamResultRepo.ListLatestPerTeam(ctx, seasonID, date)
	if err != nil {
		return nil, fmt.Errorf("list latest team results: %w", err)
	}
	return rows, nil
}

// RecomputePlayerRanking re-derives the scorer table for one season and date.
// Player rankings have no configurable criteria: total goals decide.
func (s *StandingService) RecomputePlayerRanking(ctx context.Context, seasonID string, date time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RecomputePlayerRanking")
	defer span.End()

	date = result.NormalizeDate(date)

	exists, err := s.playerRankingRepo.ExistsForDate(ctx, seasonID, date)
	if err != nil {
		return fmt.Errorf("check existing player ranking: %w", err)
	}

	var candidates []result.PlayerResult
	if exists {
		candidates, err = s.playerResultRepo.ListByDate(ctx, seasonID, date)
	} else {
		candidates, err = s.playerResultRepo.ListLatestPerPlayer(ctx, seasonID, date)
	}
	if err != nil {
		return fmt.Errorf("list player results: %w", err)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: no player results to rank for season=%s date=%s", ErrNotFound, seasonID, date.Format(time.DateOnly))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Goals > candidates[j].Goals
	})

	for position, row := range candidates {
		newID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate player ranking id: %w", err)
		}
		item := ranking.PlayerRanking{
			ID:             newID,
			SeasonID:       seasonID,
			PlayerID:       row.PlayerID,
			PlayerResultID: row.ID,
			Rank:           position + 1,
			Date:           date,
		}
		if err := s.playerRankingRepo.Upsert(ctx, item); err != nil {
			return fmt.Errorf("upsert player ranking player=%s: %w", row.PlayerID, err)
		}
	}

	return nil
}

// ListStandings renders the league table for a date; a nil date means the
// most recent ranked date.
func (s *StandingService) ListStandings(ctx context.Context, seasonID string, date *time.Time) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListStandings")
	defer span.End()

	resolved, err := s.resolveRankingDate(ctx, seasonID, date)
	if err != nil {
		return nil, err
	}

	rows, err := s.rankingRepo.ListByDate(ctx, seasonID, resolved)
	if err != nil {
		return nil, fmt.Errorf("list rankings: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no ranking for season=%s date=%s", ErrNotFound, seasonID, resolved.Format(time.DateOnly))
	}

	snapshots, err := s.teamResultRepo.ListLatestPerTeam(ctx, seasonID, resolved)
	if err != nil {
		return nil, fmt.Errorf("list team results: %w", err)
	}
	snapshotByTeam := make(map[string]result.TeamResult, len(snapshots))
	for _, snapshot := range snapshots {
		snapshotByTeam[snapshot.TeamID] = snapshot
	}

	out := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		teamItem, _, err := s.teamRepo.GetByID(ctx, seasonID, row.TeamID)
		if err != nil {
			return nil, fmt.Errorf("get team %s: %w", row.TeamID, err)
		}
		out = append(out, StandingRow{
			Rank:   row.Rank,
			Team:   teamItem,
			Result: snapshotByTeam[row.TeamID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	return out, nil
}

// ListPlayerRankings renders the scorer table for a date; a nil date means
// the most recent ranked date.
func (s *StandingService) ListPlayerRankings(ctx context.Context, seasonID string, date *time.Time) ([]PlayerRankingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListPlayerRankings")
	defer span.End()

	var resolved time.Time
	if date != nil {
		resolved = result.NormalizeDate(*date)
	} else {
		latest, ok, err := s.playerRankingRepo.LatestDate(ctx, seasonID)
		if err != nil {
			return nil, fmt.Errorf("find latest player ranking date: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: season %s has no player rankings", ErrNotFound, seasonID)
		}
		resolved = latest
	}

	rows, err := s.playerRankingRepo.ListByDate(ctx, seasonID, resolved)
	if err != nil {
		return nil, fmt.Errorf("list player rankings: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no player ranking for season=%s date=%s", ErrNotFound, seasonID, resolved.Format(time.DateOnly))
	}

	snapshots, err := s.playerResultRepo.ListLatestPerPlayer(ctx, seasonID, resolved)
	if err != nil {
		return nil, fmt.Errorf("list player results: %w", err)
	}
	snapshotByPlayer := make(map[string]result.PlayerResult, len(snapshots))
	for _, snapshot := range snapshots {
		snapshotByPlayer[snapshot.PlayerID] = snapshot
	}

	out := make([]PlayerRankingRow, 0, len(rows))
	for _, row := range rows {
		playerItem, _, err := s.playerRepo.GetByID(ctx, row.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("get player %s: %w", row.PlayerID, err)
		}
		out = append(out, PlayerRankingRow{
			Rank:   row.Rank,
			Player: playerItem,
			Result: snapshotByPlayer[row.PlayerID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	return out, nil
}

func (s *StandingService) resolveRankingDate(ctx context.Context, seasonID string, date *time.Time) (time.Time, error) {
	if date != nil {
		return result.NormalizeDate(*date), nil
	}

	latest, ok, err := s.rankingRepo.LatestDate(ctx, seasonID)
	if err != nil {
		return time.Time{}, fmt.Errorf("find latest ranking date: %w", err)
	}
	if !ok {
		return time.Time{}, fmt.Errorf("%w: season %s has no rankings", ErrNotFound, seasonID)
	}
	return latest, nil
}

// rankingRules loads and validates the season's rankingRules regulation.
func (s *StandingService) rankingRules(ctx context.Context, seasonID string) (regulation.RankingRules, error) {
	item, found, err := s.regulationRepo.GetByKind(ctx, seasonID, regulation.KindRankingRules)
	if err != nil {
		return regulation.RankingRules{}, fmt.Errorf("get ranking rules regulation: %w", err)
	}
	if !found || item.Ranking == nil {
		return regulation.RankingRules{}, fmt.Errorf("%w: rankingRules for season=%s", ErrMissingRegulation, seasonID)
	}

	for _, criterion := range item.Ranking.RankingCriteria {
		switch criterion {
		case regulation.CriterionPoints, regulation.CriterionGoalsDifference,
			regulation.CriterionHeadToHeadPoints, regulation.CriterionGoalsForAway:
		default:
			return regulation.RankingRules{}, fmt.Errorf("%w: %q", ErrInvalidCriteria, criterion)
		}
	}

	return *item.Ranking, nil
}

func (s *StandingService) notifyStandingsUpdated(ctx context.Context, seasonID string, date time.Time, ranked []result.TeamResult) {
	if s.notifier == nil {
		return
	}

	event := StandingsUpdatedEvent{
		SeasonID: seasonID,
		Date:     date,
		Entries:  make([]StandingsUpdatedEntry, 0, len(ranked)),
	}
	for position, row := range ranked {
		event.Entries = append(event.Entries, StandingsUpdatedEntry{
			TeamID: row.TeamID,
			Rank:   position + 1,
			Points: row.Points,
		})
	}

	// Notification is best effort; the recomputation already committed.
	if err := s.notifier.PublishStandingsUpdated(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish standings update failed",
			"season_id", seasonID,
			"date", date.Format(time.DateOnly),
			"error", err,
		)
	}
}

// sortTeamResults orders snapshots descending by the configured criteria.
// headToHeadPoints is consulted only after every numeric criterion ties,
// wherever it appears in the list.
func sortTeamResults(rows []result.TeamResult, criteria []string) {
	sort.SliceStable(rows, func(i, j int) bool {
		return compareTeamResults(rows[i], rows[j], criteria) > 0
	})
}

func compareTeamResults(a, b result.TeamResult, criteria []string) int {
	headToHeadListed := false
	for _, criterion := range criteria {
		if criterion == regulation.CriterionHeadToHeadPoints {
			headToHeadListed = true
			continue
		}

		aValue, bValue := criterionValue(a, criterion), criterionValue(b, criterion)
		if aValue != bValue {
			if aValue > bValue {
				return 1
			}
			return -1
		}
	}

	if headToHeadListed {
		aPoints, bPoints := a.HeadToHeadAgainst(b.TeamID), b.HeadToHeadAgainst(a.TeamID)
		if aPoints != bPoints {
			if aPoints > bPoints {
				return 1
			}
			return -1
		}
	}

	return 0
}

func criterionValue(row result.TeamResult, criterion string) int {
	switch criterion {
	case regulation.CriterionPoints:
		return row.Points
	case regulation.CriterionGoalsDifference:
		return row.GoalDifference
	case regulation.CriterionGoalsForAway:
		return row.AwayGoals
	default:
		return 0
	}
}
