package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/rizkyfalih/league-manager/internal/domain/match"
	"github.com/rizkyfalih/league-manager/internal/domain/ranking"
	"github.com/rizkyfalih/league-manager/internal/domain/result"
	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/platform/logging"
)

const defaultRebuildWorkers = 4

// RebuildService replays finished matches to reconstruct snapshots and
// rankings from scratch, per season or across all seasons.
type RebuildService struct {
	seasonRepo        season.Repository
	matchRepo         match.Repository
	teamResultRepo    result.TeamResultRepository
	playerResultRepo  result.PlayerResultRepository
	rankingRepo       ranking.Repository
	playerRankingRepo ranking.PlayerRepository
	standings         *StandingService
	logger            *logging.Logger
}

func NewRebuildService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	teamResultRepo result.TeamResultRepository,
	playerResultRepo result.PlayerResultRepository,
	rankingRepo ranking.Repository,
	playerRankingRepo ranking.PlayerRepository,
	standings *StandingService,
	logger *logging.Logger,
) *RebuildService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RebuildService{
		seasonRepo:        seasonRepo,
		matchRepo:         matchRepo,
		teamResultRepo:    teamResultRepo,
		playerResultRepo:  playerResultRepo,
		rankingRepo:       rankingRepo,
		playerRankingRepo: playerRankingRepo,
		standings:         standings,
		logger:            logger,
	}
}

// RebuildSeasonResult summarizes one season's replay.
type RebuildSeasonResult struct {
	SeasonID       string
	MatchesApplied int
	DurationMs     int64
}

// RebuildAllResult summarizes a fan-out over every season.
type RebuildAllResult struct {
	Seasons      []RebuildSeasonResult
	SuccessCount int
	FailedCount  int
}

// RebuildSeason wipes a season's snapshots and rankings and replays its
// finished matches in date order.
func (s *RebuildService) RebuildSeason(ctx context.Context, seasonID string) (RebuildSeasonResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RebuildService.RebuildSeason")
	defer span.End()

	started := time.Now()

	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return RebuildSeasonResult{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return RebuildSeasonResult{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	matches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return RebuildSeasonResult{}, fmt.Errorf("list matches: %w", err)
	}

	finished := make([]match.Match, 0, len(matches))
	for _, item := range matches {
		if item.IsFinished() {
			finished = append(finished, item)
		}
	}
	sort.SliceStable(finished, func(i, j int) bool {
		if !finished[i].Date.Equal(finished[j].Date) {
			return finished[i].Date.Before(finished[j].Date)
		}
		return finished[i].ID < finished[j].ID
	})

	if err := s.wipeSeason(ctx, seasonID); err != nil {
		return RebuildSeasonResult{}, err
	}

	for _, item := range finished {
		if err := s.standings.ApplyMatchResult(ctx, item); err != nil {
			return RebuildSeasonResult{}, fmt.Errorf("replay match %s: %w", item.ID, err)
		}
	}

	out := RebuildSeasonResult{
		SeasonID:       seasonID,
		MatchesApplied: len(finished),
		DurationMs:     time.Since(started).Milliseconds(),
	}

	s.logger.InfoContext(ctx, "season rebuild finished",
		"season_id", seasonID,
		"matches_applied", out.MatchesApplied,
		"duration_ms", out.DurationMs,
	)

	return out, nil
}

// RebuildAll replays every season on a bounded worker pool. Seasons are
// independent, so they rebuild concurrently.
func (s *RebuildService) RebuildAll(ctx context.Context, workerCount int) (RebuildAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RebuildService.RebuildAll")
	defer span.End()

	if workerCount < 1 {
		workerCount = defaultRebuildWorkers
	}

	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return RebuildAllResult{}, fmt.Errorf("list seasons: %w", err)
	}
	if len(seasons) == 0 {
		return RebuildAllResult{}, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RebuildAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan RebuildSeasonResult, len(seasons))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, item := range seasons {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row, rebuildErr := s.RebuildSeason(ctx, item.ID)
			if rebuildErr != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "season rebuild failed",
					"season_id", item.ID,
					"error", rebuildErr,
				)
				results <- RebuildSeasonResult{SeasonID: item.ID}
				return
			}

			successCount.Add(1)
			results <- row
		}); err != nil {
			workers.Done()
			return RebuildAllResult{}, fmt.Errorf("submit season rebuild: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := RebuildAllResult{
		SuccessCount: int(successCount.Load()),
		FailedCount:  int(failedCount.Load()),
	}
	for row := range results {
		out.Seasons = append(out.Seasons, row)
	}
	sort.SliceStable(out.Seasons, func(i, j int) bool {
		return out.Seasons[i].SeasonID < out.Seasons[j].SeasonID
	})

	return out, nil
}

func (s *RebuildService) wipeSeason(ctx context.Context, seasonID string) error {
	if err := s.rankingRepo.DeleteBySeason(ctx, seasonID); err != nil {
		return fmt.Errorf("wipe rankings: %w", err)
	}
	if err := s.playerRankingRepo.DeleteBySeason(ctx, seasonID); err != nil {
		return fmt.Errorf("wipe player rankings: %w", err)
	}
	if err := s.teamResultRepo.DeleteBySeason(ctx, seasonID); err != nil {
		return fmt.Errorf("wipe team results: %w", err)
	}
	if err := s.playerResultRepo.DeleteBySeason(ctx, seasonID); err != nil {
		return fmt.Errorf("wipe player results: %w", err)
	}
	return nil
}
