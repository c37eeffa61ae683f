package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/match"
	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/result"
	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	"github.com/rizkyfalih/league-manager/internal/infrastructure/repository/memory"
	"github.com/rizkyfalih/league-manager/internal/platform/id"
	"github.com/rizkyfalih/league-manager/internal/platform/logging"
)

func newRebuildService(matches []match.Match) (*RebuildService, *memory.TeamResultRepository, *memory.RankingRepository) {
	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{
			ID:        testSeasonID,
			Name:      "Test Season",
			StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		},
	})
	teamRepo := memory.NewTeamRepository([]team.Team{
		{ID: "team-a", SeasonID: testSeasonID, Name: "Alpha"},
		{ID: "team-b", SeasonID: testSeasonID, Name: "Bravo"},
	})
	regulationRepo := memory.NewRegulationRepository([]regulation.Regulation{
		{
			ID:       "reg-ranking",
			SeasonID: testSeasonID,
			Kind:     regulation.KindRankingRules,
			Ranking: &regulation.RankingRules{
				WinPoints:       3,
				DrawPoints:      1,
				RankingCriteria: []string{regulation.CriterionPoints, regulation.CriterionGoalsDifference},
			},
		},
	})
	matchRepo := memory.NewMatchRepository(matches)
	teamResultRepo := memory.NewTeamResultRepository()
	playerResultRepo := memory.NewPlayerResultRepository()
	rankingRepo := memory.NewRankingRepository()
	playerRankingRepo := memory.NewPlayerRankingRepository()
	idGen := id.NewRandomGenerator()

	standings := NewStandingService(
		teamRepo,
		memory.NewPlayerRepository(nil),
		regulationRepo,
		teamResultRepo,
		playerResultRepo,
		rankingRepo,
		playerRankingRepo,
		idGen,
		nil,
		logging.NewNop(),
	)

	service := NewRebuildService(
		seasonRepo,
		matchRepo,
		teamResultRepo,
		playerResultRepo,
		rankingRepo,
		playerRankingRepo,
		standings,
		logging.NewNop(),
	)

	return service, teamResultRepo, rankingRepo
}

func TestRebuildService_RebuildSeason(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	matches := []match.Match{
		{ID: "m1", SeasonID: testSeasonID, HomeTeamID: "team-a", AwayTeamID: "team-b", Date: day1, Score: "2-0", Status: match.StatusFinished},
		{ID: "m2", SeasonID: testSeasonID, HomeTeamID: "team-b", AwayTeamID: "team-a", Date: day2, Score: "1-1", Status: match.StatusFinished},
		{ID: "m3", SeasonID: testSeasonID, HomeTeamID: "team-a", AwayTeamID: "team-b", Date: day2.AddDate(0, 0, 7), Status: match.StatusScheduled},
	}
	service, teamResultRepo, _ := newRebuildService(matches)
	ctx := context.Background()

	got, err := service.RebuildSeason(ctx, testSeasonID)
	if err != nil {
		t.Fatalf("RebuildSeason error: %v", err)
	}
	if got.MatchesApplied != 2 {
		t.Fatalf("only finished matches replay, got %d", got.MatchesApplied)
	}

	snapshot, found, err := teamResultRepo.FindExact(ctx, "team-a", testSeasonID, day2)
	if err != nil || !found {
		t.Fatalf("rebuilt snapshot not found: found=%v err=%v", found, err)
	}
	if snapshot.Played != 2 || snapshot.Points != 4 || snapshot.GoalDifference != 2 {
		t.Fatalf("unexpected rebuilt snapshot: %+v", snapshot)
	}
}

func TestRebuildService_RebuildSeason_WipesStaleState(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	matches := []match.Match{
		{ID: "m1", SeasonID: testSeasonID, HomeTeamID: "team-a", AwayTeamID: "team-b", Date: day, Score: "1-0", Status: match.StatusFinished},
	}
	service, teamResultRepo, _ := newRebuildService(matches)
	ctx := context.Background()

	// Stale snapshot from a previous, incorrect run.
	if _, err := teamResultRepo.Upsert(ctx, result.TeamResult{
		ID: "stale", TeamID: "team-a", SeasonID: testSeasonID,
		Date: day.AddDate(0, 0, -7), Played: 9, Points: 27,
	}); err != nil {
		t.Fatalf("seed stale snapshot: %v", err)
	}

	if _, err := service.RebuildSeason(ctx, testSeasonID); err != nil {
		t.Fatalf("RebuildSeason error: %v", err)
	}

	rows, err := teamResultRepo.ListLatestPerTeam(ctx, testSeasonID, day)
	if err != nil {
		t.Fatalf("ListLatestPerTeam error: %v", err)
	}
	for _, row := range rows {
		if row.TeamID == "team-a" && (row.Played != 1 || row.Points != 3) {
			t.Fatalf("stale state survived the rebuild: %+v", row)
		}
	}
}

func TestRebuildService_RebuildSeason_MatchesApplyFromReplay(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	matches := []match.Match{
		{ID: "m1", SeasonID: testSeasonID, HomeTeamID: "team-a", AwayTeamID: "team-b", Date: day, Score: "3-1", Status: match.StatusFinished},
	}
	service, teamResultRepo, rankingRepo := newRebuildService(matches)
	ctx := context.Background()

	first, err := service.RebuildSeason(ctx, testSeasonID)
	if err != nil {
		t.Fatalf("first RebuildSeason error: %v", err)
	}
	second, err := service.RebuildSeason(ctx, testSeasonID)
	if err != nil {
		t.Fatalf("second RebuildSeason error: %v", err)
	}
	if first.MatchesApplied != second.MatchesApplied {
		t.Fatalf("replay must be deterministic: %d vs %d", first.MatchesApplied, second.MatchesApplied)
	}

	snapshot, _, err := teamResultRepo.FindExact(ctx, "team-a", testSeasonID, day)
	if err != nil {
		t.Fatalf("FindExact error: %v", err)
	}
	if snapshot.Played != 1 || snapshot.Points != 3 {
		t.Fatalf("double rebuild double-counted: %+v", snapshot)
	}

	rows, err := rankingRepo.ListByDate(ctx, testSeasonID, day)
	if err != nil {
		t.Fatalf("ListByDate error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 ranking rows, got %d", len(rows))
	}
}

func TestRebuildService_RebuildAll(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	matches := []match.Match{
		{ID: "m1", SeasonID: testSeasonID, HomeTeamID: "team-a", AwayTeamID: "team-b", Date: day, Score: "1-0", Status: match.StatusFinished},
	}
	service, _, _ := newRebuildService(matches)

	got, err := service.RebuildAll(context.Background(), 2)
	if err != nil {
		t.Fatalf("RebuildAll error: %v", err)
	}
	if got.SuccessCount != 1 || got.FailedCount != 0 {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if len(got.Seasons) != 1 || got.Seasons[0].SeasonID != testSeasonID {
		t.Fatalf("unexpected season rows: %+v", got.Seasons)
	}
}
