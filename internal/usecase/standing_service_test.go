package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/match"
	"github.com/rizkyfalih/league-manager/internal/domain/player"
	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/result"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	"github.com/rizkyfalih/league-manager/internal/infrastructure/repository/memory"
	"github.com/rizkyfalih/league-manager/internal/platform/id"
	"github.com/rizkyfalih/league-manager/internal/platform/logging"
)

const testSeasonID = "season-2026"

type standingEnv struct {
	teamRepo          *memory.TeamRepository
	playerRepo        *memory.PlayerRepository
	regulationRepo    *memory.RegulationRepository
	teamResultRepo    *memory.TeamResultRepository
	playerResultRepo  *memory.PlayerResultRepository
	rankingRepo       *memory.RankingRepository
	playerRankingRepo *memory.PlayerRankingRepository
	notifier          *recordingNotifier
}

type recordingNotifier struct {
	events []StandingsUpdatedEvent
}

func (n *recordingNotifier) PublishStandingsUpdated(_ context.Context, event StandingsUpdatedEvent) error {
	n.events = append(n.events, event)
	return nil
}

func newStandingEnv(criteria []string) (*StandingService, *standingEnv) {
	env := &standingEnv{
		teamRepo: memory.NewTeamRepository([]team.Team{
			{ID: "team-a", SeasonID: testSeasonID, Name: "Alpha"},
			{ID: "team-b", SeasonID: testSeasonID, Name: "Bravo"},
			{ID: "team-c", SeasonID: testSeasonID, Name: "Charlie"},
		}),
		playerRepo: memory.NewPlayerRepository(nil),
		regulationRepo: memory.NewRegulationRepository([]regulation.Regulation{
			{
				ID:       "reg-ranking",
				SeasonID: testSeasonID,
				Kind:     regulation.KindRankingRules,
				Ranking: &regulation.RankingRules{
					WinPoints:       3,
					DrawPoints:      1,
					LosePoints:      0,
					RankingCriteria: criteria,
				},
			},
		}),
		teamResultRepo:    memory.NewTeamResultRepository(),
		playerResultRepo:  memory.NewPlayerResultRepository(),
		rankingRepo:       memory.NewRankingRepository(),
		playerRankingRepo: memory.NewPlayerRankingRepository(),
		notifier:          &recordingNotifier{},
	}

	service := NewStandingService(
		env.teamRepo,
		env.playerRepo,
		env.regulationRepo,
		env.teamResultRepo,
		env.playerResultRepo,
		env.rankingRepo,
		env.playerRankingRepo,
		id.NewRandomGenerator(),
		env.notifier,
		logging.NewNop(),
	)

	return service, env
}

func finishedMatch(matchID, homeID, awayID, score string, date time.Time) match.Match {
	return match.Match{
		ID:         matchID,
		SeasonID:   testSeasonID,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Date:       date,
		Score:      score,
		Status:     match.StatusFinished,
	}
}

func TestStandingService_ApplyMatchResult_FirstMatch(t *testing.T) {
	t.Parallel()

	service, env := newStandingEnv([]string{regulation.CriterionPoints})
	ctx := context.Background()
	kickoff := time.Date(2026, 3, 7, 18, 30, 0, 0, time.UTC)
	day := result.NormalizeDate(kickoff)

	if err := service.ApplyMatchResult(ctx, finishedMatch("m1", "team-a", "team-b", "2-1", kickoff)); err != nil {
		t.Fatalf("ApplyMatchResult error: %v", err)
	}

	home, found, err := env.teamResultRepo.FindExact(ctx, "team-a", testSeasonID, day)
	if err != nil || !found {
		t.Fatalf("home snapshot not found: found=%v err=%v", found, err)
	}
	if home.Played != 1 || home.Won != 1 || home.Points != 3 {
		t.Fatalf("unexpected home snapshot: %+v", home)
	}
	if home.GoalsFor != 2 || home.GoalsAgainst != 1 || home.GoalDifference != 1 {
		t.Fatalf("unexpected home goal stats: %+v", home)
	}
	if home.AwayGoals != 0 {
		t.Fatalf("home team must not accrue away goals, got %d", home.AwayGoals)
	}
	if home.HeadToHeadAgainst("team-b") != 3 {
		t.Fatalf("expected 3 head-to-head points against team-b, got %d", home.HeadToHeadAgainst("team-b"))
	}

	away, found, err := env.teamResultRepo.FindExact(ctx, "team-b", testSeasonID, day)
	if err != nil || !found {
		t.Fatalf("away snapshot not found: found=%v err=%v", found, err)
	}
	if away.Played != 1 || away.Lost != 1 || away.Points != 0 {
		t.Fatalf("unexpected away snapshot: %+v", away)
	}
	if away.AwayGoals != 1 {
		t.Fatalf("expected 1 away goal, got %d", away.AwayGoals)
	}
	if away.HeadToHeadAgainst("team-a") != 0 {
		t.Fatalf("losing side earns no head-to-head points, got %d", away.HeadToHeadAgainst("team-a"))
	}

	rows, err := env.rankingRepo.ListByDate(ctx, testSeasonID, day)
	if err != nil {
		t.Fatalf("ListByDate error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 ranking rows, got %d", len(rows))
	}

	if len(env.notifier.events) != 1 {
		t.Fatalf("expected 1 standings notification, got %d", len(env.notifier.events))
	}
	if env.notifier.events[0].Entries[0].TeamID != "team-a" || env.notifier.events[0].Entries[0].Rank != 1 {
		t.Fatalf("unexpected notified leader: %+v", env.notifier.events[0].Entries[0])
	}
}

func TestStandingService_ApplyMatchResult_CarriesBaselineForward(t *testing.T) {
	t.Parallel()

	service, env := newStandingEnv([]string{regulation.CriterionPoints})
	ctx := context.Background()
	day1 := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	if err := service.ApplyMatchResult(ctx, finishedMatch("m1", "team-a", "team-b", "2-0", day1)); err != nil {
		t.Fatalf("apply day1 match: %v", err)
	}
	if err := service.ApplyMatchResult(ctx, finishedMatch("m2", "team-b", "team-a", "1-1", day2)); err != nil {
		t.Fatalf("apply day2 match: %v", err)
	}

	latest, found, err := env.teamResultRepo.FindExact(ctx, "team-a", testSeasonID, day2)
	if err != nil || !found {
		t.Fatalf("day2 snapshot not found: found=%v err=%v", found, err)
	}
	if latest.Played != 2 || latest.Won != 1 || latest.Drawn != 1 || latest.Points != 4 {
		t.Fatalf("unexpected accumulated snapshot: %+v", latest)
	}
	if latest.GoalsFor != 3 || latest.GoalsAgainst != 1 || latest.GoalDifference != 2 {
		t.Fatalf("unexpected accumulated goal stats: %+v", latest)
	}
	if latest.AwayGoals != 1 {
		t.Fatalf("day2 away draw must count one away goal, got %d", latest.AwayGoals)
	}
	if latest.HeadToHeadAgainst("team-b") != 4 {
		t.Fatalf("expected 4 accumulated head-to-head points, got %d", latest.HeadToHeadAgainst("team-b"))
	}

	// The earlier day's snapshot must stay frozen.
	first, found, err := env.teamResultRepo.FindExact(ctx, "team-a", testSeasonID, day1)
	if err != nil || !found {
		t.Fatalf("day1 snapshot not found: found=%v err=%v", found, err)
	}
	if first.Played != 1 || first.Points != 3 {
		t.Fatalf("day1 snapshot was mutated: %+v", first)
	}
}

func TestStandingService_ApplyMatchResult_MissingRankingRules(t *testing.T) {
	t.Parallel()

	service, env := newStandingEnv([]string{regulation.CriterionPoints})
	ctx := context.Background()

	if err := env.regulationRepo.Delete(ctx, testSeasonID, regulation.KindRankingRules); err != nil {
		t.Fatalf("delete regulation: %v", err)
	}

	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	err := service.ApplyMatchResult(ctx, finishedMatch("m1", "team-a", "team-b", "2-1", day))
	if !errors.Is(err, ErrMissingRegulation) {
		t.Fatalf("expected ErrMissingRegulation, got %v", err)
	}

	rows, err := env.teamResultRepo.ListLatestPerTeam(ctx, testSeasonID, day)
	if err != nil {
		t.Fatalf("ListLatestPerTeam error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("no snapshots may be written on a misconfigured season, got %d", len(rows))
	}
}

func TestStandingService_ApplyMatchResult_RejectsUnfinishedMatch(t *testing.T) {
	t.Parallel()

	service, _ := newStandingEnv([]string{regulation.CriterionPoints})

	item := finishedMatch("m1", "team-a", "team-b", "", time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
	item.Status = match.StatusScheduled

	err := service.ApplyMatchResult(context.Background(), item)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStandingService_RecomputeRanking_CriteriaOrder(t *testing.T) {
	t.Parallel()

	service, env := newStandingEnv([]string{regulation.CriterionPoints, regulation.CriterionGoalsDifference})
	ctx := context.Background()
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	seed := []result.TeamResult{
		{ID: "r-a", TeamID: "team-a", SeasonID: testSeasonID, Date: day, Points: 10, GoalsFor: 12, GoalsAgainst: 10, GoalDifference: 2},
		{ID: "r-b", TeamID: "team-b", SeasonID: testSeasonID, Date: day, Points: 10, GoalsFor: 15, GoalsAgainst: 10, GoalDifference: 5},
		{ID: "r-c", TeamID: "team-c", SeasonID: testSeasonID, Date: day, Points: 12, GoalsFor: 9, GoalsAgainst: 10, GoalDifference: -1},
	}
	for _, row := range seed {
		if _, err := env.teamResultRepo.Upsert(ctx, row); err != nil {
			t.Fatalf("seed snapshot: %v", err)
		}
	}

	if err := service.RecomputeRanking(ctx, testSeasonID, day); err != nil {
		t.Fatalf("RecomputeRanking error: %v", err)
	}

	rows, err := service.ListStandings(ctx, testSeasonID, &day)
	if err != nil {
		t.Fatalf("ListStandings error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Team.ID != "team-c" || rows[1].Team.ID != "team-b" || rows[2].Team.ID != "team-a" {
		t.Fatalf("unexpected order: %s, %s, %s", rows[0].Team.ID, rows[1].Team.ID, rows[2].Team.ID)
	}
	if rows[0].Rank != 1 || rows[1].Rank != 2 || rows[2].Rank != 3 {
		t.Fatalf("ranks must be dense from 1: %d, %d, %d", rows[0].Rank, rows[1].Rank, rows[2].Rank)
	}
}

func TestStandingService_RecomputeRanking_HeadToHeadBreaksFullTies(t *testing.T) {
	t.Parallel()

	// headToHeadPoints listed first must still only apply after every
	// numeric criterion has tied.
	service, env := newStandingEnv([]string{
		regulation.CriterionHeadToHeadPoints,
		regulation.CriterionPoints,
		regulation.CriterionGoalsDifference,
	})
	ctx := context.Background()
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	seed := []result.TeamResult{
		{
			ID: "r-a", TeamID: "team-a", SeasonID: testSeasonID, Date: day,
			Points: 10, GoalDifference: 3,
			HeadToHead: map[string]int{"team-b": 1},
		},
		{
			ID: "r-b", TeamID: "team-b", SeasonID: testSeasonID, Date: day,
			Points: 10, GoalDifference: 3,
			HeadToHead: map[string]int{"team-a": 4},
		},
		{
			ID: "r-c", TeamID: "team-c", SeasonID: testSeasonID, Date: day,
			Points: 9, GoalDifference: 8,
			HeadToHead: map[string]int{"team-a": 6, "team-b": 6},
		},
	}
	for _, row := range seed {
		if _, err := env.teamResultRepo.Upsert(ctx, row); err != nil {
			t.Fatalf("seed snapshot: %v", err)
		}
	}

	if err := service.RecomputeRanking(ctx, testSeasonID, day); err != nil {
		t.Fatalf("RecomputeRanking error: %v", err)
	}

	rows, err := service.ListStandings(ctx, testSeasonID, &day)
	if err != nil {
		t.Fatalf("ListStandings error: %v", err)
	}

	// team-c has the best head-to-head record but fewer points, so it
	// stays below the tied pair, which head-to-head then splits.
	if rows[0].Team.ID != "team-b" || rows[1].Team.ID != "team-a" || rows[2].Team.ID != "team-c" {
		t.Fatalf("unexpected order: %s, %s, %s", rows[0].Team.ID, rows[1].Team.ID, rows[2].Team.ID)
	}
}

func TestStandingService_RecomputeRanking_IsIdempotent(t *testing.T) {
	t.Parallel()

	service, env := newStandingEnv([]string{regulation.CriterionPoints})
	ctx := context.Background()
	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	if err := service.ApplyMatchResult(ctx, finishedMatch("m1", "team-a", "team-b", "3-0", day)); err != nil {
		t.Fatalf("ApplyMatchResult error: %v", err)
	}

	first, err := service.ListStandings(ctx, testSeasonID, &day)
	if err != nil {
		t.Fatalf("first ListStandings error: %v", err)
	}

	if err := service.RecomputeRanking(ctx, testSeasonID, day); err != nil {
		t.Fatalf("second RecomputeRanking error: %v", err)
	}

	second, err := service.ListStandings(ctx, testSeasonID, &day)
	if err != nil {
		t.Fatalf("second ListStandings error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("row count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Team.ID != second[i].Team.ID || first[i].Rank != second[i].Rank {
			t.Fatalf("row %d changed: %+v vs %+v", i, first[i], second[i])
		}
	}

	rows, err := env.rankingRepo.ListByDate(ctx, testSeasonID, day)
	if err != nil {
		t.Fatalf("ListByDate error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("recompute must not duplicate ranking rows, got %d", len(rows))
	}
}

func TestStandingService_RecomputeRanking_InvalidCriterion(t *testing.T) {
	t.Parallel()

	service, env := newStandingEnv([]string{"goalsScoredWhileRaining"})
	ctx := context.Background()
	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	if _, err := env.teamResultRepo.Upsert(ctx, result.TeamResult{
		ID: "r-a", TeamID: "team-a", SeasonID: testSeasonID, Date: day, Points: 3,
	}); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	err := service.RecomputeRanking(ctx, testSeasonID, day)
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestStandingService_ListStandings_DefaultsToLatestDate(t *testing.T) {
	t.Parallel()

	service, _ := newStandingEnv([]string{regulation.CriterionPoints})
	ctx := context.Background()
	day1 := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	if err := service.ApplyMatchResult(ctx, finishedMatch("m1", "team-a", "team-b", "1-0", day1)); err != nil {
		t.Fatalf("apply day1 match: %v", err)
	}
	if err := service.ApplyMatchResult(ctx, finishedMatch("m2", "team-b", "team-a", "2-0", day2)); err != nil {
		t.Fatalf("apply day2 match: %v", err)
	}

	rows, err := service.ListStandings(ctx, testSeasonID, nil)
	if err != nil {
		t.Fatalf("ListStandings error: %v", err)
	}

	// After day2 both teams have 3 points; team-b leads on insertion-stable
	// ordering only if a criterion separates them, so check via points.
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Result.Played != 2 {
		t.Fatalf("latest date must reflect both matches, got played=%d", rows[0].Result.Played)
	}
}

func TestStandingService_ListStandings_NoRankings(t *testing.T) {
	t.Parallel()

	service, _ := newStandingEnv([]string{regulation.CriterionPoints})

	_, err := service.ListStandings(context.Background(), testSeasonID, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStandingService_PlayerRanking_CountsGoals(t *testing.T) {
	t.Parallel()

	service, env := newStandingEnv([]string{regulation.CriterionPoints})
	ctx := context.Background()
	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	players := []player.Player{
		{ID: "p-striker", TeamID: "team-a", Name: "Striker", BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), Position: player.PositionForward, ShirtNumber: 9},
		{ID: "p-mid", TeamID: "team-a", Name: "Mid", BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), Position: player.PositionMidfielder, ShirtNumber: 8},
		{ID: "p-keeper", TeamID: "team-b", Name: "Keeper", BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), Position: player.PositionGoalkeeper, ShirtNumber: 1},
	}
	for _, item := range players {
		if err := env.playerRepo.Create(ctx, item); err != nil {
			t.Fatalf("seed player: %v", err)
		}
	}

	item := finishedMatch("m1", "team-a", "team-b", "2-0", day)
	item.Goals = []match.GoalEvent{
		{PlayerID: "p-striker", Minute: 12, GoalType: "normal"},
		{PlayerID: "p-striker", Minute: 55, GoalType: "penalty"},
	}
	if err := service.ApplyMatchResult(ctx, item); err != nil {
		t.Fatalf("ApplyMatchResult error: %v", err)
	}

	rows, err := service.ListPlayerRankings(ctx, testSeasonID, &day)
	if err != nil {
		t.Fatalf("ListPlayerRankings error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("every rostered player gets a snapshot, got %d rows", len(rows))
	}
	if rows[0].Player.ID != "p-striker" || rows[0].Result.Goals != 2 {
		t.Fatalf("unexpected top scorer row: %+v", rows[0])
	}
	if rows[0].Result.Played != 1 || rows[1].Result.Played != 1 {
		t.Fatalf("every rostered player plays once: %+v, %+v", rows[0].Result, rows[1].Result)
	}
}
