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
	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	"github.com/rizkyfalih/league-manager/internal/infrastructure/repository/memory"
	"github.com/rizkyfalih/league-manager/internal/platform/id"
	"github.com/rizkyfalih/league-manager/internal/platform/logging"
)

type matchEnv struct {
	regulationRepo *memory.RegulationRepository
	matchRepo      *memory.MatchRepository
	playerRepo     *memory.PlayerRepository
	teamResultRepo *memory.TeamResultRepository
}

func newMatchService(teams []team.Team, regulations []regulation.Regulation, players []player.Player) (*MatchService, *matchEnv) {
	env := &matchEnv{
		regulationRepo: memory.NewRegulationRepository(regulations),
		matchRepo:      memory.NewMatchRepository(nil),
		playerRepo:     memory.NewPlayerRepository(players),
		teamResultRepo: memory.NewTeamResultRepository(),
	}

	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{
			ID:        testSeasonID,
			Name:      "Test Season",
			StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		},
	})
	teamRepo := memory.NewTeamRepository(teams)
	idGen := id.NewRandomGenerator()

	standings := NewStandingService(
		teamRepo,
		env.playerRepo,
		env.regulationRepo,
		env.teamResultRepo,
		memory.NewPlayerResultRepository(),
		memory.NewRankingRepository(),
		memory.NewPlayerRankingRepository(),
		idGen,
		nil,
		logging.NewNop(),
	)

	service := NewMatchService(
		seasonRepo,
		teamRepo,
		env.playerRepo,
		env.regulationRepo,
		env.matchRepo,
		standings,
		idGen,
		logging.NewNop(),
	)

	return service, env
}

func fourTeams() []team.Team {
	return []team.Team{
		{ID: "team-a", SeasonID: testSeasonID, Name: "Alpha", Stadium: "Alpha Arena"},
		{ID: "team-b", SeasonID: testSeasonID, Name: "Bravo", Stadium: "Bravo Park"},
		{ID: "team-c", SeasonID: testSeasonID, Name: "Charlie", Stadium: "Charlie Field"},
		{ID: "team-d", SeasonID: testSeasonID, Name: "Delta", Stadium: "Delta Dome"},
	}
}

func scheduleRegulations() []regulation.Regulation {
	return []regulation.Regulation{
		{
			ID:       "reg-match",
			SeasonID: testSeasonID,
			Kind:     regulation.KindMatchRules,
			Match:    &regulation.MatchRules{Rounds: 2, MatchesPerDay: 2},
		},
		{
			ID:       "reg-ranking",
			SeasonID: testSeasonID,
			Kind:     regulation.KindRankingRules,
			Ranking: &regulation.RankingRules{
				WinPoints:       3,
				DrawPoints:      1,
				RankingCriteria: []string{regulation.CriterionPoints},
			},
		},
	}
}

func TestMatchService_GenerateSchedule(t *testing.T) {
	t.Parallel()

	service, _ := newMatchService(fourTeams(), scheduleRegulations(), nil)
	ctx := context.Background()
	start := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	matches, err := service.GenerateSchedule(ctx, testSeasonID, start)
	if err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	// 4 teams over 2 rounds means every pair meets twice.
	if len(matches) != 12 {
		t.Fatalf("expected 12 matches, got %d", len(matches))
	}

	perDay := make(map[time.Time]int)
	busy := make(map[time.Time]map[string]bool)
	homeCount := make(map[string]int)
	for _, item := range matches {
		if item.Date.Before(start) {
			t.Fatalf("match %s scheduled before start date: %s", item.ID, item.Date)
		}
		if item.Status != match.StatusScheduled {
			t.Fatalf("new match must be scheduled, got %q", item.Status)
		}

		perDay[item.Date]++
		if perDay[item.Date] > 2 {
			t.Fatalf("more than 2 matches on %s", item.Date.Format(time.DateOnly))
		}

		if busy[item.Date] == nil {
			busy[item.Date] = make(map[string]bool)
		}
		for _, teamID := range []string{item.HomeTeamID, item.AwayTeamID} {
			if busy[item.Date][teamID] {
				t.Fatalf("team %s plays twice on %s", teamID, item.Date.Format(time.DateOnly))
			}
			busy[item.Date][teamID] = true
		}

		homeCount[item.HomeTeamID]++
	}

	// Alternating rounds give every team one home leg per opponent.
	for teamID, count := range homeCount {
		if count != 3 {
			t.Fatalf("team %s has %d home matches, want 3", teamID, count)
		}
	}

	if matches[0].Stadium != "Alpha Arena" {
		t.Fatalf("match inherits the home team's stadium, got %q", matches[0].Stadium)
	}
}

func TestMatchService_GenerateSchedule_AlreadyScheduled(t *testing.T) {
	t.Parallel()

	service, _ := newMatchService(fourTeams(), scheduleRegulations(), nil)
	ctx := context.Background()
	start := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	if _, err := service.GenerateSchedule(ctx, testSeasonID, start); err != nil {
		t.Fatalf("first GenerateSchedule error: %v", err)
	}

	_, err := service.GenerateSchedule(ctx, testSeasonID, start)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMatchService_GenerateSchedule_MissingMatchRules(t *testing.T) {
	t.Parallel()

	service, _ := newMatchService(fourTeams(), nil, nil)

	_, err := service.GenerateSchedule(context.Background(), testSeasonID, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrMissingRegulation) {
		t.Fatalf("expected ErrMissingRegulation, got %v", err)
	}
}

func TestMatchService_GenerateSchedule_NeedsTwoTeams(t *testing.T) {
	t.Parallel()

	service, _ := newMatchService(fourTeams()[:1], scheduleRegulations(), nil)

	_, err := service.GenerateSchedule(context.Background(), testSeasonID, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_RecordResult(t *testing.T) {
	t.Parallel()

	regulations := append(scheduleRegulations(), regulation.Regulation{
		ID:       "reg-goal",
		SeasonID: testSeasonID,
		Kind:     regulation.KindGoalRules,
		Goal:     &regulation.GoalRules{GoalTypes: []string{"normal", "penalty"}, MaxMinute: 120},
	})
	players := []player.Player{
		{ID: "p-nine", TeamID: "team-a", Name: "Nine", BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), Position: player.PositionForward, ShirtNumber: 9},
		{ID: "p-one", TeamID: "team-b", Name: "One", BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), Position: player.PositionGoalkeeper, ShirtNumber: 1},
	}
	service, env := newMatchService(fourTeams(), regulations, players)
	ctx := context.Background()
	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	if err := env.matchRepo.CreateBatch(ctx, []match.Match{{
		ID:         "m1",
		SeasonID:   testSeasonID,
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		Date:       day,
		Status:     match.StatusScheduled,
	}}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	goals := []match.GoalEvent{
		{PlayerID: "p-nine", Minute: 30, GoalType: "normal"},
		{PlayerID: "p-nine", Minute: 78, GoalType: "penalty"},
	}
	got, err := service.RecordResult(ctx, "m1", "2-0", goals)
	if err != nil {
		t.Fatalf("RecordResult error: %v", err)
	}
	if got.Score != "2-0" || !got.IsFinished() {
		t.Fatalf("unexpected recorded match: %+v", got)
	}

	stored, _, err := env.matchRepo.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !stored.IsFinished() || len(stored.Goals) != 2 {
		t.Fatalf("persisted match not finalized: %+v", stored)
	}

	snapshot, found, err := env.teamResultRepo.FindExact(ctx, "team-a", testSeasonID, result.NormalizeDate(day))
	if err != nil || !found {
		t.Fatalf("standings snapshot missing: found=%v err=%v", found, err)
	}
	if snapshot.Won != 1 || snapshot.Points != 3 {
		t.Fatalf("standings not updated: %+v", snapshot)
	}
}

func TestMatchService_RecordResult_Validation(t *testing.T) {
	t.Parallel()

	regulations := append(scheduleRegulations(), regulation.Regulation{
		ID:       "reg-goal",
		SeasonID: testSeasonID,
		Kind:     regulation.KindGoalRules,
		Goal:     &regulation.GoalRules{GoalTypes: []string{"normal"}, MaxMinute: 90},
	})
	players := []player.Player{
		{ID: "p-nine", TeamID: "team-a", Name: "Nine", BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), Position: player.PositionForward, ShirtNumber: 9},
	}
	service, env := newMatchService(fourTeams(), regulations, players)
	ctx := context.Background()

	if err := env.matchRepo.CreateBatch(ctx, []match.Match{{
		ID:         "m1",
		SeasonID:   testSeasonID,
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		Date:       time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		Status:     match.StatusScheduled,
	}}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	cases := []struct {
		name  string
		score string
		goals []match.GoalEvent
	}{
		{name: "malformed score", score: "2:0"},
		{name: "goal count mismatch", score: "1-0", goals: []match.GoalEvent{
			{PlayerID: "p-nine", Minute: 10, GoalType: "normal"},
			{PlayerID: "p-nine", Minute: 20, GoalType: "normal"},
		}},
		{name: "unknown scorer", score: "1-0", goals: []match.GoalEvent{{PlayerID: "ghost", Minute: 10, GoalType: "normal"}}},
		{name: "disallowed goal type", score: "1-0", goals: []match.GoalEvent{{PlayerID: "p-nine", Minute: 10, GoalType: "bicycle"}}},
		{name: "minute beyond cap", score: "1-0", goals: []match.GoalEvent{{PlayerID: "p-nine", Minute: 95, GoalType: "normal"}}},
	}
	for _, tc := range cases {
		_, err := service.RecordResult(ctx, "m1", tc.score, tc.goals)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	stored, _, err := env.matchRepo.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if stored.IsFinished() {
		t.Fatalf("rejected results must not finalize the match: %+v", stored)
	}
}

func TestMatchService_RecordResult_AlreadyFinished(t *testing.T) {
	t.Parallel()

	service, env := newMatchService(fourTeams(), scheduleRegulations(), nil)
	ctx := context.Background()

	if err := env.matchRepo.CreateBatch(ctx, []match.Match{{
		ID:         "m1",
		SeasonID:   testSeasonID,
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		Date:       time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		Status:     match.StatusScheduled,
	}}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	if _, err := service.RecordResult(ctx, "m1", "1-0", nil); err != nil {
		t.Fatalf("first RecordResult error: %v", err)
	}

	_, err := service.RecordResult(ctx, "m1", "2-0", nil)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on double recording, got %v", err)
	}
}

func TestMatchService_RecordResult_MissingRankingRules(t *testing.T) {
	t.Parallel()

	// matchRules present, rankingRules absent: the result must be rejected
	// before the match row changes.
	service, env := newMatchService(fourTeams(), scheduleRegulations()[:1], nil)
	ctx := context.Background()

	if err := env.matchRepo.CreateBatch(ctx, []match.Match{{
		ID:         "m1",
		SeasonID:   testSeasonID,
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		Date:       time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		Status:     match.StatusScheduled,
	}}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	_, err := service.RecordResult(ctx, "m1", "1-0", nil)
	if !errors.Is(err, ErrMissingRegulation) {
		t.Fatalf("expected ErrMissingRegulation, got %v", err)
	}

	stored, _, err := env.matchRepo.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if stored.IsFinished() || stored.Score != "" {
		t.Fatalf("match row must stay untouched: %+v", stored)
	}
}
