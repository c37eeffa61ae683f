package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/infrastructure/repository/memory"
	"github.com/rizkyfalih/league-manager/internal/platform/id"
)

func newRegulationService(regulations []regulation.Regulation) *RegulationService {
	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{
			ID:        testSeasonID,
			Name:      "Test Season",
			StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		},
	})

	return NewRegulationService(seasonRepo, memory.NewRegulationRepository(regulations), id.NewRandomGenerator())
}

func TestRegulationService_Create(t *testing.T) {
	t.Parallel()

	service := newRegulationService(nil)

	got, err := service.Create(context.Background(), regulation.Regulation{
		SeasonID: testSeasonID,
		Kind:     regulation.KindRankingRules,
		Ranking: &regulation.RankingRules{
			WinPoints:       3,
			DrawPoints:      1,
			RankingCriteria: []string{regulation.CriterionPoints},
		},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("created regulation must get an id")
	}
}

func TestRegulationService_Create_OnePerKind(t *testing.T) {
	t.Parallel()

	service := newRegulationService([]regulation.Regulation{
		{
			ID:       "reg-match",
			SeasonID: testSeasonID,
			Kind:     regulation.KindMatchRules,
			Match:    &regulation.MatchRules{Rounds: 2, MatchesPerDay: 2},
		},
	})

	_, err := service.Create(context.Background(), regulation.Regulation{
		SeasonID: testSeasonID,
		Kind:     regulation.KindMatchRules,
		Match:    &regulation.MatchRules{Rounds: 1, MatchesPerDay: 4},
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegulationService_Create_UnknownCriterion(t *testing.T) {
	t.Parallel()

	service := newRegulationService(nil)

	_, err := service.Create(context.Background(), regulation.Regulation{
		SeasonID: testSeasonID,
		Kind:     regulation.KindRankingRules,
		Ranking: &regulation.RankingRules{
			WinPoints:       3,
			RankingCriteria: []string{"coinToss"},
		},
	})
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestRegulationService_GetByKind_UnknownKind(t *testing.T) {
	t.Parallel()

	service := newRegulationService(nil)

	_, err := service.GetByKind(context.Background(), testSeasonID, "weatherRules")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegulationService_Update_KeepsID(t *testing.T) {
	t.Parallel()

	service := newRegulationService([]regulation.Regulation{
		{
			ID:       "reg-goal",
			SeasonID: testSeasonID,
			Kind:     regulation.KindGoalRules,
			Goal:     &regulation.GoalRules{GoalTypes: []string{"normal"}, MaxMinute: 90},
		},
	})

	got, err := service.Update(context.Background(), regulation.Regulation{
		SeasonID: testSeasonID,
		Kind:     regulation.KindGoalRules,
		Goal:     &regulation.GoalRules{GoalTypes: []string{"normal", "penalty"}, MaxMinute: 120},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.ID != "reg-goal" {
		t.Fatalf("update must keep the stored id, got %q", got.ID)
	}
	if got.Goal.MaxMinute != 120 {
		t.Fatalf("payload not replaced: %+v", got.Goal)
	}
}

func TestRegulationService_Delete_NotFound(t *testing.T) {
	t.Parallel()

	service := newRegulationService(nil)

	err := service.Delete(context.Background(), testSeasonID, regulation.KindAgeRules)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
