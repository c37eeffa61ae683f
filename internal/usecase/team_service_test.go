package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	"github.com/rizkyfalih/league-manager/internal/infrastructure/repository/memory"
	"github.com/rizkyfalih/league-manager/internal/platform/id"
)

func newTeamService(teams []team.Team) *TeamService {
	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{
			ID:        testSeasonID,
			Name:      "Test Season",
			StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		},
	})

	return NewTeamService(seasonRepo, memory.NewTeamRepository(teams), id.NewRandomGenerator())
}

func TestTeamService_Create(t *testing.T) {
	t.Parallel()

	service := newTeamService(nil)
	ctx := context.Background()

	got, err := service.Create(ctx, team.Team{SeasonID: testSeasonID, Name: "Hanoi FC", Stadium: "Hang Day"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("created team must get an id")
	}

	if _, err := service.Create(ctx, team.Team{SeasonID: testSeasonID, Name: "Hanoi FC"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate name, got %v", err)
	}
}

func TestTeamService_Create_UnknownSeason(t *testing.T) {
	t.Parallel()

	service := newTeamService(nil)

	_, err := service.Create(context.Background(), team.Team{SeasonID: "missing", Name: "Nowhere FC"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_Update(t *testing.T) {
	t.Parallel()

	service := newTeamService([]team.Team{
		{ID: "team-a", SeasonID: testSeasonID, Name: "Alpha", Stadium: "Old Ground"},
		{ID: "team-b", SeasonID: testSeasonID, Name: "Bravo"},
	})
	ctx := context.Background()

	stadium := "New Ground"
	got, err := service.Update(ctx, testSeasonID, "team-a", team.Patch{Stadium: &stadium})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Stadium != "New Ground" || got.Name != "Alpha" {
		t.Fatalf("unexpected patched team: %+v", got)
	}

	taken := "Bravo"
	if _, err := service.Update(ctx, testSeasonID, "team-a", team.Patch{Name: &taken}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on name collision, got %v", err)
	}
}

func TestTeamService_Delete_NotFound(t *testing.T) {
	t.Parallel()

	service := newTeamService(nil)

	if err := service.Delete(context.Background(), testSeasonID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
