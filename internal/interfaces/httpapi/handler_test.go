package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/rizkyfalih/league-manager/internal/domain/user"
	"github.com/rizkyfalih/league-manager/internal/infrastructure/repository/memory"
	idgen "github.com/rizkyfalih/league-manager/internal/platform/id"
	"github.com/rizkyfalih/league-manager/internal/usecase"
)

const (
	testBearerToken   = "valid-token"
	testInternalToken = "job-secret"
)

type stubVerifier struct{}

func (stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if token != testBearerToken {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: "admin-1", Email: "admin@example.com"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	regulationRepo := memory.NewRegulationRepository(memory.SeedRegulations())
	matchRepo := memory.NewMatchRepository(nil)
	teamResultRepo := memory.NewTeamResultRepository()
	playerResultRepo := memory.NewPlayerResultRepository()
	rankingRepo := memory.NewRankingRepository()
	playerRankingRepo := memory.NewPlayerRankingRepository()
	gen := idgen.NewRandomGenerator()

	standingService := usecase.NewStandingService(
		teamRepo, playerRepo, regulationRepo,
		teamResultRepo, playerResultRepo,
		rankingRepo, playerRankingRepo,
		gen, nil, nil,
	)
	handler := NewHandler(
		usecase.NewSeasonService(seasonRepo, gen),
		usecase.NewTeamService(seasonRepo, teamRepo, gen),
		usecase.NewPlayerService(teamRepo, playerRepo, regulationRepo, gen),
		usecase.NewRegulationService(seasonRepo, regulationRepo, gen),
		usecase.NewMatchService(seasonRepo, teamRepo, playerRepo, regulationRepo, matchRepo, standingService, gen, nil),
		standingService,
		usecase.NewRebuildService(seasonRepo, matchRepo, teamResultRepo, playerResultRepo, rankingRepo, playerRankingRepo, standingService, nil),
		nil,
	)

	return NewRouter(handler, stubVerifier{}, nil, []string{"*"}, testInternalToken)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testBearerToken)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Data       any    `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	raw, err := sonic.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/healthz", "", false)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_ListSeasons(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/seasons", "", false)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var seasons []seasonDTO
	decodeData(t, rec, &seasons)
	if len(seasons) != 1 {
		t.Fatalf("expected one seeded season, got %d", len(seasons))
	}
	if seasons[0].ID != memory.SeasonIDVLeague2026 {
		t.Fatalf("unexpected season id: %s", seasons[0].ID)
	}
}

func TestRouter_CreateSeasonRequiresAuth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	body := `{"name":"V-League 2027","startDate":"2027-02-01","endDate":"2027-11-30","active":false}`
	rec := doRequest(t, router, http.MethodPost, "/v1/seasons", body, false)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_CreateSeason(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	body := `{"name":"V-League 2027","startDate":"2027-02-01","endDate":"2027-11-30","active":false}`
	rec := doRequest(t, router, http.MethodPost, "/v1/seasons", body, true)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created seasonDTO
	decodeData(t, rec, &created)
	if created.ID == "" {
		t.Fatalf("expected generated season id")
	}
	if created.Name != "V-League 2027" {
		t.Fatalf("unexpected season name: %s", created.Name)
	}
}

func TestRouter_CreateSeasonValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/v1/seasons", `{"name":""}`, true)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_GetRegulationUnknownKind(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/seasons/"+memory.SeasonIDVLeague2026+"/regulations/weatherRules", "", false)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_StandingsWithoutRankings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/seasons/"+memory.SeasonIDVLeague2026+"/standings", "", false)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_StandingsBadDateQuery(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/seasons/"+memory.SeasonIDVLeague2026+"/standings?date=March-1st", "", false)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ScheduleAndResultFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/seasons/"+memory.SeasonIDVLeague2026+"/matches/schedule", `{"startDate":"2026-02-07"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate schedule: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var matches []matchDTO
	decodeData(t, rec, &matches)
	if len(matches) == 0 {
		t.Fatalf("expected generated matches")
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/matches/"+matches[0].ID+"/result", `{"score":"2-1"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("record result: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var finished matchDTO
	decodeData(t, rec, &finished)
	if finished.Status != "FINISHED" {
		t.Fatalf("unexpected match status: %s", finished.Status)
	}
	if finished.Score != "2-1" {
		t.Fatalf("unexpected score: %s", finished.Score)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/seasons/"+memory.SeasonIDVLeague2026+"/standings", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("standings: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var rows []standingRowDTO
	decodeData(t, rec, &rows)
	if len(rows) != 2 {
		t.Fatalf("expected two ranked teams, got %d", len(rows))
	}
	if rows[0].Rank != 1 || rows[0].Points == 0 {
		t.Fatalf("unexpected leader row: %+v", rows[0])
	}
}

func TestRouter_RebuildJobRequiresToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/rebuild-rankings", "", false)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_RebuildJob(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/rebuild-rankings", strings.NewReader(""))
	req.Header.Set("X-Internal-Job-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result rebuildAllDTO
	decodeData(t, rec, &result)
	if result.SuccessCount != 1 {
		t.Fatalf("expected one rebuilt season, got %d", result.SuccessCount)
	}
}
