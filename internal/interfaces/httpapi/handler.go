package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/platform/logging"
	"github.com/rizkyfalih/league-manager/internal/usecase"
)

type Handler struct {
	seasonService     *usecase.SeasonService
	teamService       *usecase.TeamService
	playerService     *usecase.PlayerService
	regulationService *usecase.RegulationService
	matchService      *usecase.MatchService
	standingService   *usecase.StandingService
	rebuildService    *usecase.RebuildService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	regulationService *usecase.RegulationService,
	matchService *usecase.MatchService,
	standingService *usecase.StandingService,
	rebuildService *usecase.RebuildService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService:     seasonService,
		teamService:       teamService,
		playerService:     playerService,
		regulationService: regulationService,
		matchService:      matchService,
		standingService:   standingService,
		rebuildService:    rebuildService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// parseDateQuery reads an optional ?date=YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q is not in YYYY-MM-DD format", usecase.ErrInvalidInput, raw)
	}
	return &parsed, nil
}

func parseDateField(field, raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not in YYYY-MM-DD format", usecase.ErrInvalidInput, field, raw)
	}
	return parsed, nil
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.seasonService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.GetByID(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startDate, err := parseDateField("startDate", req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseDateField("endDate", req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.Create(ctx, season.Season{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Active:    req.Active,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(item))
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	var req updateSeasonRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	patch := season.Patch{
		Name:   req.Name,
		Active: req.Active,
	}
	if req.StartDate != nil {
		startDate, err := parseDateField("startDate", *req.StartDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		patch.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDateField("endDate", *req.EndDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		patch.EndDate = &endDate
	}

	item, err := h.seasonService.Update(ctx, seasonID, patch)
	if err != nil {
		h.logger.WarnContext(ctx, "update season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	if err := h.seasonService.Delete(ctx, seasonID); err != nil {
		h.logger.WarnContext(ctx, "delete season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": seasonID})
}

type createSeasonRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Active    bool   `json:"active"`
}

type updateSeasonRequest struct {
	Name      *string `json:"name"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Active    *bool   `json:"active"`
}

type seasonDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Active    bool   `json:"active"`
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{
		ID:        v.ID,
		Name:      v.Name,
		StartDate: v.StartDate.UTC().Format(time.DateOnly),
		EndDate:   v.EndDate.UTC().Format(time.DateOnly),
		Active:    v.Active,
	}
}
