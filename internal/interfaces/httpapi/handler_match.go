package httpapi

import (
	"net/http"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/match"
)

func (h *Handler) ListMatchesBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesBySeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	matches, err := h.matchService.ListBySeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.GetByID(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	var req generateScheduleRequest
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

	matches, err := h.matchService.GenerateSchedule(ctx, seasonID, startDate)
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req recordResultRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	goals := make([]match.GoalEvent, 0, len(req.Goals))
	for _, g := range req.Goals {
		goals = append(goals, match.GoalEvent{
			PlayerID: g.PlayerID,
			Minute:   g.Minute,
			GoalType: g.GoalType,
		})
	}

	item, err := h.matchService.RecordResult(ctx, matchID, req.Score, goals)
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

type generateScheduleRequest struct {
	StartDate string `json:"startDate" validate:"required"`
}

type recordResultRequest struct {
	Score string             `json:"score" validate:"required"`
	Goals []goalEventRequest `json:"goals" validate:"dive"`
}

type goalEventRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Minute   int    `json:"minute" validate:"min=0"`
	GoalType string `json:"goalType" validate:"required"`
}

type matchDTO struct {
	ID         string         `json:"id"`
	SeasonID   string         `json:"seasonId"`
	HomeTeamID string         `json:"homeTeamId"`
	AwayTeamID string         `json:"awayTeamId"`
	Date       string         `json:"date"`
	Stadium    string         `json:"stadium"`
	Score      string         `json:"score,omitempty"`
	Status     string         `json:"status"`
	Goals      []goalEventDTO `json:"goals,omitempty"`
}

type goalEventDTO struct {
	PlayerID string `json:"playerId"`
	Minute   int    `json:"minute"`
	GoalType string `json:"goalType"`
}

func matchToDTO(v match.Match) matchDTO {
	goals := make([]goalEventDTO, 0, len(v.Goals))
	for _, g := range v.Goals {
		goals = append(goals, goalEventDTO{
			PlayerID: g.PlayerID,
			Minute:   g.Minute,
			GoalType: g.GoalType,
		})
	}

	return matchDTO{
		ID:         v.ID,
		SeasonID:   v.SeasonID,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		Date:       v.Date.UTC().Format(time.DateOnly),
		Stadium:    v.Stadium,
		Score:      v.Score,
		Status:     v.Status,
		Goals:      goals,
	}
}
