package httpapi

import (
	"net/http"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/player"
)

func (h *Handler) ListPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByTeam")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	teamID := r.PathValue("teamID")
	players, err := h.playerService.ListByTeam(ctx, seasonID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	item, err := h.playerService.GetByID(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	teamID := r.PathValue("teamID")
	var req createPlayerRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	birthDate, err := parseDateField("birthDate", req.BirthDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Create(ctx, seasonID, player.Player{
		TeamID:      teamID,
		Name:        req.Name,
		BirthDate:   birthDate,
		Nationality: req.Nationality,
		Position:    req.Position,
		IsForeign:   req.IsForeign,
		ShirtNumber: req.ShirtNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	var req updatePlayerRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Update(ctx, playerID, player.Patch{
		Name:        req.Name,
		Nationality: req.Nationality,
		Position:    req.Position,
		ShirtNumber: req.ShirtNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": playerID})
}

type createPlayerRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	BirthDate   string `json:"birthDate" validate:"required"`
	Nationality string `json:"nationality" validate:"max=60"`
	Position    string `json:"position" validate:"required,oneof=GK DF MF FW"`
	IsForeign   bool   `json:"isForeign"`
	ShirtNumber int    `json:"shirtNumber" validate:"required,min=1,max=99"`
}

type updatePlayerRequest struct {
	Name        *string `json:"name"`
	Nationality *string `json:"nationality"`
	Position    *string `json:"position"`
	ShirtNumber *int    `json:"shirtNumber"`
}

type playerDTO struct {
	ID          string `json:"id"`
	TeamID      string `json:"teamId"`
	Name        string `json:"name"`
	BirthDate   string `json:"birthDate"`
	Nationality string `json:"nationality"`
	Position    string `json:"position"`
	IsForeign   bool   `json:"isForeign"`
	ShirtNumber int    `json:"shirtNumber"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:          v.ID,
		TeamID:      v.TeamID,
		Name:        v.Name,
		BirthDate:   v.BirthDate.UTC().Format(time.DateOnly),
		Nationality: v.Nationality,
		Position:    v.Position,
		IsForeign:   v.IsForeign,
		ShirtNumber: v.ShirtNumber,
	}
}
