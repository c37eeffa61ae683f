package httpapi

import (
	"net/http"

	"github.com/rizkyfalih/league-manager/internal/domain/team"
)

func (h *Handler) ListTeamsBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsBySeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	teams, err := h.teamService.ListBySeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	teamID := r.PathValue("teamID")
	item, err := h.teamService.GetByID(ctx, seasonID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	var req createTeamRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, team.Team{
		SeasonID: seasonID,
		Name:     req.Name,
		Stadium:  req.Stadium,
		Coach:    req.Coach,
		LogoURL:  req.LogoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "season_id", seasonID, "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	teamID := r.PathValue("teamID")
	var req updateTeamRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, seasonID, teamID, team.Patch{
		Name:    req.Name,
		Stadium: req.Stadium,
		Coach:   req.Coach,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	teamID := r.PathValue("teamID")
	if err := h.teamService.Delete(ctx, seasonID, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": teamID})
}

type createTeamRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Stadium string `json:"stadium" validate:"max=100"`
	Coach   string `json:"coach" validate:"max=100"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
}

type updateTeamRequest struct {
	Name    *string `json:"name"`
	Stadium *string `json:"stadium"`
	Coach   *string `json:"coach"`
	LogoURL *string `json:"logoUrl"`
}

type teamDTO struct {
	ID       string `json:"id"`
	SeasonID string `json:"seasonId"`
	Name     string `json:"name"`
	Stadium  string `json:"stadium"`
	Coach    string `json:"coach"`
	LogoURL  string `json:"logoUrl"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:       v.ID,
		SeasonID: v.SeasonID,
		Name:     v.Name,
		Stadium:  v.Stadium,
		Coach:    v.Coach,
		LogoURL:  v.LogoURL,
	}
}
