package httpapi

import (
	"net/http"

	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
)

func (h *Handler) ListRegulationsBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRegulationsBySeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	regulations, err := h.regulationService.ListBySeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list regulations failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]regulationDTO, 0, len(regulations))
	for _, item := range regulations {
		items = append(items, regulationToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRegulation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRegulation")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	kind := r.PathValue("kind")
	item, err := h.regulationService.GetByKind(ctx, seasonID, kind)
	if err != nil {
		h.logger.WarnContext(ctx, "get regulation failed", "season_id", seasonID, "kind", kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, regulationToDTO(item))
}

func (h *Handler) CreateRegulation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRegulation")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	var req regulationRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.regulationService.Create(ctx, req.toDomain(seasonID, req.Kind))
	if err != nil {
		h.logger.WarnContext(ctx, "create regulation failed", "season_id", seasonID, "kind", req.Kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, regulationToDTO(item))
}

func (h *Handler) UpdateRegulation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRegulation")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	kind := r.PathValue("kind")
	var req regulationRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.regulationService.Update(ctx, req.toDomain(seasonID, kind))
	if err != nil {
		h.logger.WarnContext(ctx, "update regulation failed", "season_id", seasonID, "kind", kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, regulationToDTO(item))
}

func (h *Handler) DeleteRegulation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRegulation")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	kind := r.PathValue("kind")
	if err := h.regulationService.Delete(ctx, seasonID, kind); err != nil {
		h.logger.WarnContext(ctx, "delete regulation failed", "season_id", seasonID, "kind", kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"kind": kind})
}

type regulationRequest struct {
	Kind         string           `json:"kind" validate:"required"`
	AgeRules     *ageRulesDTO     `json:"ageRules"`
	MatchRules   *matchRulesDTO   `json:"matchRules"`
	GoalRules    *goalRulesDTO    `json:"goalRules"`
	RankingRules *rankingRulesDTO `json:"rankingRules"`
}

func (req regulationRequest) toDomain(seasonID, kind string) regulation.Regulation {
	item := regulation.Regulation{
		SeasonID: seasonID,
		Kind:     kind,
	}
	if req.AgeRules != nil {
		item.Age = &regulation.AgeRules{
			MinAge:            req.AgeRules.MinAge,
			MaxAge:            req.AgeRules.MaxAge,
			MaxPlayers:        req.AgeRules.MaxPlayers,
			MaxForeignPlayers: req.AgeRules.MaxForeignPlayers,
		}
	}
	if req.MatchRules != nil {
		item.Match = &regulation.MatchRules{
			Rounds:        req.MatchRules.Rounds,
			MatchesPerDay: req.MatchRules.MatchesPerDay,
		}
	}
	if req.GoalRules != nil {
		item.Goal = &regulation.GoalRules{
			GoalTypes: append([]string(nil), req.GoalRules.GoalTypes...),
			MaxMinute: req.GoalRules.MaxMinute,
		}
	}
	if req.RankingRules != nil {
		item.Ranking = &regulation.RankingRules{
			WinPoints:       req.RankingRules.WinPoints,
			DrawPoints:      req.RankingRules.DrawPoints,
			LosePoints:      req.RankingRules.LosePoints,
			RankingCriteria: append([]string(nil), req.RankingRules.RankingCriteria...),
		}
	}
	return item
}

type regulationDTO struct {
	ID           string           `json:"id"`
	SeasonID     string           `json:"seasonId"`
	Kind         string           `json:"kind"`
	AgeRules     *ageRulesDTO     `json:"ageRules,omitempty"`
	MatchRules   *matchRulesDTO   `json:"matchRules,omitempty"`
	GoalRules    *goalRulesDTO    `json:"goalRules,omitempty"`
	RankingRules *rankingRulesDTO `json:"rankingRules,omitempty"`
}

type ageRulesDTO struct {
	MinAge            int `json:"minAge"`
	MaxAge            int `json:"maxAge"`
	MaxPlayers        int `json:"maxPlayers"`
	MaxForeignPlayers int `json:"maxForeignPlayers"`
}

type matchRulesDTO struct {
	Rounds        int `json:"rounds"`
	MatchesPerDay int `json:"matchesPerDay"`
}

type goalRulesDTO struct {
	GoalTypes []string `json:"goalTypes"`
	MaxMinute int      `json:"maxMinute"`
}

type rankingRulesDTO struct {
	WinPoints       int      `json:"winPoints"`
	DrawPoints      int      `json:"drawPoints"`
	LosePoints      int      `json:"losePoints"`
	RankingCriteria []string `json:"rankingCriteria"`
}

func regulationToDTO(v regulation.Regulation) regulationDTO {
	dto := regulationDTO{
		ID:       v.ID,
		SeasonID: v.SeasonID,
		Kind:     v.Kind,
	}
	if v.Age != nil {
		dto.AgeRules = &ageRulesDTO{
			MinAge:            v.Age.MinAge,
			MaxAge:            v.Age.MaxAge,
			MaxPlayers:        v.Age.MaxPlayers,
			MaxForeignPlayers: v.Age.MaxForeignPlayers,
		}
	}
	if v.Match != nil {
		dto.MatchRules = &matchRulesDTO{
			Rounds:        v.Match.Rounds,
			MatchesPerDay: v.Match.MatchesPerDay,
		}
	}
	if v.Goal != nil {
		dto.GoalRules = &goalRulesDTO{
			GoalTypes: append([]string(nil), v.Goal.GoalTypes...),
			MaxMinute: v.Goal.MaxMinute,
		}
	}
	if v.Ranking != nil {
		dto.RankingRules = &rankingRulesDTO{
			WinPoints:       v.Ranking.WinPoints,
			DrawPoints:      v.Ranking.DrawPoints,
			LosePoints:      v.Ranking.LosePoints,
			RankingCriteria: append([]string(nil), v.Ranking.RankingCriteria...),
		}
	}
	return dto
}
