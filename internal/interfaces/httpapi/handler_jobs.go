package httpapi

import (
	"net/http"
	"strings"

	"github.com/rizkyfalih/league-manager/internal/usecase"
)

func (h *Handler) RunRebuildRankingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRebuildRankingsJob")
	defer span.End()

	var req rebuildRankingsRequest
	if r.ContentLength > 0 {
		if err := decodeJSONBody(r.Body, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	if seasonID := strings.TrimSpace(req.SeasonID); seasonID != "" {
		result, err := h.rebuildService.RebuildSeason(ctx, seasonID)
		if err != nil {
			h.logger.ErrorContext(ctx, "rebuild season job failed", "season_id", seasonID, "error", err)
			writeError(ctx, w, err)
			return
		}

		writeSuccess(ctx, w, http.StatusOK, rebuildAllDTO{
			Seasons:      []rebuildSeasonDTO{rebuildSeasonToDTO(result)},
			SuccessCount: 1,
		})
		return
	}

	result, err := h.rebuildService.RebuildAll(ctx, req.Workers)
	if err != nil {
		h.logger.ErrorContext(ctx, "rebuild all job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rebuildAllToDTO(result))
}

type rebuildRankingsRequest struct {
	SeasonID string `json:"seasonId"`
	Workers  int    `json:"workers"`
}

type rebuildSeasonDTO struct {
	SeasonID       string `json:"seasonId"`
	MatchesApplied int    `json:"matchesApplied"`
	DurationMs     int64  `json:"durationMs"`
}

type rebuildAllDTO struct {
	Seasons      []rebuildSeasonDTO `json:"seasons"`
	SuccessCount int                `json:"successCount"`
	FailedCount  int                `json:"failedCount"`
}

func rebuildSeasonToDTO(v usecase.RebuildSeasonResult) rebuildSeasonDTO {
	return rebuildSeasonDTO{
		SeasonID:       v.SeasonID,
		MatchesApplied: v.MatchesApplied,
		DurationMs:     v.DurationMs,
	}
}

func rebuildAllToDTO(v usecase.RebuildAllResult) rebuildAllDTO {
	seasons := make([]rebuildSeasonDTO, 0, len(v.Seasons))
	for _, item := range v.Seasons {
		seasons = append(seasons, rebuildSeasonToDTO(item))
	}

	return rebuildAllDTO{
		Seasons:      seasons,
		SuccessCount: v.SuccessCount,
		FailedCount:  v.FailedCount,
	}
}
