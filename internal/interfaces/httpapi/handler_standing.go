package httpapi

import (
	"net/http"
	"time"

	"github.com/rizkyfalih/league-manager/internal/usecase"
)

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	date, err := parseDateQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.standingService.ListStandings(ctx, seasonID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingRowToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayerRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerRankings")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	date, err := parseDateQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.standingService.ListPlayerRankings(ctx, seasonID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list player rankings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerRankingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, playerRankingRowToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type standingRowDTO struct {
	Rank           int    `json:"rank"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Date           string `json:"date"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	AwayGoals      int    `json:"awayGoals"`
}

type playerRankingRowDTO struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	TeamID     string `json:"teamId"`
	Date       string `json:"date"`
	Played     int    `json:"played"`
	Goals      int    `json:"goals"`
}

func standingRowToDTO(row usecase.StandingRow) standingRowDTO {
	return standingRowDTO{
		Rank:           row.Rank,
		TeamID:         row.Team.ID,
		TeamName:       row.Team.Name,
		Date:           row.Result.Date.UTC().Format(time.DateOnly),
		Played:         row.Result.Played,
		Won:            row.Result.Won,
		Drawn:          row.Result.Drawn,
		Lost:           row.Result.Lost,
		GoalsFor:       row.Result.GoalsFor,
		GoalsAgainst:   row.Result.GoalsAgainst,
		GoalDifference: row.Result.GoalDifference,
		Points:         row.Result.Points,
		AwayGoals:      row.Result.AwayGoals,
	}
}

func playerRankingRowToDTO(row usecase.PlayerRankingRow) playerRankingRowDTO {
	return playerRankingRowDTO{
		Rank:       row.Rank,
		PlayerID:   row.Player.ID,
		PlayerName: row.Player.Name,
		TeamID:     row.Player.TeamID,
		Date:       row.Result.Date.UTC().Format(time.DateOnly),
		Played:     row.Result.Played,
		Goals:      row.Result.Goals,
	}
}
