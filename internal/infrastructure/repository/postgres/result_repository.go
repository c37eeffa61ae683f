package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rizkyfalih/league-manager/internal/domain/result"
	qb "github.com/rizkyfalih/league-manager/internal/platform/querybuilder"
)

const teamResultUpsertSuffix = `ON CONFLICT (team_public_id, season_public_id, result_date) WHERE deleted_at IS NULL
DO UPDATE SET
    played = EXCLUDED.played,
    won = EXCLUDED.won,
    drawn = EXCLUDED.drawn,
    lost = EXCLUDED.lost,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    goal_difference = EXCLUDED.goal_difference,
    points = EXCLUDED.points,
    away_goals = EXCLUDED.away_goals,
    head_to_head = EXCLUDED.head_to_head,
    updated_at = NOW()
RETURNING public_id`

type TeamResultRepository struct {
	db *sqlx.DB
}

func NewTeamResultRepository(db *sqlx.DB) *TeamResultRepository {
	return &TeamResultRepository{db: db}
}

func (r *TeamResultRepository) FindExact(ctx context.Context, teamID, seasonID string, date time.Time) (result.TeamResult, bool, error) {
	query, args, err := qb.Select("*").From("team_results").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Eq("season_public_id", seasonID),
			qb.Eq("result_date", date),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return result.TeamResult{}, false, fmt.Errorf("build find team result query: %w", err)
	}

	var row teamResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.TeamResult{}, false, nil
		}
		return result.TeamResult{}, false, fmt.Errorf("find team result: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return result.TeamResult{}, false, fmt.Errorf("decode team result %s: %w", row.PublicID, err)
	}
	return item, true, nil
}

func (r *TeamResultRepository) FindLatestBefore(ctx context.Context, teamID, seasonID string, date time.Time) (result.TeamResult, bool, error) {
	query, args, err := qb.Select("*").From("team_results").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Eq("season_public_id", seasonID),
			qb.Lt("result_date", date),
			qb.IsNull("deleted_at"),
		).
		OrderBy("result_date DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return result.TeamResult{}, false, fmt.Errorf("build find baseline team result query: %w", err)
	}

	var row teamResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.TeamResult{}, false, nil
		}
		return result.TeamResult{}, false, fmt.Errorf("find baseline team result: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return result.TeamResult{}, false, fmt.Errorf("decode team result %s: %w", row.PublicID, err)
	}
	return item, true, nil
}

func (r *TeamResultRepository) ListLatestPerTeam(ctx context.Context, seasonID string, date time.Time) ([]result.TeamResult, error) {
	query, args, err := qb.Select("DISTINCT ON (team_public_id) *").From("team_results").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Lte("result_date", date),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_public_id", "result_date DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list latest team results query: %w", err)
	}

	var rows []teamResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list latest team results: %w", err)
	}

	out := make([]result.TeamResult, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode team result %s: %w", row.PublicID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TeamResultRepository) ListByDate(ctx context.Context, seasonID string, date time.Time) ([]result.TeamResult, error) {
	query, args, err := qb.Select("*").From("team_results").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("result_date", date),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team results by date query: %w", err)
	}

	var rows []teamResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team results by date: %w", err)
	}

	out := make([]result.TeamResult, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode team result %s: %w", row.PublicID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TeamResultRepository) Upsert(ctx context.Context, item result.TeamResult) (result.TeamResult, error) {
	headToHead, err := encodeJSON(item.HeadToHead)
	if err != nil {
		return result.TeamResult{}, fmt.Errorf("encode head to head: %w", err)
	}

	insertModel := teamResultInsertModel{
		PublicID:       item.ID,
		TeamPublicID:   item.TeamID,
		SeasonPublicID: item.SeasonID,
		ResultDate:     item.Date,
		Played:         item.Played,
		Won:            item.Won,
		Drawn:          item.Drawn,
		Lost:           item.Lost,
		GoalsFor:       item.GoalsFor,
		GoalsAgainst:   item.GoalsAgainst,
		GoalDifference: item.GoalDifference,
		Points:         item.Points,
		AwayGoals:      item.AwayGoals,
		HeadToHead:     headToHead,
	}
	query, args, err := qb.InsertModel("team_results", insertModel, teamResultUpsertSuffix)
	if err != nil {
		return result.TeamResult{}, fmt.Errorf("build upsert team result query: %w", err)
	}

	var publicID string
	if err := r.db.GetContext(ctx, &publicID, query, args...); err != nil {
		return result.TeamResult{}, fmt.Errorf("upsert team result: %w", err)
	}

	item.ID = publicID
	return item, nil
}

func (r *TeamResultRepository) DeleteBySeason(ctx context.Context, seasonID string) error {
	query, args, err := qb.Update("team_results").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team results query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team results: %w", err)
	}

	return nil
}

const playerResultUpsertSuffix = `ON CONFLICT (player_public_id, season_public_id, result_date) WHERE deleted_at IS NULL
DO UPDATE SET
    played = EXCLUDED.played,
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    updated_at = NOW()
RETURNING public_id`

type PlayerResultRepository struct {
	db *sqlx.DB
}

func NewPlayerResultRepository(db *sqlx.DB) *PlayerResultRepository {
	return &PlayerResultRepository{db: db}
}

func (r *PlayerResultRepository) FindExact(ctx context.Context, playerID, seasonID string, date time.Time) (result.PlayerResult, bool, error) {
	query, args, err := qb.Select("*").From("player_results").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("season_public_id", seasonID),
			qb.Eq("result_date", date),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return result.PlayerResult{}, false, fmt.Errorf("build find player result query: %w", err)
	}

	var row playerResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.PlayerResult{}, false, nil
		}
		return result.PlayerResult{}, false, fmt.Errorf("find player result: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerResultRepository) FindLatestBefore(ctx context.Context, playerID, seasonID string, date time.Time) (result.PlayerResult, bool, error) {
	query, args, err := qb.Select("*").From("player_results").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("season_public_id", seasonID),
			qb.Lt("result_date", date),
			qb.IsNull("deleted_at"),
		).
		OrderBy("result_date DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return result.PlayerResult{}, false, fmt.Errorf("build find baseline player result query: %w", err)
	}

	var row playerResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.PlayerResult{}, false, nil
		}
		return result.PlayerResult{}, false, fmt.Errorf("find baseline player result: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerResultRepository) ListLatestPerPlayer(ctx context.Context, seasonID string, date time.Time) ([]result.PlayerResult, error) {
	query, args, err := qb.Select("DISTINCT ON (player_public_id) *").From("player_results").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Lte("result_date", date),
			qb.IsNull("deleted_at"),
		).
		OrderBy("player_public_id", "result_date DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list latest player results query: %w", err)
	}

	var rows []playerResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list latest player results: %w", err)
	}

	out := make([]result.PlayerResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerResultRepository) ListByDate(ctx context.Context, seasonID string, date time.Time) ([]result.PlayerResult, error) {
	query, args, err := qb.Select("*").From("player_results").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("result_date", date),
			qb.IsNull("deleted_at"),
		).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player results by date query: %w", err)
	}

	var rows []playerResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player results by date: %w", err)
	}

	out := make([]result.PlayerResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerResultRepository) Upsert(ctx context.Context, item result.PlayerResult) (result.PlayerResult, error) {
	insertModel := playerResultInsertModel{
		PublicID:       item.ID,
		PlayerPublicID: item.PlayerID,
		SeasonPublicID: item.SeasonID,
		ResultDate:     item.Date,
		Played:         item.Played,
		Goals:          item.Goals,
		Assists:        item.Assists,
		YellowCards:    item.YellowCards,
		RedCards:       item.RedCards,
	}
	query, args, err := qb.InsertModel("player_results", insertModel, playerResultUpsertSuffix)
	if err != nil {
		return result.PlayerResult{}, fmt.Errorf("build upsert player result query: %w", err)
	}

	var publicID string
	if err := r.db.GetContext(ctx, &publicID, query, args...); err != nil {
		return result.PlayerResult{}, fmt.Errorf("upsert player result: %w", err)
	}

	item.ID = publicID
	return item, nil
}

func (r *PlayerResultRepository) DeleteBySeason(ctx context.Context, seasonID string) error {
	query, args, err := qb.Update("player_results").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player results query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player results: %w", err)
	}

	return nil
}
