package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rizkyfalih/league-manager/internal/domain/ranking"
	qb "github.com/rizkyfalih/league-manager/internal/platform/querybuilder"
)

const rankingUpsertSuffix = `ON CONFLICT (season_public_id, team_public_id, ranking_date) WHERE deleted_at IS NULL
DO UPDATE SET
    team_result_public_id = EXCLUDED.team_result_public_id,
    rank = EXCLUDED.rank,
    updated_at = NOW()`

type RankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

func (r *RankingRepository) ListByDate(ctx context.Context, seasonID string, date time.Time) ([]ranking.Ranking, error) {
	query, args, err := qb.Select("*").From("rankings").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("ranking_date", date),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rankings query: %w", err)
	}

	var rows []rankingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rankings: %w", err)
	}

	out := make([]ranking.Ranking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RankingRepository) LatestDate(ctx context.Context, seasonID string) (time.Time, bool, error) {
	query, args, err := qb.Select("ranking_date").From("rankings").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("ranking_date DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build latest ranking date query: %w", err)
	}

	var latest time.Time
	if err := r.db.GetContext(ctx, &latest, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("latest ranking date: %w", err)
	}

	return latest, true, nil
}

func (r *RankingRepository) ExistsForDate(ctx context.Context, seasonID string, date time.Time) (bool, error) {
	query, args, err := qb.Select("COUNT(*)").From("rankings").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("ranking_date", date),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build ranking exists query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("ranking exists: %w", err)
	}
	return count > 0, nil
}

func (r *RankingRepository) Upsert(ctx context.Context, item ranking.Ranking) error {
	insertModel := rankingInsertModel{
		PublicID:           item.ID,
		SeasonPublicID:     item.SeasonID,
		TeamPublicID:       item.TeamID,
		TeamResultPublicID: item.TeamResultID,
		Rank:               item.Rank,
		RankingDate:        item.Date,
	}
	query, args, err := qb.InsertModel("rankings", insertModel, rankingUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert ranking query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert ranking: %w", err)
	}

	return nil
}

func (r *RankingRepository) DeleteBySeason(ctx context.Context, seasonID string) error {
	query, args, err := qb.Update("rankings").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete rankings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete rankings: %w", err)
	}

	return nil
}

const playerRankingUpsertSuffix = `ON CONFLICT (season_public_id, player_public_id, ranking_date) WHERE deleted_at IS NULL
DO UPDATE SET
    player_result_public_id = EXCLUDED.player_result_public_id,
    rank = EXCLUDED.rank,
    updated_at = NOW()`

type PlayerRankingRepository struct {
	db *sqlx.DB
}

func NewPlayerRankingRepository(db *sqlx.DB) *PlayerRankingRepository {
	return &PlayerRankingRepository{db: db}
}

func (r *PlayerRankingRepository) ListByDate(ctx context.Context, seasonID string, date time.Time) ([]ranking.PlayerRanking, error) {
	query, args, err := qb.Select("*").From("player_rankings").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("ranking_date", date),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player rankings query: %w", err)
	}

	var rows []playerRankingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player rankings: %w", err)
	}

	out := make([]ranking.PlayerRanking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRankingRepository) LatestDate(ctx context.Context, seasonID string) (time.Time, bool, error) {
	query, args, err := qb.Select("ranking_date").From("player_rankings").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("ranking_date DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build latest player ranking date query: %w", err)
	}

	var latest time.Time
	if err := r.db.GetContext(ctx, &latest, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("latest player ranking date: %w", err)
	}

	return latest, true, nil
}

func (r *PlayerRankingRepository) ExistsForDate(ctx context.Context, seasonID string, date time.Time) (bool, error) {
	query, args, err := qb.Select("COUNT(*)").From("player_rankings").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("ranking_date", date),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build player ranking exists query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("player ranking exists: %w", err)
	}
	return count > 0, nil
}

func (r *PlayerRankingRepository) Upsert(ctx context.Context, item ranking.PlayerRanking) error {
	insertModel := playerRankingInsertModel{
		PublicID:             item.ID,
		SeasonPublicID:       item.SeasonID,
		PlayerPublicID:       item.PlayerID,
		PlayerResultPublicID: item.PlayerResultID,
		Rank:                 item.Rank,
		RankingDate:          item.Date,
	}
	query, args, err := qb.InsertModel("player_rankings", insertModel, playerRankingUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert player ranking query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player ranking: %w", err)
	}

	return nil
}

func (r *PlayerRankingRepository) DeleteBySeason(ctx context.Context, seasonID string) error {
	query, args, err := qb.Update("player_rankings").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player rankings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player rankings: %w", err)
	}

	return nil
}
