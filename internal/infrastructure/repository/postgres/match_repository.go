package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rizkyfalih/league-manager/internal/domain/match"
	"github.com/rizkyfalih/league-manager/internal/domain/result"
	qb "github.com/rizkyfalih/league-manager/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode match %s: %w", row.PublicID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("decode match %s: %w", row.PublicID, err)
	}
	return item, true, nil
}

func (r *MatchRepository) CreateBatch(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := matchInsertModel{
			PublicID:         item.ID,
			SeasonPublicID:   item.SeasonID,
			HomeTeamPublicID: item.HomeTeamID,
			AwayTeamPublicID: item.AwayTeamID,
			MatchDate:        item.Date,
			Stadium:          item.Stadium,
			Status:           item.Status,
		}
		query, args, err := qb.InsertModel("matches", insertModel, "")
		if err != nil {
			return fmt.Errorf("build create match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("create match %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	goalDetails, err := encodeJSON(item.Goals)
	if err != nil {
		return fmt.Errorf("encode goal details: %w", err)
	}

	query, args, err := qb.Update("matches").
		Set("match_date", item.Date).
		Set("stadium", item.Stadium).
		Set("score", item.Score).
		Set("status", item.Status).
		Set("goal_details", goalDetails).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update match: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update match: not found")
	}

	return nil
}

func (r *MatchRepository) CountOnDate(ctx context.Context, seasonID string, date time.Time) (int, error) {
	day := result.NormalizeDate(date)
	query, args, err := qb.Select("COUNT(*)").From("matches").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("match_date", day),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	query, args, err := qb.Update("matches").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	return nil
}
