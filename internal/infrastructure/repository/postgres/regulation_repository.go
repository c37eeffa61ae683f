package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	qb "github.com/rizkyfalih/league-manager/internal/platform/querybuilder"
)

type RegulationRepository struct {
	db *sqlx.DB
}

func NewRegulationRepository(db *sqlx.DB) *RegulationRepository {
	return &RegulationRepository{db: db}
}

func (r *RegulationRepository) ListBySeason(ctx context.Context, seasonID string) ([]regulation.Regulation, error) {
	query, args, err := qb.Select("*").From("regulations").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kind").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select regulations query: %w", err)
	}

	var rows []regulationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select regulations: %w", err)
	}

	out := make([]regulation.Regulation, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode regulation %s: %w", row.PublicID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *RegulationRepository) GetByKind(ctx context.Context, seasonID, kind string) (regulation.Regulation, bool, error) {
	query, args, err := qb.Select("*").From("regulations").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("kind", kind),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return regulation.Regulation{}, false, fmt.Errorf("build get regulation query: %w", err)
	}

	var row regulationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return regulation.Regulation{}, false, nil
		}
		return regulation.Regulation{}, false, fmt.Errorf("get regulation: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return regulation.Regulation{}, false, fmt.Errorf("decode regulation %s: %w", row.PublicID, err)
	}
	return item, true, nil
}

func (r *RegulationRepository) Create(ctx context.Context, item regulation.Regulation) error {
	rules, err := encodeRegulationRules(item)
	if err != nil {
		return fmt.Errorf("encode regulation rules: %w", err)
	}

	insertModel := regulationInsertModel{
		PublicID:       item.ID,
		SeasonPublicID: item.SeasonID,
		Kind:           item.Kind,
		Rules:          rules,
	}
	query, args, err := qb.InsertModel("regulations", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create regulation query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create regulation: %w", err)
	}

	return nil
}

func (r *RegulationRepository) Update(ctx context.Context, item regulation.Regulation) error {
	rules, err := encodeRegulationRules(item)
	if err != nil {
		return fmt.Errorf("encode regulation rules: %w", err)
	}

	query, args, err := qb.Update("regulations").
		Set("rules", rules).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season_public_id", item.SeasonID),
			qb.Eq("kind", item.Kind),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update regulation query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update regulation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update regulation: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update regulation: not found")
	}

	return nil
}

func (r *RegulationRepository) Delete(ctx context.Context, seasonID, kind string) error {
	query, args, err := qb.Update("regulations").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("kind", kind),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete regulation query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete regulation: %w", err)
	}

	return nil
}
