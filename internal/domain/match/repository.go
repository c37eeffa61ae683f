package match

import (
	"context"
	"time"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	CreateBatch(ctx context.Context, items []Match) error
	Update(ctx context.Context, item Match) error
	CountOnDate(ctx context.Context, seasonID string, date time.Time) (int, error)
	Delete(ctx context.Context, matchID string) error
}
