package ranking

import (
	"context"
	"time"
)

// Repository describes ranking persistence needs from use cases.
type Repository interface {
	ListByDate(ctx context.Context, seasonID string, date time.Time) ([]Ranking, error)
	// LatestDate reports the most recent date with any ranking rows for the
	// season; ok is false when the season has none.
	LatestDate(ctx context.Context, seasonID string) (time.Time, bool, error)
	ExistsForDate(ctx context.Context, seasonID string, date time.Time) (bool, error)
	Upsert(ctx context.Context, item Ranking) error
	DeleteBySeason(ctx context.Context, seasonID string) error
}

// PlayerRepository is the player-side analogue.
type PlayerRepository interface {
	ListByDate(ctx context.Context, seasonID string, date time.Time) ([]PlayerRanking, error)
	LatestDate(ctx context.Context, seasonID string) (time.Time, bool, error)
	ExistsForDate(ctx context.Context, seasonID string, date time.Time) (bool, error)
	Upsert(ctx context.Context, item PlayerRanking) error
	DeleteBySeason(ctx context.Context, seasonID string) error
}
