package result

import (
	"context"
	"time"
)

// TeamResultRepository exposes the snapshot access shapes the standings
// recomputation needs: exact-date lookup, latest-before lookup, upsert.
type TeamResultRepository interface {
	FindExact(ctx context.Context, teamID, seasonID string, date time.Time) (TeamResult, bool, error)
	FindLatestBefore(ctx context.Context, teamID, seasonID string, date time.Time) (TeamResult, bool, error)
	// ListLatestPerTeam returns, for every team of the season with any
	// history, its most recent snapshot dated at or before date.
	ListLatestPerTeam(ctx context.Context, seasonID string, date time.Time) ([]TeamResult, error)
	ListByDate(ctx context.Context, seasonID string, date time.Time) ([]TeamResult, error)
	Upsert(ctx context.Context, item TeamResult) (TeamResult, error)
	DeleteBySeason(ctx context.Context, seasonID string) error
}

// PlayerResultRepository is the player-side analogue.
type PlayerResultRepository interface {
	FindExact(ctx context.Context, playerID, seasonID string, date time.Time) (PlayerResult, bool, error)
	FindLatestBefore(ctx context.Context, playerID, seasonID string, date time.Time) (PlayerResult, bool, error)
	ListLatestPerPlayer(ctx context.Context, seasonID string, date time.Time) ([]PlayerResult, error)
	ListByDate(ctx context.Context, seasonID string, date time.Time) ([]PlayerResult, error)
	Upsert(ctx context.Context, item PlayerResult) (PlayerResult, error)
	DeleteBySeason(ctx context.Context, seasonID string) error
}
