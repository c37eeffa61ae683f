package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Team, error)
	GetByID(ctx context.Context, seasonID, teamID string) (Team, bool, error)
	GetByName(ctx context.Context, seasonID, name string) (Team, bool, error)
	Create(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
	Delete(ctx context.Context, seasonID, teamID string) error
}
