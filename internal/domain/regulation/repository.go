package regulation

import "context"

// Repository describes regulation persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Regulation, error)
	GetByKind(ctx context.Context, seasonID, kind string) (Regulation, bool, error)
	Create(ctx context.Context, item Regulation) error
	Update(ctx context.Context, item Regulation) error
	Delete(ctx context.Context, seasonID, kind string) error
}
