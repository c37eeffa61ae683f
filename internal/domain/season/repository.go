package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	GetByName(ctx context.Context, name string) (Season, bool, error)
	Create(ctx context.Context, item Season) error
	Update(ctx context.Context, item Season) error
	Delete(ctx context.Context, seasonID string) error
}
