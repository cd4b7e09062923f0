package property

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=property

import (
	"context"
)

// Repository defines the contract for property data storage.
type Repository interface {
	List(ctx context.Context, f Filters) ([]Property, error)
	GetByID(ctx context.Context, id int) (Property, error)
	Featured(ctx context.Context, limit int) ([]Property, error)
	SearchByLocation(ctx context.Context, q string) ([]Property, error)
	Create(ctx context.Context, in Payload) (Property, error)
	Update(ctx context.Context, id int, in Payload) (Property, error)
	Delete(ctx context.Context, id int) error
}
