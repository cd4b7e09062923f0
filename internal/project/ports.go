package project

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=project

import (
	"context"
)

// Repository defines the contract for project data storage.
type Repository interface {
	List(ctx context.Context, f ListFilter) ([]Project, error)
	GetByID(ctx context.Context, id int) (Project, error)
}
