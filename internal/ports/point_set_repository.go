package ports

import (
	"context"
	"point-set-service/internal/domain"
)

// Port: a boundary for storing and retrieving PointSet entities.
type PointSetRepository interface {
	// Store the set with all its points and return the assigned id.
	CreatePointSet(ctx context.Context, set *domain.PointSet) (int, error)
	// Return the set with its points in stored order.
	GetPointSet(ctx context.Context, setID int) (*domain.PointSet, error)
	// Return listing rows for every stored set, ordered by id.
	ListPointSets(ctx context.Context) ([]domain.PointSetInfo, error)
	DeletePointSet(ctx context.Context, setID int) error
}
