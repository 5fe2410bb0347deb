package ports

import (
	"context"
	"point-set-service/internal/domain"
)

// Optional look-aside cache in front of a PointSetRepository.
type PointSetCache interface {
	// Return the cached set; found is false on a miss.
	Get(ctx context.Context, setID int) (set *domain.PointSet, found bool, err error)
	// Store the set unless an entry for its id already exists.
	Put(ctx context.Context, set *domain.PointSet) error
	// Drop the cached copy and keep later Puts for the id from restoring it.
	Invalidate(ctx context.Context, setID int) error
}
