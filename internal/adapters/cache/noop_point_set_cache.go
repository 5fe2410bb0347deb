package cache

import (
	"context"
	"point-set-service/internal/domain"
)

// NoopPointSetCache always misses. Used when no Redis address is configured.
type NoopPointSetCache struct{}

func (NoopPointSetCache) Get(context.Context, int) (*domain.PointSet, bool, error) {
	return nil, false, nil
}

func (NoopPointSetCache) Put(context.Context, *domain.PointSet) error { return nil }

func (NoopPointSetCache) Invalidate(context.Context, int) error { return nil }
