package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"point-set-service/internal/adapters/cache"
	"point-set-service/internal/domain"
	"point-set-service/internal/platform/obs"
	"point-set-service/internal/ports"
	"strings"
)

// PointSetService coordinates the repository with an optional cache.
// Cache failures never fail a request; the repository is the source of truth.
type PointSetService struct {
	Repo  ports.PointSetRepository
	Cache ports.PointSetCache
}

func NewPointSetService(repo ports.PointSetRepository, c ports.PointSetCache) *PointSetService {
	if c == nil {
		c = cache.NoopPointSetCache{}
	}
	return &PointSetService{Repo: repo, Cache: c}
}

// Create stores a new set and returns its id.
func (s *PointSetService) Create(ctx context.Context, set *domain.PointSet) (_ int, err error) {
	defer obs.Time(ctx, "service.CreatePointSet")(&err)

	if set == nil {
		return 0, fmt.Errorf("create point set: %w: set is nil", domain.ErrInvalidPointSet)
	}
	set.Name = strings.TrimSpace(set.Name)

	if err := set.CheckShape(); err != nil {
		return 0, fmt.Errorf("create point set: %w", err)
	}

	id, err := s.Repo.CreatePointSet(ctx, set)
	if err != nil {
		return 0, fmt.Errorf("create point set: %w", err)
	}

	return id, nil
}

// Get returns a set, preferring the cache and filling it on a miss.
func (s *PointSetService) Get(ctx context.Context, setID int) (_ *domain.PointSet, err error) {
	defer obs.Time(ctx, "service.GetPointSet")(&err)

	if setID <= 0 {
		return nil, fmt.Errorf("get point set %d: %w", setID, domain.ErrPointSetNotFound)
	}

	cached, found, cerr := s.Cache.Get(ctx, setID)
	if cerr != nil {
		log.Printf("req_id=%s point set cache get failed set_id=%d err=%v", obs.RequestID(ctx), setID, cerr)
	}
	if found {
		return cached, nil
	}

	set, err := s.Repo.GetPointSet(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("get point set: %w", err)
	}

	if perr := s.Cache.Put(ctx, set.Clone()); perr != nil {
		log.Printf("req_id=%s point set cache put failed set_id=%d err=%v", obs.RequestID(ctx), setID, perr)
	}

	return set, nil
}

func (s *PointSetService) List(ctx context.Context) (_ []domain.PointSetInfo, err error) {
	defer obs.Time(ctx, "service.ListPointSets")(&err)

	infos, err := s.Repo.ListPointSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list point sets: %w", err)
	}
	return infos, nil
}

// Delete removes a set from storage, then drops any cached copy.
func (s *PointSetService) Delete(ctx context.Context, setID int) (err error) {
	defer obs.Time(ctx, "service.DeletePointSet")(&err)

	if setID <= 0 {
		return fmt.Errorf("delete point set %d: %w", setID, domain.ErrPointSetNotFound)
	}

	if err := s.Repo.DeletePointSet(ctx, setID); err != nil {
		return fmt.Errorf("delete point set: %w", err)
	}

	if ierr := s.Cache.Invalidate(ctx, setID); ierr != nil {
		log.Printf("req_id=%s point set cache invalidate failed set_id=%d err=%v", obs.RequestID(ctx), setID, ierr)
	}

	return nil
}

// IsClientError reports whether err stems from caller input rather than storage.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidPointSet) ||
		errors.Is(err, domain.ErrDuplicateName) ||
		errors.Is(err, domain.ErrPointSetNotFound)
}
