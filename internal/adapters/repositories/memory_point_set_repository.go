package repositories

import (
	"context"
	"fmt"
	"point-set-service/internal/domain"
	"sort"
	"sync"
	"time"
)

// MemoryPointSetRepository keeps point sets in process memory.
// Stored and returned sets are cloned so callers never share slices with it.
type MemoryPointSetRepository struct {
	mu     sync.RWMutex
	nextID int
	sets   map[int]*domain.PointSet
	names  map[string]int
}

func NewMemoryPointSetRepository() *MemoryPointSetRepository {
	return &MemoryPointSetRepository{
		nextID: 1,
		sets:   make(map[int]*domain.PointSet),
		names:  make(map[string]int),
	}
}

func (m *MemoryPointSetRepository) CreatePointSet(ctx context.Context, set *domain.PointSet) (int, error) {
	if err := set.CheckShape(); err != nil {
		return 0, fmt.Errorf("create point set: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.names[set.Name]; ok {
		return 0, fmt.Errorf("create point set %q: %w", set.Name, domain.ErrDuplicateName)
	}

	stored := set.Clone()
	stored.SetID = m.nextID
	stored.CreatedAt = time.Now().UTC()
	if stored.Frame == domain.FrameCartesian && stored.Cartesian == nil {
		stored.Cartesian = []domain.CartesianPoint{}
	}
	if stored.Frame == domain.FrameGeographic && stored.Geographic == nil {
		stored.Geographic = []domain.GeographicPoint{}
	}
	m.nextID++

	m.sets[stored.SetID] = stored
	m.names[stored.Name] = stored.SetID

	set.SetID = stored.SetID
	set.CreatedAt = stored.CreatedAt
	return stored.SetID, nil
}

func (m *MemoryPointSetRepository) GetPointSet(ctx context.Context, setID int) (*domain.PointSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sets[setID]
	if !ok {
		return nil, fmt.Errorf("get point set %d: %w", setID, domain.ErrPointSetNotFound)
	}
	return s.Clone(), nil
}

func (m *MemoryPointSetRepository) ListPointSets(ctx context.Context) ([]domain.PointSetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.PointSetInfo, 0, len(m.sets))
	for _, s := range m.sets {
		out = append(out, s.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SetID < out[j].SetID })
	return out, nil
}

func (m *MemoryPointSetRepository) DeletePointSet(ctx context.Context, setID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sets[setID]
	if !ok {
		return fmt.Errorf("delete point set %d: %w", setID, domain.ErrPointSetNotFound)
	}
	delete(m.names, s.Name)
	delete(m.sets, setID)
	return nil
}
