package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"point-set-service/internal/domain"
	"point-set-service/internal/platform/obs"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "pointset:"
	// Written by Invalidate; blocks refills of a deleted set until it expires.
	tombstone = "deleted"
)

// Cache envelope; private to this adapter so the domain types stay tag-free.
// Coordinates travel as IEEE-754 bit patterns since JSON has no NaN or Inf.
type cachedPointSet struct {
	SetID      int         `json:"set_id"`
	Name       string      `json:"name"`
	Frame      string      `json:"frame"`
	CreatedAt  time.Time   `json:"created_at"`
	Cartesian  [][3]uint64 `json:"cartesian,omitempty"`
	Geographic [][3]uint64 `json:"geographic,omitempty"`
}

// RedisPointSetCache is a Redis-backed look-aside cache for whole point sets.
type RedisPointSetCache struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

func NewRedisPointSetCache(client redis.UniversalClient, ttl time.Duration) *RedisPointSetCache {
	return &RedisPointSetCache{Client: client, TTL: ttl}
}

func cacheKey(setID int) string {
	return keyPrefix + strconv.Itoa(setID)
}

// Fetch a cached set. A missing key or a tombstone is reported as found=false.
func (c *RedisPointSetCache) Get(ctx context.Context, setID int) (_ *domain.PointSet, _ bool, err error) {
	defer obs.Time(ctx, "pointset.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("point set cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, cacheKey(setID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get point set cache: set_id=%d: %w", setID, err)
	}
	if string(raw) == tombstone {
		return nil, false, nil
	}

	var env cachedPointSet
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, fmt.Errorf("get point set cache: decode set_id=%d: %w", setID, err)
	}

	return env.toDomain(), true, nil
}

// Store a set under its id with the configured TTL.
// An existing entry, including a tombstone, is left untouched.
func (c *RedisPointSetCache) Put(ctx context.Context, set *domain.PointSet) (err error) {
	defer obs.Time(ctx, "pointset.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("point set cache: client is nil")
	}
	if set == nil || set.SetID <= 0 {
		return errors.New("put point set cache: set must have a positive id")
	}

	raw, err := json.Marshal(fromDomain(set))
	if err != nil {
		return fmt.Errorf("put point set cache: encode set_id=%d: %w", set.SetID, err)
	}

	if err := c.Client.SetNX(ctx, cacheKey(set.SetID), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("put point set cache: set_id=%d: %w", set.SetID, err)
	}

	return nil
}

// Invalidate replaces any cached copy with a tombstone for the configured TTL,
// so a read that raced the delete cannot put the old set back.
func (c *RedisPointSetCache) Invalidate(ctx context.Context, setID int) (err error) {
	defer obs.Time(ctx, "pointset.cache.Invalidate")(&err)

	if c.Client == nil {
		return errors.New("point set cache: client is nil")
	}

	if err := c.Client.Set(ctx, cacheKey(setID), tombstone, c.TTL).Err(); err != nil {
		return fmt.Errorf("invalidate point set cache: set_id=%d: %w", setID, err)
	}
	return nil
}

func fromDomain(s *domain.PointSet) cachedPointSet {
	env := cachedPointSet{
		SetID:     s.SetID,
		Name:      s.Name,
		Frame:     string(s.Frame),
		CreatedAt: s.CreatedAt,
	}
	for _, p := range s.Cartesian {
		env.Cartesian = append(env.Cartesian, [3]uint64{math.Float64bits(p.X), math.Float64bits(p.Y), math.Float64bits(p.Z)})
	}
	for _, p := range s.Geographic {
		env.Geographic = append(env.Geographic, [3]uint64{math.Float64bits(p.Lon), math.Float64bits(p.Lat), math.Float64bits(p.Dep)})
	}
	return env
}

func (e cachedPointSet) toDomain() *domain.PointSet {
	s := &domain.PointSet{
		SetID:     e.SetID,
		Name:      e.Name,
		Frame:     domain.Frame(e.Frame),
		CreatedAt: e.CreatedAt,
	}

	switch s.Frame {
	case domain.FrameCartesian:
		s.Cartesian = make([]domain.CartesianPoint, 0, len(e.Cartesian))
		for _, v := range e.Cartesian {
			s.Cartesian = append(s.Cartesian, domain.CartesianPoint{
				X: math.Float64frombits(v[0]),
				Y: math.Float64frombits(v[1]),
				Z: math.Float64frombits(v[2]),
			})
		}
	case domain.FrameGeographic:
		s.Geographic = make([]domain.GeographicPoint, 0, len(e.Geographic))
		for _, v := range e.Geographic {
			s.Geographic = append(s.Geographic, domain.GeographicPoint{
				Lon: math.Float64frombits(v[0]),
				Lat: math.Float64frombits(v[1]),
				Dep: math.Float64frombits(v[2]),
			})
		}
	}
	return s
}
