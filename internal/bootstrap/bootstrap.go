package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"point-set-service/internal/adapters/cache"
	"point-set-service/internal/adapters/repositories"
	"point-set-service/internal/config"
	"point-set-service/internal/platform/db"
	"point-set-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Store bundles the configured repository with the handles that must be closed.
type Store struct {
	Repo ports.PointSetRepository
	DB   *sql.DB
}

func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// OpenStore opens the repository selected by cfg.DBDriver and ensures its schema.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)

	switch cfg.DBDriver {
	case config.DriverMemory:
		return &Store{Repo: repositories.NewMemoryPointSetRepository()}, nil
	case config.DriverSQLite:
		dialect = repositories.SQLite
		conn, err = db.OpenSQLite(cfg.DBPath)
	case config.DriverPostgres:
		dialect = repositories.Postgres
		conn, err = db.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("open store: unsupported driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &Store{
		Repo: repositories.NewSQLPointSetRepository(conn, dialect),
		DB:   conn,
	}, nil
}

// OpenCache returns a Redis cache when REDIS_ADDR is set, otherwise a no-op cache.
// The returned close func is always safe to call.
func OpenCache(ctx context.Context, cfg *config.Config) (ports.PointSetCache, func() error, error) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set; point set cache disabled")
		return cache.NoopPointSetCache{}, func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("open cache: ping redis %q: %w", cfg.RedisAddr, err)
	}

	return cache.NewRedisPointSetCache(client, cfg.CacheTTL), client.Close, nil
}
