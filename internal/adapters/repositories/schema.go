package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

func schemaStatements(d Dialect) []string {
	idType := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if d == Postgres {
		idType = "BIGSERIAL PRIMARY KEY"
	}

	createPointSetsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS point_sets (
		set_id %s,
		name TEXT NOT NULL UNIQUE,
		frame TEXT NOT NULL CHECK (frame IN ('cartesian', 'geographic')),
		created_at BIGINT NOT NULL
	);
	`, idType)

	// Coordinates are stored as IEEE-754 bit patterns so -0, NaN and ±Inf
	// come back unchanged on every backend.
	createCartesianQuery := `
	CREATE TABLE IF NOT EXISTS cartesian_points (
		set_id BIGINT NOT NULL REFERENCES point_sets(set_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		x_bits BIGINT NOT NULL,
		y_bits BIGINT NOT NULL,
		z_bits BIGINT NOT NULL,
		PRIMARY KEY (set_id, seq)
	);
	`

	createGeographicQuery := `
	CREATE TABLE IF NOT EXISTS geographic_points (
		set_id BIGINT NOT NULL REFERENCES point_sets(set_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		lon_bits BIGINT NOT NULL,
		lat_bits BIGINT NOT NULL,
		dep_bits BIGINT NOT NULL,
		PRIMARY KEY (set_id, seq)
	);
	`

	return []string{
		createPointSetsQuery,
		createCartesianQuery,
		createGeographicQuery,
	}
}

// Initialize the point-set schema. Statements are idempotent.
func InitSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements(d) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d (%s): %w", i+1, d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
