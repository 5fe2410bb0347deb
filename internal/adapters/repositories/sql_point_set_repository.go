package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"point-set-service/internal/domain"
	"point-set-service/internal/platform/obs"
	"time"
)

// SQL-backed implementation of the PointSetRepository port.
// Points are stored one row each, keyed by (set_id, seq) to keep input order.
type SQLPointSetRepository struct {
	DB      *sql.DB
	Dialect Dialect

	now func() time.Time
}

func NewSQLPointSetRepository(db *sql.DB, d Dialect) *SQLPointSetRepository {
	return &SQLPointSetRepository{DB: db, Dialect: d, now: time.Now}
}

func NewSqlitePointSetRepository(db *sql.DB) *SQLPointSetRepository {
	return NewSQLPointSetRepository(db, SQLite)
}

func NewPostgresPointSetRepository(db *sql.DB) *SQLPointSetRepository {
	return NewSQLPointSetRepository(db, Postgres)
}

// Store the set and its points in a single transaction.
func (s *SQLPointSetRepository) CreatePointSet(ctx context.Context, set *domain.PointSet) (_ int, err error) {
	defer obs.Time(ctx, "repo.CreatePointSet")(&err)

	if s.DB == nil {
		return 0, errors.New("point set repository: DB is nil")
	}
	if err := set.CheckShape(); err != nil {
		return 0, fmt.Errorf("create point set: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("create point set: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := s.now().UTC().Truncate(time.Microsecond)

	var setID int
	err = tx.QueryRowContext(ctx, s.Dialect.bind(`
	INSERT INTO point_sets (
		name,
		frame,
		created_at
	)
	VALUES (?, ?, ?)
	RETURNING set_id;
	`), set.Name, string(set.Frame), createdAt.UnixMicro()).Scan(&setID)
	if err != nil {
		if s.Dialect.isUniqueViolation(err) {
			return 0, fmt.Errorf("create point set %q: %w", set.Name, domain.ErrDuplicateName)
		}
		return 0, fmt.Errorf("create point set %q: insert point_sets row: %w", set.Name, err)
	}

	switch set.Frame {
	case domain.FrameCartesian:
		err = s.insertCartesian(ctx, tx, setID, set.Cartesian)
	case domain.FrameGeographic:
		err = s.insertGeographic(ctx, tx, setID, set.Geographic)
	}
	if err != nil {
		return 0, fmt.Errorf("create point set %q: %w", set.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create point set %q: commit tx: %w", set.Name, err)
	}

	set.SetID = setID
	set.CreatedAt = createdAt
	return setID, nil
}

func (s *SQLPointSetRepository) insertCartesian(ctx context.Context, tx *sql.Tx, setID int, pts []domain.CartesianPoint) error {
	if len(pts) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.bind(`
	INSERT INTO cartesian_points (set_id, seq, x_bits, y_bits, z_bits)
	VALUES (?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("insert cartesian points: prepare: %w", err)
	}
	defer stmt.Close()

	for i, p := range pts {
		if _, err := stmt.ExecContext(ctx, setID, i, toBits(p.X), toBits(p.Y), toBits(p.Z)); err != nil {
			return fmt.Errorf("insert cartesian points: seq=%d: %w", i, err)
		}
	}
	return nil
}

func (s *SQLPointSetRepository) insertGeographic(ctx context.Context, tx *sql.Tx, setID int, pts []domain.GeographicPoint) error {
	if len(pts) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.bind(`
	INSERT INTO geographic_points (set_id, seq, lon_bits, lat_bits, dep_bits)
	VALUES (?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("insert geographic points: prepare: %w", err)
	}
	defer stmt.Close()

	for i, p := range pts {
		if _, err := stmt.ExecContext(ctx, setID, i, toBits(p.Lon), toBits(p.Lat), toBits(p.Dep)); err != nil {
			return fmt.Errorf("insert geographic points: seq=%d: %w", i, err)
		}
	}
	return nil
}

func toBits(v domain.Scalar) int64 {
	return int64(math.Float64bits(v))
}

func fromBits(b int64) domain.Scalar {
	return math.Float64frombits(uint64(b))
}

// Return the set with its points ordered by seq.
func (s *SQLPointSetRepository) GetPointSet(ctx context.Context, setID int) (_ *domain.PointSet, err error) {
	defer obs.Time(ctx, "repo.GetPointSet")(&err)

	if s.DB == nil {
		return nil, errors.New("point set repository: DB is nil")
	}

	var (
		name      string
		frame     string
		createdAt int64
	)
	err = s.DB.QueryRowContext(ctx, s.Dialect.bind(`
	SELECT
		name,
		frame,
		created_at
	FROM point_sets
	WHERE set_id = ?;
	`), setID).Scan(&name, &frame, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get point set %d: %w", setID, domain.ErrPointSetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get point set %d: query point_sets table: %w", setID, err)
	}

	set := &domain.PointSet{
		SetID:     setID,
		Name:      name,
		Frame:     domain.Frame(frame),
		CreatedAt: time.UnixMicro(createdAt).UTC(),
	}

	switch set.Frame {
	case domain.FrameCartesian:
		set.Cartesian, err = s.listCartesian(ctx, setID)
	case domain.FrameGeographic:
		set.Geographic, err = s.listGeographic(ctx, setID)
	default:
		err = fmt.Errorf("stored frame %q is unknown", frame)
	}
	if err != nil {
		return nil, fmt.Errorf("get point set %d: %w", setID, err)
	}

	return set, nil
}

func (s *SQLPointSetRepository) listCartesian(ctx context.Context, setID int) ([]domain.CartesianPoint, error) {
	rows, err := s.DB.QueryContext(ctx, s.Dialect.bind(`
	SELECT x_bits, y_bits, z_bits
	FROM cartesian_points
	WHERE set_id = ?
	ORDER BY seq;
	`), setID)
	if err != nil {
		return nil, fmt.Errorf("list cartesian points: query: %w", err)
	}
	defer rows.Close()

	pts := []domain.CartesianPoint{}
	for rows.Next() {
		var x, y, z int64
		if err := rows.Scan(&x, &y, &z); err != nil {
			return nil, fmt.Errorf("list cartesian points: scan row: %w", err)
		}
		pts = append(pts, domain.CartesianPoint{X: fromBits(x), Y: fromBits(y), Z: fromBits(z)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cartesian points: row iteration: %w", err)
	}

	return pts, nil
}

func (s *SQLPointSetRepository) listGeographic(ctx context.Context, setID int) ([]domain.GeographicPoint, error) {
	rows, err := s.DB.QueryContext(ctx, s.Dialect.bind(`
	SELECT lon_bits, lat_bits, dep_bits
	FROM geographic_points
	WHERE set_id = ?
	ORDER BY seq;
	`), setID)
	if err != nil {
		return nil, fmt.Errorf("list geographic points: query: %w", err)
	}
	defer rows.Close()

	pts := []domain.GeographicPoint{}
	for rows.Next() {
		var lon, lat, dep int64
		if err := rows.Scan(&lon, &lat, &dep); err != nil {
			return nil, fmt.Errorf("list geographic points: scan row: %w", err)
		}
		pts = append(pts, domain.GeographicPoint{Lon: fromBits(lon), Lat: fromBits(lat), Dep: fromBits(dep)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list geographic points: row iteration: %w", err)
	}

	return pts, nil
}

// Return all stored sets with their point counts, ordered by set_id.
func (s *SQLPointSetRepository) ListPointSets(ctx context.Context) (_ []domain.PointSetInfo, err error) {
	defer obs.Time(ctx, "repo.ListPointSets")(&err)

	if s.DB == nil {
		return nil, errors.New("point set repository: DB is nil")
	}

	query := `
	SELECT
		s.set_id,
		s.name,
		s.frame,
		s.created_at,
		(SELECT COUNT(*) FROM cartesian_points c WHERE c.set_id = s.set_id)
			+ (SELECT COUNT(*) FROM geographic_points g WHERE g.set_id = s.set_id)
	FROM point_sets s
	ORDER BY s.set_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list point sets: query point_sets table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PointSetInfo, 0, 16)
	for rows.Next() {
		var (
			info      domain.PointSetInfo
			frame     string
			createdAt int64
		)
		if err := rows.Scan(&info.SetID, &info.Name, &frame, &createdAt, &info.Count); err != nil {
			return nil, fmt.Errorf("list point sets: scan row: %w", err)
		}
		info.Frame = domain.Frame(frame)
		info.CreatedAt = time.UnixMicro(createdAt).UTC()
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list point sets: row iteration: %w", err)
	}

	return out, nil
}

// Delete the set and its points.
func (s *SQLPointSetRepository) DeletePointSet(ctx context.Context, setID int) (err error) {
	defer obs.Time(ctx, "repo.DeletePointSet")(&err)

	if s.DB == nil {
		return errors.New("point set repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete point set %d: begin tx: %w", setID, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"cartesian_points", "geographic_points"} {
		q := s.Dialect.bind("DELETE FROM " + table + " WHERE set_id = ?;")
		if _, err := tx.ExecContext(ctx, q, setID); err != nil {
			return fmt.Errorf("delete point set %d: delete from %s: %w", setID, table, err)
		}
	}

	res, err := tx.ExecContext(ctx, s.Dialect.bind("DELETE FROM point_sets WHERE set_id = ?;"), setID)
	if err != nil {
		return fmt.Errorf("delete point set %d: delete from point_sets: %w", setID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete point set %d: rows affected: %w", setID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete point set %d: %w", setID, domain.ErrPointSetNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete point set %d: commit tx: %w", setID, err)
	}

	return nil
}
