package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect selects placeholder syntax, DDL types and constraint error mapping.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	}
	return "dialect(" + strconv.Itoa(int(d)) + ")"
}

// ParseDialect maps a DB_DRIVER value to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite":
		return SQLite, nil
	case "postgres", "pgx":
		return Postgres, nil
	}
	return 0, fmt.Errorf("parse dialect: unsupported driver %q", driver)
}

// bind rewrites '?' placeholders to $n for Postgres.
// Queries in this package never contain literal '?' characters.
func (d Dialect) bind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func (d Dialect) isUniqueViolation(err error) bool {
	switch d {
	case SQLite:
		var se *sqlite.Error
		if errors.As(err, &se) {
			code := se.Code()
			return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
				(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE"))
		}
	case Postgres:
		var pe *pgconn.PgError
		if errors.As(err, &pe) {
			return pe.Code == "23505"
		}
	}
	return false
}
