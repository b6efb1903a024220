package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bear-tracker/internal/adapters/storage/sqlstore"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect para los repos compartidos de sqlstore.
var Dialect = sqlstore.Dialect{
	Name: "sqlite",
	IsForeignKeyViolation: func(err error) bool {
		var se *sqlite.Error
		return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	},
}

// Open abre (o crea) el archivo sqlite. dsn puede ser una ruta, "file:..." o
// ":memory:". Con :memory: se fuerza una sola conexión para que todas vean la
// misma base.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	dsn = strings.TrimPrefix(strings.TrimSpace(dsn), "sqlite://")
	if dsn == "" {
		return nil, fmt.Errorf("sqlite: empty dsn")
	}

	db, err := sql.Open("sqlite", withConnPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	return db, nil
}

// foreign_keys y busy_timeout son por conexión: van en el DSN para que el
// driver los aplique a cada conexión nueva del pool.
func withConnPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(30000)"
}

func NewBearsRepo(db *sql.DB) *sqlstore.BearsRepo {
	return sqlstore.NewBearsRepo(db, Dialect)
}

func NewSightingsRepo(db *sql.DB) *sqlstore.SightingsRepo {
	return sqlstore.NewSightingsRepo(db, Dialect)
}
