package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bear-tracker/internal/adapters/storage/sqlstore"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

// Dialect para los repos compartidos de sqlstore.
var Dialect = sqlstore.Dialect{
	Name:     "postgres",
	Numbered: true,
	IsForeignKeyViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
	},
}

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func NewBearsRepo(db *sql.DB) *sqlstore.BearsRepo {
	return sqlstore.NewBearsRepo(db, Dialect)
}

func NewSightingsRepo(db *sql.DB) *sqlstore.SightingsRepo {
	return sqlstore.NewSightingsRepo(db, Dialect)
}
