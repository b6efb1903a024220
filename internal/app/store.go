package app

import (
	"context"
	"database/sql"
	"fmt"

	mem "bear-tracker/internal/adapters/storage/memory"
	pg "bear-tracker/internal/adapters/storage/postgres"
	lite "bear-tracker/internal/adapters/storage/sqlite"
	"bear-tracker/internal/config"
	"bear-tracker/internal/domain/bears"
	"bear-tracker/internal/domain/sightings"
)

// Store agrupa los repos del driver elegido.
type Store struct {
	Driver    string
	Bears     bears.Repository
	Sightings sightings.Repository

	db *sql.DB
}

// OpenStore abre el driver configurado. memory no necesita DSN.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := pg.Open(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &Store{
			Driver:    cfg.Driver,
			Bears:     pg.NewBearsRepo(db),
			Sightings: pg.NewSightingsRepo(db),
			db:        db,
		}, nil

	case config.DriverSQLite:
		db, err := lite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Store{
			Driver:    cfg.Driver,
			Bears:     lite.NewBearsRepo(db),
			Sightings: lite.NewSightingsRepo(db),
			db:        db,
		}, nil

	case config.DriverMemory, "":
		br := mem.NewBearRepo()
		return &Store{
			Driver:    config.DriverMemory,
			Bears:     br,
			Sightings: mem.NewSightingRepo(br),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// Migrate crea el esquema. En memory no hace nada.
func (s *Store) Migrate(ctx context.Context) error {
	switch s.Driver {
	case config.DriverPostgres:
		return pg.EnsureSchema(ctx, s.db)
	case config.DriverSQLite:
		return lite.EnsureSchema(ctx, s.db)
	default:
		return nil
	}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
