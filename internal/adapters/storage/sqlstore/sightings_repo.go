package sqlstore

import (
	"context"
	"database/sql"
	"strings"

	"bear-tracker/internal/domain/sightings"
)

const sightingColumns = `
	id, bear_id,
	seen_at, location,
	latitude, longitude,
	notes, created_at`

type SightingsRepo struct {
	db *sql.DB
	d  Dialect
}

func NewSightingsRepo(db *sql.DB, d Dialect) *SightingsRepo {
	return &SightingsRepo{db: db, d: d}
}

func (r *SightingsRepo) Create(ctx context.Context, s sightings.Sighting) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO sightings (`+sightingColumns+`
		) VALUES (?,?,?,?,?,?,?,?)
	`),
		s.ID,
		s.BearID,
		s.SeenAt.UTC(),
		s.Location,
		toNullFloat(s.Latitude),
		toNullFloat(s.Longitude),
		s.Notes,
		s.CreatedAt.UTC(),
	)
	if r.d.isFK(err) {
		return sightings.ErrUnknownBear
	}
	return err
}

func (r *SightingsRepo) ListByBear(ctx context.Context, bearID string) ([]sightings.Sighting, error) {
	bearID = strings.TrimSpace(bearID)
	if bearID == "" {
		return []sightings.Sighting{}, nil
	}

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(`
		SELECT `+sightingColumns+`
		FROM sightings
		WHERE bear_id = ?
		ORDER BY seen_at ASC, created_at ASC, id ASC
	`), bearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sightings.Sighting, 0)
	for rows.Next() {
		var s sightings.Sighting
		var lat, lng sql.NullFloat64
		if err := rows.Scan(
			&s.ID,
			&s.BearID,
			&s.SeenAt,
			&s.Location,
			&lat,
			&lng,
			&s.Notes,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		if lat.Valid {
			v := lat.Float64
			s.Latitude = &v
		}
		if lng.Valid {
			v := lng.Float64
			s.Longitude = &v
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
