package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"bear-tracker/internal/domain/bears"
)

const bearColumns = `
	id,
	name, pit_tag, wildlife_tag,
	sex, ear_applied,
	capture_date, notes,
	created_at, updated_at`

type BearsRepo struct {
	db *sql.DB
	d  Dialect
}

func NewBearsRepo(db *sql.DB, d Dialect) *BearsRepo {
	return &BearsRepo{db: db, d: d}
}

func (r *BearsRepo) Create(ctx context.Context, b bears.Bear) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO bears (`+bearColumns+`
		) VALUES (?,?,?,?,?,?,?,?,?,?)
	`),
		b.ID,
		b.Name,
		b.PITTag,
		b.WildlifeTag,
		b.Sex,
		b.EarApplied,
		toNullTime(b.CaptureDate),
		b.Notes,
		b.CreatedAt.UTC(),
		b.UpdatedAt.UTC(),
	)
	return err
}

func (r *BearsRepo) GetByID(ctx context.Context, id string) (bears.Bear, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return bears.Bear{}, bears.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, r.d.Rebind(`
		SELECT `+bearColumns+`
		FROM bears
		WHERE id = ?
	`), id)

	b, err := scanBear(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bears.Bear{}, bears.ErrNotFound
		}
		return bears.Bear{}, err
	}
	return b, nil
}

func (r *BearsRepo) ListAll(ctx context.Context) ([]bears.Bear, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bearColumns+`
		FROM bears
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bears.Bear, 0)
	for rows.Next() {
		b, err := scanBear(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBear(s scanner) (bears.Bear, error) {
	var b bears.Bear
	var cd sql.NullTime
	if err := s.Scan(
		&b.ID,
		&b.Name,
		&b.PITTag,
		&b.WildlifeTag,
		&b.Sex,
		&b.EarApplied,
		&cd,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return bears.Bear{}, err
	}

	if cd.Valid {
		t := cd.Time
		b.CaptureDate = &t
	}
	return b, nil
}

// capture_date es DATE, lo pasamos como NullTime para simplificar
func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
