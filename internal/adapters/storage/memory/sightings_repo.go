package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"bear-tracker/internal/domain/bears"
	"bear-tracker/internal/domain/sightings"
)

type sightingRepo struct {
	mu    sync.RWMutex
	byID  map[string]sightings.Sighting
	bears bears.Repository
}

// NewSightingRepo valida contra bearRepo que el oso exista (lo que en SQL
// hace la foreign key).
func NewSightingRepo(bearRepo bears.Repository) sightings.Repository {
	return &sightingRepo{
		byID:  make(map[string]sightings.Sighting),
		bears: bearRepo,
	}
}

func (r *sightingRepo) Create(ctx context.Context, s sightings.Sighting) error {
	if s.ID == "" {
		return errors.New("sighting id required")
	}
	if _, err := r.bears.GetByID(ctx, s.BearID); err != nil {
		if errors.Is(err, bears.ErrNotFound) {
			return sightings.ErrUnknownBear
		}
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; exists {
		return errors.New("sighting already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *sightingRepo) ListByBear(ctx context.Context, bearID string) ([]sightings.Sighting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sightings.Sighting, 0)
	for _, s := range r.byID {
		if s.BearID == bearID {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.SeenAt.Equal(b.SeenAt) {
			return a.SeenAt.Before(b.SeenAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	return out, nil
}
