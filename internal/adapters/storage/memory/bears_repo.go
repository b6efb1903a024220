package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"bear-tracker/internal/domain/bears"
)

type bearRepo struct {
	mu   sync.RWMutex
	byID map[string]bears.Bear
}

func NewBearRepo() bears.Repository {
	return &bearRepo{
		byID: make(map[string]bears.Bear),
	}
}

func (r *bearRepo) Create(ctx context.Context, b bears.Bear) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("bear id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("bear already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *bearRepo) GetByID(ctx context.Context, id string) (bears.Bear, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return bears.Bear{}, bears.ErrNotFound
	}
	return b, nil
}

func (r *bearRepo) ListAll(ctx context.Context) ([]bears.Bear, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bears.Bear, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}

	// Mismo orden que los repos SQL: created_at asc, id asc
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}
