package sightings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	BearID    string
	SeenAt    time.Time
	Location  string
	Latitude  *float64
	Longitude *float64
	Notes     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Sighting, error) {
	if strings.TrimSpace(in.BearID) == "" {
		return Sighting{}, ErrInvalidInput
	}
	if in.SeenAt.IsZero() {
		return Sighting{}, ErrInvalidInput
	}

	sg := Sighting{
		ID:        uuid.NewString(),
		BearID:    strings.TrimSpace(in.BearID),
		SeenAt:    in.SeenAt,
		Location:  strings.TrimSpace(in.Location),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, sg); err != nil {
		return Sighting{}, err
	}
	return sg, nil
}

func (s *Service) ListByBear(ctx context.Context, bearID string) ([]Sighting, error) {
	return s.repo.ListByBear(ctx, strings.TrimSpace(bearID))
}
