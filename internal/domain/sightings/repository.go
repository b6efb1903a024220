package sightings

import (
	"context"
	"errors"
)

// ErrUnknownBear lo devuelven los repos cuando BearID no existe.
var ErrUnknownBear = errors.New("sighting references unknown bear")

type Repository interface {
	// ListByBear devuelve los avistamientos de un oso ordenados por
	// seen_at ASC, created_at ASC, id ASC.
	ListByBear(ctx context.Context, bearID string) ([]Sighting, error)
	Create(ctx context.Context, s Sighting) error
}
