package bears

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bear-tracker/internal/domain/sightings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("bear not found")
)

// SightingsReader es lo único que el detalle necesita de sightings.
// *sightings.Service lo implementa.
type SightingsReader interface {
	ListByBear(ctx context.Context, bearID string) ([]sightings.Sighting, error)
}

type Service struct {
	repo      Repository
	sightings SightingsReader
	now       func() time.Time
}

func NewService(repo Repository, sr SightingsReader) *Service {
	return &Service{
		repo:      repo,
		sightings: sr,
		now:       time.Now,
	}
}

// ListView es lo que se entrega al render del listado.
type ListView struct {
	Bears   []Bear
	Summary SummaryCounts
}

// DetailView es un oso con sus avistamientos.
type DetailView struct {
	Bear      Bear
	Sightings []sightings.Sighting
}

// List devuelve todos los osos tal cual los entrega el store (sin filtros
// ni paginación) junto con los conteos.
func (s *Service) List(ctx context.Context) (ListView, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return ListView{}, fmt.Errorf("list bears: %w", err)
	}
	if items == nil {
		items = []Bear{}
	}
	return ListView{
		Bears:   items,
		Summary: Summarize(items),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Bear, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Bear{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Detail resuelve el oso y sus avistamientos. Si el oso no existe devuelve
// ErrNotFound sin consultar avistamientos.
func (s *Service) Detail(ctx context.Context, id string) (DetailView, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return DetailView{}, err
	}

	items, err := s.sightings.ListByBear(ctx, b.ID)
	if err != nil {
		return DetailView{}, fmt.Errorf("list sightings: %w", err)
	}
	if items == nil {
		items = []sightings.Sighting{}
	}

	return DetailView{Bear: b, Sightings: items}, nil
}

type CreateInput struct {
	Name        string
	PITTag      string
	WildlifeTag string
	Sex         string
	EarApplied  string
	CaptureDate *time.Time
	Notes       string
}

// Create es para carga administrativa (seed). La web no crea osos.
func (s *Service) Create(ctx context.Context, in CreateInput) (Bear, error) {
	if strings.TrimSpace(in.Name) == "" && strings.TrimSpace(in.PITTag) == "" {
		return Bear{}, ErrInvalidInput
	}

	now := s.now()
	b := Bear{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		PITTag:      strings.TrimSpace(in.PITTag),
		WildlifeTag: strings.TrimSpace(in.WildlifeTag),
		Sex:         strings.TrimSpace(in.Sex),
		EarApplied:  strings.TrimSpace(in.EarApplied),
		CaptureDate: in.CaptureDate,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Bear{}, err
	}
	return b, nil
}
