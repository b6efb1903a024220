package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"bear-tracker/internal/domain/bears"
	"bear-tracker/internal/domain/sightings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidFile = errors.New("invalid seed file")

// File es el formato YAML de carga administrativa.
//
//	bears:
//	  - name: Juniper
//	    pit_tag: "985141000123456"
//	    sex: F
//	    ear_applied: Left
//	    capture_date: 2023-05-14
//	    sightings:
//	      - seen_at: 2023-06-01T10:30:00Z
//	        location: Ridge trail
type File struct {
	Bears []BearEntry `yaml:"bears"`
}

type BearEntry struct {
	Name        string          `yaml:"name"`
	PITTag      string          `yaml:"pit_tag"`
	WildlifeTag string          `yaml:"wildlife_tag"`
	Sex         string          `yaml:"sex"`
	EarApplied  string          `yaml:"ear_applied"`
	CaptureDate string          `yaml:"capture_date"`
	Notes       string          `yaml:"notes"`
	Sightings   []SightingEntry `yaml:"sightings"`
}

type SightingEntry struct {
	SeenAt    string   `yaml:"seen_at"`
	Location  string   `yaml:"location"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
	Notes     string   `yaml:"notes"`
}

type BearCreator interface {
	Create(ctx context.Context, in bears.CreateInput) (bears.Bear, error)
}

type SightingCreator interface {
	Create(ctx context.Context, in sightings.CreateInput) (sightings.Sighting, error)
}

type Stats struct {
	Bears     int
	Sightings int
}

func LoadFile(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return f, nil
}

// Apply crea osos y avistamientos en orden. Corta en el primer error: lo ya
// creado queda creado.
func Apply(ctx context.Context, f File, bs BearCreator, ss SightingCreator) (Stats, error) {
	var st Stats
	for i, be := range f.Bears {
		in, err := be.toInput()
		if err != nil {
			return st, fmt.Errorf("bears[%d]: %w", i, err)
		}
		b, err := bs.Create(ctx, in)
		if err != nil {
			return st, fmt.Errorf("bears[%d]: %w", i, err)
		}
		st.Bears++

		for j, se := range be.Sightings {
			seenAt, err := parseWhen(se.SeenAt)
			if err != nil {
				return st, fmt.Errorf("bears[%d].sightings[%d]: %w", i, j, err)
			}
			_, err = ss.Create(ctx, sightings.CreateInput{
				BearID:    b.ID,
				SeenAt:    seenAt,
				Location:  se.Location,
				Latitude:  se.Latitude,
				Longitude: se.Longitude,
				Notes:     se.Notes,
			})
			if err != nil {
				return st, fmt.Errorf("bears[%d].sightings[%d]: %w", i, j, err)
			}
			st.Sightings++
		}
	}
	return st, nil
}

func (be BearEntry) toInput() (bears.CreateInput, error) {
	in := bears.CreateInput{
		Name:        be.Name,
		PITTag:      be.PITTag,
		WildlifeTag: be.WildlifeTag,
		Sex:         be.Sex,
		EarApplied:  be.EarApplied,
		Notes:       be.Notes,
	}
	if strings.TrimSpace(be.CaptureDate) != "" {
		t, err := parseWhen(be.CaptureDate)
		if err != nil {
			return bears.CreateInput{}, err
		}
		in.CaptureDate = &t
	}
	return in, nil
}

// parseWhen acepta fecha sola (2006-01-02) o RFC3339.
func parseWhen(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidFile)
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidFile, s)
	}
	return t.UTC(), nil
}
