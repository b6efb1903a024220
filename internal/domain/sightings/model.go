package sightings

import "time"

// Sighting es una observación de un oso. Referencia al oso por BearID,
// no es dueña del registro (muchos avistamientos pueden apuntar al mismo oso).
type Sighting struct {
	ID     string
	BearID string

	SeenAt   time.Time
	Location string

	Latitude  *float64
	Longitude *float64

	Notes string

	CreatedAt time.Time
}
