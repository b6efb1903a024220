package bears

import "time"

// Valores observados en los registros de campo.
// Sex y EarApplied se guardan como string libre: cualquier otro valor se tolera.
const (
	SexMale   = "M"
	SexFemale = "F"

	EarLeft  = "Left"
	EarRight = "Right"
)

// Bear representa un oso marcado (tag) en el programa de monitoreo.
type Bear struct {
	ID string

	Name        string
	PITTag      string
	WildlifeTag string

	Sex        string // "M" / "F"
	EarApplied string // oreja donde se aplicó el tag: "Left" / "Right"

	CaptureDate *time.Time
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
