package bears

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bear-tracker/internal/domain/sightings"
	"bear-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	// Rutas planas (sin r.Route) para que /bears/update del módulo deploy
	// conviva en el mismo árbol. Se aceptan ambas formas, con y sin "/" final.
	r.Get("/bears/", listBearsHandler(svc, log))
	r.Get("/bears", listBearsHandler(svc, log))
	r.Get("/bears/{bearID}/", getBearHandler(svc, log))
	r.Get("/bears/{bearID}", getBearHandler(svc, log))
}

// bearResponse es un oso tal como lo devuelve la API.
type bearResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	PITTag      string     `json:"pit_tag"`
	WildlifeTag string     `json:"wildlife_tag"`
	Sex         string     `json:"sex"`
	EarApplied  string     `json:"ear_applied"`
	CaptureDate *time.Time `json:"capture_date,omitempty"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type sightingResponse struct {
	ID        string    `json:"id"`
	BearID    string    `json:"bear_id"`
	SeenAt    time.Time `json:"seen_at"`
	Location  string    `json:"location"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// bearListResponse lleva el listado completo y los conteos por sexo y oreja.
type bearListResponse struct {
	Bears    []bearResponse `json:"bears"`
	LeftEar  int            `json:"left_ear"`
	RightEar int            `json:"right_ear"`
	Male     int            `json:"male"`
	Female   int            `json:"female"`
}

type bearDetailResponse struct {
	Bear      bearResponse       `json:"bear"`
	Sightings []sightingResponse `json:"sightings"`
}

// listBearsHandler godoc
// @Summary Listar osos
// @Description Devuelve todos los osos registrados y los conteos machos/hembras y oreja izquierda/derecha. Sin filtros ni paginación.
// @Tags bears
// @Produce json
// @Success 200 {object} bearListResponse
// @Failure 500 {string} string "internal error"
// @Router /bears/ [get]
func listBearsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.List(r.Context())
		if err != nil {
			log.Error("list bears failed", map[string]any{"error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := bearListResponse{
			Bears:    make([]bearResponse, 0, len(view.Bears)),
			LeftEar:  view.Summary.LeftEar,
			RightEar: view.Summary.RightEar,
			Male:     view.Summary.Male,
			Female:   view.Summary.Female,
		}
		for _, b := range view.Bears {
			out.Bears = append(out.Bears, toBearResponse(b))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getBearHandler godoc
// @Summary Detalle de oso
// @Description Devuelve un oso con todos sus avistamientos, ordenados por seen_at ascendente.
// @Tags bears
// @Produce json
// @Param bearID path string true "ID del oso"
// @Success 200 {object} bearDetailResponse
// @Failure 404 {string} string "bear not found"
// @Failure 500 {string} string "internal error"
// @Router /bears/{bearID}/ [get]
func getBearHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bearID := chi.URLParam(r, "bearID")

		view, err := svc.Detail(r.Context(), bearID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "bear not found", http.StatusNotFound)
				return
			}
			log.Error("bear detail failed", map[string]any{"bear_id": bearID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := bearDetailResponse{
			Bear:      toBearResponse(view.Bear),
			Sightings: make([]sightingResponse, 0, len(view.Sightings)),
		}
		for _, sg := range view.Sightings {
			out.Sightings = append(out.Sightings, toSightingResponse(sg))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toBearResponse(b Bear) bearResponse {
	return bearResponse{
		ID:          b.ID,
		Name:        b.Name,
		PITTag:      b.PITTag,
		WildlifeTag: b.WildlifeTag,
		Sex:         b.Sex,
		EarApplied:  b.EarApplied,
		CaptureDate: b.CaptureDate,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toSightingResponse(sg sightings.Sighting) sightingResponse {
	return sightingResponse{
		ID:        sg.ID,
		BearID:    sg.BearID,
		SeenAt:    sg.SeenAt,
		Location:  sg.Location,
		Latitude:  sg.Latitude,
		Longitude: sg.Longitude,
		Notes:     sg.Notes,
		CreatedAt: sg.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
