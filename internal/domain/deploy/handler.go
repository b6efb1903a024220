package deploy

import (
	"errors"
	"io"
	"net/http"

	"bear-tracker/internal/middleware"
	"bear-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Respuestas en texto plano del endpoint de update.
const (
	MsgUpdated    = "Updated code"
	MsgNotUpdated = "Couldn't update the code"
	MsgFailed     = "Deploy failed"
	MsgBusy       = "Deploy busy"
)

const maxWebhookBody = 1 << 20

// RegisterRoutes monta /bears/update para todos los métodos: los que no son
// POST caen al camino de rechazo sin tocar la copia de trabajo.
func RegisterRoutes(r chi.Router, svc *Service, guard *Guard, log logger.Logger) {
	r.HandleFunc("/bears/update", updateHandler(svc, guard, log))
}

// updateHandler godoc
// @Summary Redeploy del servicio
// @Description Con POST autenticado (firma X-Hub-Signature-256 o Bearer JWT con rol deployer) hace git pull de la copia de trabajo y, si está configurado, pide reload al hosting. Cualquier otro método devuelve el texto de rechazo sin hacer nada.
// @Tags deploy
// @Accept json
// @Produce plain
// @Param X-Hub-Signature-256 header string false "sha256=<hex> del body con el secreto del webhook"
// @Param Authorization header string false "Bearer token con rol deployer"
// @Success 200 {string} string "Updated code / Couldn't update the code"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 502 {string} string "Deploy failed"
// @Failure 503 {string} string "Deploy busy"
// @Router /bears/update [post]
func updateHandler(svc *Service, guard *Guard, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeText(w, http.StatusOK, MsgNotUpdated)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}

		if err := guard.Authorize(r.Context(), r.Header, body); err != nil {
			fields := map[string]any{"remote": r.RemoteAddr}
			if c, ok := middleware.GetClaims(r.Context()); ok {
				fields["user_id"] = c.UserID
			}
			log.Warn("redeploy rejected", fields)

			if errors.Is(err, ErrUnauthenticated) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		res, err := svc.Redeploy(r.Context())
		if err != nil {
			switch {
			case errors.Is(err, ErrBusy):
				writeText(w, http.StatusServiceUnavailable, MsgBusy)
			default:
				writeText(w, http.StatusBadGateway, MsgFailed)
			}
			return
		}

		log.Info("redeploy done", map[string]any{
			"reloaded": res.Reloaded,
			"took_ms":  res.FinishedAt.Sub(res.StartedAt).Milliseconds(),
		})
		writeText(w, http.StatusOK, MsgUpdated)
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
