package deploy

import (
	"context"
	"time"
)

// Syncer sincroniza la copia de trabajo con su remoto (git pull).
// Devuelve la salida del comando para logs.
type Syncer interface {
	Sync(ctx context.Context) (string, error)
}

// Reloader pide al hosting que recargue el proceso web.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Result describe un redeploy exitoso.
type Result struct {
	Output     string
	Reloaded   bool
	StartedAt  time.Time
	FinishedAt time.Time
}
