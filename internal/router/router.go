package router

import (
	"net/http"

	_ "bear-tracker/docs"
	mem "bear-tracker/internal/adapters/storage/memory"
	"bear-tracker/internal/domain/bears"
	"bear-tracker/internal/domain/deploy"
	"bear-tracker/internal/domain/sightings"
	"bear-tracker/internal/middleware"
	"bear-tracker/internal/platform/logger"
	"bear-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger       logger.Logger
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcionales: si no vienen, in-memory.
	Bears     bears.Repository
	Sightings sightings.Repository

	// Deploy nil => /bears/update responde "Deploy failed" a todo POST válido.
	// DeployGuard nil => todo POST se rechaza con 403.
	Deploy      *deploy.Service
	DeployGuard *deploy.Guard
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	bearRepo := opts.Bears
	sightingRepo := opts.Sightings
	if bearRepo == nil {
		bearRepo = mem.NewBearRepo()
	}
	if sightingRepo == nil {
		sightingRepo = mem.NewSightingRepo(bearRepo)
	}

	deploySvc := opts.Deploy
	if deploySvc == nil {
		deploySvc = deploy.NewService(deploy.Options{Logger: log})
	}

	// Services por módulo
	sightingsSvc := sightings.NewService(sightingRepo)
	bearsSvc := bears.NewService(bearRepo, sightingsSvc)

	// Rutas por módulo
	bears.RegisterRoutes(r, bearsSvc, log)
	deploy.RegisterRoutes(r, deploySvc, opts.DeployGuard, log)

	return r
}
