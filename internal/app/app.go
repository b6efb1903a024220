package app

import (
	"context"
	"fmt"
	"net/http"

	"bear-tracker/internal/adapters/auth/jwtauth"
	"bear-tracker/internal/adapters/auth/webhook"
	"bear-tracker/internal/adapters/hosting/pythonanywhere"
	"bear-tracker/internal/adapters/vcs/git"
	"bear-tracker/internal/config"
	"bear-tracker/internal/domain/deploy"
	"bear-tracker/internal/platform/logger"
	"bear-tracker/internal/ports/auth"
	"bear-tracker/internal/router"
)

// App es el servicio armado a partir de la config.
type App struct {
	Handler http.Handler
	Store   *Store
}

// New abre el store, arma auth + deploy y devuelve el handler listo.
// El caller cierra Store.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	var verifier auth.AuthVerifier
	if cfg.Auth.JWTSecret != "" {
		v, err := jwtauth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		verifier = v
	}

	guard := &deploy.Guard{AcceptTokens: verifier != nil}
	if cfg.Deploy.WebhookSecret != "" {
		sv, err := webhook.NewVerifier(cfg.Deploy.WebhookSecret)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		guard.Signatures = sv
	}

	deploySvc, err := newDeployService(cfg, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	if !guard.Enabled() {
		log.Warn("redeploy endpoint has no credentials configured; every POST will be rejected", nil)
	}
	if !cfg.DeployEnabled() {
		log.Warn("deploy.repo_dir not set; redeploys will fail", nil)
	}

	h := router.NewRouter(router.Options{
		Logger:       log,
		AuthVerifier: verifier,
		Bears:        store.Bears,
		Sightings:    store.Sightings,
		Deploy:       deploySvc,
		DeployGuard:  guard,
	})

	return &App{Handler: h, Store: store}, nil
}

func newDeployService(cfg *config.Config, log logger.Logger) (*deploy.Service, error) {
	opts := deploy.Options{
		SyncTimeout:   cfg.Deploy.SyncTimeout,
		ReloadTimeout: cfg.Deploy.ReloadTimeout,
		Logger:        log,
	}

	if cfg.DeployEnabled() {
		repo, err := git.New(git.Config{
			Dir:             cfg.Deploy.RepoDir,
			Remote:          cfg.Deploy.Remote,
			Branch:          cfg.Deploy.Branch,
			FastForwardOnly: cfg.Deploy.MergeStrategy != config.MergeCommit,
		})
		if err != nil {
			return nil, fmt.Errorf("deploy: %w", err)
		}
		opts.Syncer = repo
	}

	if cfg.Deploy.ReloadAfterSync {
		rc, err := pythonanywhere.NewClient(pythonanywhere.Config{
			BaseURL:  cfg.Hosting.BaseURL,
			Username: cfg.Hosting.Username,
			Token:    cfg.Hosting.Token,
			Domain:   cfg.Hosting.Domain,
			Timeout:  cfg.Deploy.ReloadTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("deploy: %w", err)
		}
		opts.Reloader = rc
	}

	return deploy.NewService(opts), nil
}
