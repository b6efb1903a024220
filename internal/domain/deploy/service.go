package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bear-tracker/internal/platform/logger"

	"golang.org/x/sync/semaphore"
)

const (
	DefaultSyncTimeout   = 60 * time.Second
	DefaultReloadTimeout = 30 * time.Second
)

var (
	ErrSyncFailed   = errors.New("sync failed")
	ErrReloadFailed = errors.New("reload failed")
	ErrBusy         = errors.New("redeploy in progress")
)

type Options struct {
	Syncer   Syncer
	Reloader Reloader // nil = no se recarga tras el sync

	SyncTimeout   time.Duration
	ReloadTimeout time.Duration

	Logger logger.Logger
}

// Service ejecuta redeploys de a uno. La copia de trabajo en disco es un
// recurso único del proceso: el semáforo de peso 1 la protege.
type Service struct {
	syncer   Syncer
	reloader Reloader

	syncTimeout   time.Duration
	reloadTimeout time.Duration

	sem *semaphore.Weighted
	log logger.Logger
	now func() time.Time
}

func NewService(opts Options) *Service {
	st := opts.SyncTimeout
	if st <= 0 {
		st = DefaultSyncTimeout
	}
	rt := opts.ReloadTimeout
	if rt <= 0 {
		rt = DefaultReloadTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Service{
		syncer:        opts.Syncer,
		reloader:      opts.Reloader,
		syncTimeout:   st,
		reloadTimeout: rt,
		sem:           semaphore.NewWeighted(1),
		log:           log.With(map[string]any{"component": "deploy"}),
		now:           time.Now,
	}
}

// Redeploy espera su turno (o a que ctx se cancele), hace el sync y, si hay
// Reloader, pide el reload. ctx solo acota la espera: una vez adquirido el
// turno, sync y reload corren con sus propios timeouts aunque el caller se
// vaya, para no matar un git pull a mitad. No hay rollback si el sync falla.
func (s *Service) Redeploy(ctx context.Context) (Result, error) {
	if s.syncer == nil {
		return Result{}, fmt.Errorf("%w: no syncer configured", ErrSyncFailed)
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrBusy, err)
	}
	defer s.sem.Release(1)

	res := Result{StartedAt: s.now()}
	work := context.WithoutCancel(ctx)

	syncCtx, cancel := context.WithTimeout(work, s.syncTimeout)
	out, err := s.syncer.Sync(syncCtx)
	cancel()
	res.Output = out
	if err != nil {
		s.log.Error("sync failed", map[string]any{"error": err.Error(), "output": out})
		return res, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}
	s.log.Info("working copy synced", map[string]any{"output": out})

	if s.reloader != nil {
		reloadCtx, cancel := context.WithTimeout(work, s.reloadTimeout)
		err := s.reloader.Reload(reloadCtx)
		cancel()
		if err != nil {
			s.log.Error("reload failed", map[string]any{"error": err.Error()})
			return res, fmt.Errorf("%w: %w", ErrReloadFailed, err)
		}
		res.Reloaded = true
		s.log.Info("webapp reload requested", nil)
	}

	res.FinishedAt = s.now()
	return res, nil
}
