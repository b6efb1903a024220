package deploy

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// -------------------------
// Fakes
// -------------------------

type fakeSyncer struct {
	out   string
	err   error
	block chan struct{} // si no es nil, Sync espera a que se cierre o al ctx

	calls   atomic.Int32
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (f *fakeSyncer) Sync(ctx context.Context) (string, error) {
	f.calls.Add(1)
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.out, f.err
}

type fakeReloader struct {
	err   error
	calls atomic.Int32
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.calls.Add(1)
	return f.err
}

// -------------------------
// Tests
// -------------------------

func TestRedeploy_SyncThenReload(t *testing.T) {
	s := &fakeSyncer{out: "Already up to date."}
	rl := &fakeReloader{}
	svc := NewService(Options{Syncer: s, Reloader: rl})

	res, err := svc.Redeploy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Already up to date.", res.Output)
	assert.True(t, res.Reloaded)
	assert.False(t, res.FinishedAt.Before(res.StartedAt))
	assert.EqualValues(t, 1, rl.calls.Load())
}

func TestRedeploy_NoSyncer(t *testing.T) {
	svc := NewService(Options{})
	_, err := svc.Redeploy(context.Background())
	assert.ErrorIs(t, err, ErrSyncFailed)
}

func TestRedeploy_SyncFailureSkipsReload(t *testing.T) {
	pullErr := errors.New("exit status 1")
	s := &fakeSyncer{out: "fatal: Not possible to fast-forward", err: pullErr}
	rl := &fakeReloader{}
	svc := NewService(Options{Syncer: s, Reloader: rl})

	res, err := svc.Redeploy(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyncFailed)
	assert.ErrorIs(t, err, pullErr)
	assert.Contains(t, res.Output, "fast-forward")
	assert.EqualValues(t, 0, rl.calls.Load())
}

func TestRedeploy_ReloadFailure(t *testing.T) {
	svc := NewService(Options{
		Syncer:   &fakeSyncer{out: "Updating 1a2b..3c4d"},
		Reloader: &fakeReloader{err: errors.New("status 401")},
	})

	res, err := svc.Redeploy(context.Background())
	assert.ErrorIs(t, err, ErrReloadFailed)
	assert.False(t, res.Reloaded)
}

func TestRedeploy_SyncTimeout(t *testing.T) {
	s := &fakeSyncer{block: make(chan struct{})}
	defer close(s.block)
	svc := NewService(Options{Syncer: s, SyncTimeout: 20 * time.Millisecond})

	_, err := svc.Redeploy(context.Background())
	assert.ErrorIs(t, err, ErrSyncFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedeploy_NeverOverlaps(t *testing.T) {
	s := &fakeSyncer{block: make(chan struct{})}
	svc := NewService(Options{Syncer: s})

	const n = 5
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Redeploy(context.Background())
			errs <- err
		}()
	}

	require.Eventually(t, func() bool { return s.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	close(s.block)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, n, s.calls.Load())
	assert.EqualValues(t, 1, s.maxSeen.Load())
}

func TestRedeploy_BusyWhenCallerGivesUp(t *testing.T) {
	s := &fakeSyncer{block: make(chan struct{})}
	svc := NewService(Options{Syncer: s})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Redeploy(context.Background())
	}()
	require.Eventually(t, func() bool { return s.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.Redeploy(ctx)
	assert.ErrorIs(t, err, ErrBusy)
	assert.EqualValues(t, 1, s.calls.Load())

	close(s.block)
	<-done
}

func TestRedeploy_CallerCancelDoesNotAbortSync(t *testing.T) {
	s := &fakeSyncer{out: "Updating 1a2b..3c4d", block: make(chan struct{})}
	svc := NewService(Options{Syncer: s})

	ctx, cancel := context.WithCancel(context.Background())
	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := svc.Redeploy(ctx)
		done <- outcome{res, err}
	}()
	require.Eventually(t, func() bool { return s.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case o := <-done:
		t.Fatalf("redeploy returned after caller cancel: %v", o.err)
	case <-time.After(50 * time.Millisecond):
	}

	close(s.block)
	o := <-done
	require.NoError(t, o.err)
	assert.Equal(t, "Updating 1a2b..3c4d", o.res.Output)
}
