package deploy_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bear-tracker/internal/adapters/auth/webhook"
	"bear-tracker/internal/domain/deploy"
	"bear-tracker/internal/middleware"
	"bear-tracker/internal/platform/logger"
	"bear-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hookSecret = "s3cret"

type countingSyncer struct {
	err   error
	calls atomic.Int32
}

func (c *countingSyncer) Sync(ctx context.Context) (string, error) {
	c.calls.Add(1)
	return "ok", c.err
}

// tokens: "deployer" => rol deployer, "viewer" => sin roles.
type tokenVerifier struct{}

func (tokenVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	switch token {
	case "deployer":
		return auth.Claims{UserID: "ci", Roles: []string{auth.RoleDeployer}}, nil
	case "viewer":
		return auth.Claims{UserID: "ranger"}, nil
	}
	return auth.Claims{}, errors.New("bad token")
}

type fakeReloader struct{ err error }

func (f fakeReloader) Reload(ctx context.Context) error { return f.err }

// blockingSyncer espera a release (o al ctx) y anota el error del ctx.
type blockingSyncer struct {
	release chan struct{}
	started atomic.Int32
	ctxErr  atomic.Value
}

func newBlockingSyncer() *blockingSyncer {
	return &blockingSyncer{release: make(chan struct{})}
}

func (b *blockingSyncer) Sync(ctx context.Context) (string, error) {
	b.started.Add(1)
	select {
	case <-b.release:
		b.ctxErr.Store(fmt.Sprint(ctx.Err()))
		return "ok", nil
	case <-ctx.Done():
		b.ctxErr.Store(ctx.Err().Error())
		return "", ctx.Err()
	}
}

func buildHandler(t *testing.T, opts deploy.Options, withTokens bool) http.Handler {
	t.Helper()
	sv, err := webhook.NewVerifier(hookSecret)
	require.NoError(t, err)

	var verifier auth.AuthVerifier
	if withTokens {
		verifier = tokenVerifier{}
	}

	r := chi.NewRouter()
	r.Use(middleware.AuthContext(verifier))
	deploy.RegisterRoutes(r,
		deploy.NewService(opts),
		&deploy.Guard{Signatures: sv, AcceptTokens: withTokens},
		logger.Nop(),
	)
	return r
}

func newServer(t *testing.T, s deploy.Syncer, withTokens bool) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(buildHandler(t, deploy.Options{Syncer: s}, withTokens))
	t.Cleanup(func() {
		ts.Close()
		http.DefaultClient.CloseIdleConnections()
	})
	return ts
}

func signedRequest(ctx context.Context, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/bears/update", strings.NewReader(body)).WithContext(ctx)
	req.Header.Set(deploy.SignatureHeader, webhook.Header(hookSecret, []byte(body)))
	return req
}

func post(t *testing.T, url, body string, hdr map[string]string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/bears/update", strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	buf := new(strings.Builder)
	_, _ = io.Copy(buf, res.Body)
	return res.StatusCode, buf.String()
}

func TestUpdate_NonPostNeverSyncs(t *testing.T) {
	s := &countingSyncer{}
	ts := newServer(t, s, false)

	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req, _ := http.NewRequest(m, ts.URL+"/bears/update", nil)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, res.Body)
		res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode, m)
		assert.Equal(t, deploy.MsgNotUpdated, buf.String(), m)
	}
	assert.EqualValues(t, 0, s.calls.Load())
}

func TestUpdate_SignedPost(t *testing.T) {
	s := &countingSyncer{}
	ts := newServer(t, s, false)
	body := `{"ref":"refs/heads/main"}`

	st, msg := post(t, ts.URL, body, map[string]string{
		deploy.SignatureHeader: webhook.Header(hookSecret, []byte(body)),
	})
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, deploy.MsgUpdated, msg)
	assert.EqualValues(t, 1, s.calls.Load())
}

func TestUpdate_Unauthenticated(t *testing.T) {
	s := &countingSyncer{}
	ts := newServer(t, s, false)

	st, _ := post(t, ts.URL, "{}", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.EqualValues(t, 0, s.calls.Load())
}

func TestUpdate_BadSignature(t *testing.T) {
	s := &countingSyncer{}
	ts := newServer(t, s, false)

	st, _ := post(t, ts.URL, "{}", map[string]string{
		deploy.SignatureHeader: webhook.Header("other-secret", []byte("{}")),
	})
	assert.Equal(t, http.StatusForbidden, st)
	assert.EqualValues(t, 0, s.calls.Load())
}

func TestUpdate_SyncFailure(t *testing.T) {
	s := &countingSyncer{err: errors.New("exit status 128")}
	ts := newServer(t, s, false)

	st, msg := post(t, ts.URL, "{}", map[string]string{
		deploy.SignatureHeader: webhook.Header(hookSecret, []byte("{}")),
	})
	assert.Equal(t, http.StatusBadGateway, st)
	assert.Equal(t, deploy.MsgFailed, msg)
}

func TestUpdate_BearerTokenRoles(t *testing.T) {
	s := &countingSyncer{}
	ts := newServer(t, s, true)

	st, _ := post(t, ts.URL, "", map[string]string{"Authorization": "Bearer viewer"})
	assert.Equal(t, http.StatusForbidden, st)

	st, _ = post(t, ts.URL, "", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, st)

	st, msg := post(t, ts.URL, "", map[string]string{"Authorization": "Bearer deployer"})
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, deploy.MsgUpdated, msg)
	assert.EqualValues(t, 1, s.calls.Load())
}

func TestUpdate_CallerHangUpDoesNotKillSync(t *testing.T) {
	s := newBlockingSyncer()
	h := buildHandler(t, deploy.Options{Syncer: s}, false)

	ctx, cancel := context.WithCancel(context.Background())
	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(rec, signedRequest(ctx, "{}"))
	}()
	require.Eventually(t, func() bool { return s.started.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(50 * time.Millisecond)
	close(s.release)
	<-done

	assert.Equal(t, "<nil>", s.ctxErr.Load())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, deploy.MsgUpdated, rec.Body.String())
}

func TestUpdate_BusyWhenSecondCallerGivesUp(t *testing.T) {
	s := newBlockingSyncer()
	h := buildHandler(t, deploy.Options{Syncer: s}, false)

	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(first, signedRequest(context.Background(), "{}"))
	}()
	require.Eventually(t, func() bool { return s.started.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	second := httptest.NewRecorder()
	h.ServeHTTP(second, signedRequest(ctx, "{}"))

	assert.Equal(t, http.StatusServiceUnavailable, second.Code)
	assert.Equal(t, deploy.MsgBusy, second.Body.String())
	assert.EqualValues(t, 1, s.started.Load())

	close(s.release)
	<-done
	assert.Equal(t, http.StatusOK, first.Code)
}

func TestUpdate_ReloadFailure(t *testing.T) {
	h := buildHandler(t, deploy.Options{
		Syncer:   &countingSyncer{},
		Reloader: fakeReloader{err: errors.New("status 401")},
	}, false)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(context.Background(), "{}"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, deploy.MsgFailed, rec.Body.String())
}
