package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"bear-tracker/internal/config"
	"bear-tracker/internal/domain/bears"
	"bear-tracker/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Memory(t *testing.T) {
	s, err := OpenStore(context.Background(), config.StorageConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, config.DriverMemory, s.Driver)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestOpenStore_SQLiteMigrates(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "bears.db")

	s, err := OpenStore(ctx, config.StorageConfig{Driver: config.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Bears.Create(ctx, bears.Bear{ID: "b1", Name: "Juniper"}))

	got, err := s.Bears.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Juniper", got.Name)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), config.StorageConfig{Driver: "mongo"})
	assert.Error(t, err)
}

func TestNew_DefaultConfigServesBears(t *testing.T) {
	cfg := config.Default()

	a, err := New(context.Background(), &cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Store.Close()

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bears/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// sin credenciales configuradas el redeploy se rechaza
	rec = httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bears/update", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNew_BadRepoDir(t *testing.T) {
	cfg := config.Default()
	cfg.Deploy.RepoDir = filepath.Join(t.TempDir(), "missing")

	_, err := New(context.Background(), &cfg, logger.Nop())
	assert.Error(t, err)
}
