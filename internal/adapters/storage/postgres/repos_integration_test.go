//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"bear-tracker/internal/domain/bears"
	"bear-tracker/internal/domain/sightings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres levanta un Postgres 16 con testcontainers, o usa TEST_PG_DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("TEST_PG_DSN"); dsn != "" {
		return dsn
	}

	ctx := context.Background()
	c, err := tcpg.Run(ctx,
		"postgres:16",
		tcpg.WithDatabase("bears"),
		tcpg.WithUsername("ranger"),
		tcpg.WithPassword("ranger"),
		tcpg.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestRepos_Postgres(t *testing.T) {
	dsn := startPostgres(t)

	db, err := Open(dsn)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, EnsureSchema(ctx, db))
	require.NoError(t, EnsureSchema(ctx, db))
	_, err = db.ExecContext(ctx, `TRUNCATE sightings, bears`)
	require.NoError(t, err)

	br := NewBearsRepo(db)
	sr := NewSightingsRepo(db)

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	capture := time.Date(2023, 9, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, br.Create(ctx, bears.Bear{
		ID: "b1", Name: "Juniper", Sex: "F", EarApplied: "Left",
		CaptureDate: &capture, CreatedAt: t0, UpdatedAt: t0,
	}))
	require.NoError(t, br.Create(ctx, bears.Bear{
		ID: "b2", Name: "Boulder", Sex: "M", EarApplied: "Right",
		CreatedAt: t0.Add(time.Minute), UpdatedAt: t0,
	}))

	all, err := br.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b1", all[0].ID)
	require.NotNil(t, all[0].CaptureDate)
	assert.True(t, capture.Equal(all[0].CaptureDate.UTC()))

	_, err = br.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, bears.ErrNotFound)

	lat := 48.7
	require.NoError(t, sr.Create(ctx, sightings.Sighting{ID: "s2", BearID: "b1", SeenAt: t0.Add(time.Hour), CreatedAt: t0}))
	require.NoError(t, sr.Create(ctx, sightings.Sighting{ID: "s1", BearID: "b1", SeenAt: t0, Latitude: &lat, CreatedAt: t0}))
	require.NoError(t, sr.Create(ctx, sightings.Sighting{ID: "s3", BearID: "b2", SeenAt: t0, CreatedAt: t0}))

	err = sr.Create(ctx, sightings.Sighting{ID: "s4", BearID: "ghost", SeenAt: t0, CreatedAt: t0})
	assert.ErrorIs(t, err, sightings.ErrUnknownBear)

	got, err := sr.ListByBear(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ID)
	require.NotNil(t, got[0].Latitude)
	assert.InDelta(t, 48.7, *got[0].Latitude, 1e-9)
	assert.Nil(t, got[0].Longitude)
}
