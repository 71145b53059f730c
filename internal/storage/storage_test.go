package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-service/internal/config"
	"github.com/aanand-mishra/students-service/internal/types"
)

func roundTrip(t *testing.T, store StudentStore) {
	t.Helper()
	ctx := context.Background()

	saved, err := store.Save(ctx, types.Student{Name: "John", BirthDate: "2000-01-29", DNI: "12345678A"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Student{saved}, all)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Storage.Path = filepath.Join(t.TempDir(), "students.db")

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	roundTrip(t, store)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{}
	cfg.Storage.Driver = config.DriverRedis
	cfg.Storage.Redis.Addr = mr.Addr()

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	roundTrip(t, store)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = "mongo"

	_, err := Open(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown driver")
}
