package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-service/internal/types"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "data", "students.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSave_AssignsIncreasingIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, types.Student{Name: "John", BirthDate: "2000-01-29", DNI: "12345678A"})
	require.NoError(t, err)
	second, err := s.Save(ctx, types.Student{Name: "John", BirthDate: "2000-01-29", DNI: "12345678A"})
	require.NoError(t, err)

	assert.Greater(t, first.ID, int64(0))
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, "John", second.Name)
}

func TestSave_IgnoresInputID(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.Save(context.Background(), types.Student{ID: 99, Name: "Alice", BirthDate: "1999-05-01", DNI: "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
}

func TestFindAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	names := []string{"Ana", "Bruno", "Carla"}
	for _, n := range names {
		_, err := s.Save(ctx, types.Student{Name: n, BirthDate: "2001-02-03", DNI: n + "-dni"})
		require.NoError(t, err)
	}

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, st := range all {
		assert.Equal(t, names[i], st.Name)
		assert.Equal(t, "2001-02-03", st.BirthDate)
		assert.Equal(t, names[i]+"-dni", st.DNI)
		assert.Equal(t, int64(i+1), st.ID)
	}
}

func TestNew_ReopensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.db")

	s, err := New(path)
	require.NoError(t, err)
	_, err = s.Save(context.Background(), types.Student{Name: "Ana", BirthDate: "2001-02-03", DNI: "1"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
