package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/wallcheck/pkg/report"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

func newReport(hash string, created time.Time, unsafe ...int) *report.Report {
	r := &report.Report{
		ID:            hash + "-id",
		BlueprintHash: hash,
		EntityCount:   10,
		Unsafe:        []report.EntityRef{},
		Order:         "lifo",
		CreatedAt:     created.UTC(),
	}
	for _, n := range unsafe {
		r.Unsafe = append(r.Unsafe, report.EntityRef{Number: n, Name: "transport-belt", Position: spatial.Position{X: 0.5, Y: 0.5}, Direction: "north"})
	}
	return r
}

// exercise runs the contract every backend must satisfy.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	older := newReport("a", base, 3, 7)
	newer := newReport("b", base.Add(time.Minute))
	require.NoError(t, s.Save(ctx, older))
	require.NoError(t, s.Save(ctx, newer))

	got, err := s.Get(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, got.UnsafeNumbers())
	assert.True(t, got.CreatedAt.Equal(older.CreatedAt))

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	list, err = s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	older.Label = "relabelled"
	require.NoError(t, s.Save(ctx, older))
	got, err = s.Get(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "relabelled", got.Label)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "reports.db"))
	require.NoError(t, err)
	defer s.Close()

	exercise(t, s)
}

func TestSQLiteStorePrune(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, newReport("old", base)))
	require.NoError(t, s.Save(ctx, newReport("new", base.Add(48*time.Hour))))

	n, err := s.Prune(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Get(ctx, "old-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, newReport("kept", time.Now())))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Get(ctx, "kept-id")
	assert.NoError(t, err)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("WALLCHECK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("WALLCHECK_TEST_MONGO_URI not set")
	}
	db := "wallcheck_test_" + time.Now().Format("20060102150405")
	s, err := OpenMongo(context.Background(), MongoConfig{URI: uri, Database: db})
	require.NoError(t, err)
	defer func() {
		_ = s.client.Database(db).Drop(context.Background())
		s.Close()
	}()

	exercise(t, s)
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	var s Store = NullStore{}

	require.NoError(t, s.Save(ctx, newReport("x", time.Now())))
	_, err := s.Get(ctx, "x-id")
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := s.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, NullStore{}, s)

	s, err = Open(ctx, Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "r.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Backend: "postgres"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
