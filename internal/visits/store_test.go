package visits

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), MemoryPath, "pepper")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	t.Parallel()

	a := HashIP("203.0.113.7", "pepper")
	assert.Len(t, a, hashLen)
	assert.Equal(t, a, HashIP("203.0.113.7", "pepper"), "hash must be stable")
	assert.NotEqual(t, a, HashIP("203.0.113.7", "salt"), "salt must change the hash")
	assert.NotEqual(t, a, HashIP("203.0.113.8", "pepper"))
	assert.NotContains(t, a, "203")
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "  ", "")
	assert.ErrorIs(t, err, ErrOpen)

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "v.db"), "")
	assert.ErrorIs(t, err, ErrOpen)
}

func TestStore_Stats(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()
	today := time.Now().UTC()
	old := today.AddDate(0, 0, -30)

	visits := []Visit{
		{IP: "10.0.0.1", Path: "/", At: today},
		{IP: "10.0.0.1", Path: "/", At: today},
		{IP: "10.0.0.2", Path: "/", At: today},
		{IP: "10.0.0.2", Path: "/portfolio.pdf", At: today},
		{IP: "10.0.0.3", Path: "/", At: old},
	}
	for _, v := range visits {
		require.NoError(t, s.Record(ctx, v))
	}

	st, err := s.Stats(ctx, 7)
	require.NoError(t, err)

	assert.EqualValues(t, 5, st.Total)
	assert.EqualValues(t, 3, st.Unique)
	assert.Equal(t, []PathCount{{"/", 4}, {"/portfolio.pdf", 1}}, st.Paths)
	assert.Equal(t, []DayCount{{today.Format(dayLayout), 4}}, st.Days)

	all, err := s.Stats(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all.Days, 2)
	assert.Equal(t, old.Format(dayLayout), all.Days[0].Day)
}

func TestStore_Empty(t *testing.T) {
	t.Parallel()

	st, err := openTestStore(t).Stats(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, st.Total)
	assert.NotNil(t, st.Paths)
	assert.NotNil(t, st.Days)
}

func TestStore_NoRawIP(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, Visit{IP: "198.51.100.20", UserAgent: "ua", Path: "/"}))

	var stored string
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT hashed_ip FROM visits`).Scan(&stored))
	assert.Equal(t, HashIP("198.51.100.20", "pepper"), stored)
}

func TestStore_Persists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "visits.db")
	ctx := context.Background()

	s, err := Open(ctx, path, "x")
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, Visit{IP: "1.1.1.1", Path: "/"}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, "x")
	require.NoError(t, err)
	defer s.Close()

	st, err := s.Stats(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.Total)
}

func TestStore_Concurrent(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Record(ctx, Visit{IP: string(rune('a' + i%4)), Path: "/"}))
		}()
	}
	wg.Wait()

	st, err := s.Stats(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 20, st.Total)
	assert.EqualValues(t, 4, st.Unique)
}

func TestStore_ClosedErrors(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), MemoryPath, "")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Record(context.Background(), Visit{IP: "x"})
	assert.True(t, errors.Is(err, ErrRecord))
	_, err = s.Stats(context.Background(), 1)
	assert.ErrorIs(t, err, ErrQuery)
}
