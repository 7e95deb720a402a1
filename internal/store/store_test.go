package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, Migrate(path))
	require.NoError(t, Migrate(path))
}

func TestMigrationsReachLatestVersion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTest(t)

	var version int
	var dirty bool
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty))
	require.Equal(t, 2, version)
	require.False(t, dirty)

	// rows written with only the original columns read back as not mailed
	_, err := s.DB().ExecContext(ctx, `
		INSERT INTO messages (id, name, email, body, created_at) VALUES ('legacy', 'Old', 'old@example.com', 'hi', 1)
	`)
	require.NoError(t, err)
	msgs, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "legacy", msgs[0].ID)
	require.Empty(t, msgs[0].Subject)
	require.False(t, msgs[0].Delivered)
}

func TestVisitsRoundTripAndPrune(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTest(t)

	old := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "aa", Path: "/", Timestamp: old}))
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "bb", Path: "/projects", UserAgent: "curl", Timestamp: recent}))

	visits, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	require.Equal(t, "/projects", visits[0].Path)
	require.Equal(t, "curl", visits[0].UserAgent)
	require.True(t, recent.Equal(visits[0].Timestamp))

	n, err := s.PruneVisitors(ctx, recent.AddDate(-1, 0, 0))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	visits, err = s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
}

func TestMessages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTest(t)

	first, err := s.SaveMessage(ctx, Message{Name: "Ada", Email: "ada@example.com", Body: "hello", CreatedAt: time.Unix(100, 0)})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := s.SaveMessage(ctx, Message{Name: "Bob", Email: "bob@example.com", Subject: "hi", Body: "there", CreatedAt: time.Unix(200, 0)})
	require.NoError(t, err)
	require.NoError(t, s.MarkDelivered(ctx, second.ID))

	msgs, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, second.ID, msgs[0].ID)
	require.True(t, msgs[0].Delivered)
	require.False(t, msgs[1].Delivered)
	require.Equal(t, "hello", msgs[1].Body)

	require.NoError(t, s.DeleteMessage(ctx, first.ID))
	require.ErrorIs(t, s.DeleteMessage(ctx, first.ID), ErrNotFound)
	require.ErrorIs(t, s.MarkDelivered(ctx, "missing"), ErrNotFound)
}

func TestStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTest(t)

	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
	for _, v := range []Visit{
		{HashedIP: "a", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "a", Path: "/", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "b", Path: "/projects", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "c", Path: "/", Timestamp: now.Add(-30 * 24 * time.Hour)},
	} {
		require.NoError(t, s.RecordVisit(ctx, v))
	}
	_, err := s.SaveMessage(ctx, Message{Name: "n", Email: "e@example.com", Body: "b"})
	require.NoError(t, err)

	st, err := s.Stats(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 4, st.TotalVisitors)
	require.EqualValues(t, 3, st.UniqueVisitors)
	require.EqualValues(t, 2, st.VisitorsToday)
	require.EqualValues(t, 3, st.VisitorsThisWeek)
	require.EqualValues(t, 1, st.TotalMessages)
	require.Equal(t, []PathStat{{Path: "/", Views: 3}, {Path: "/projects", Views: 1}}, st.TopPaths)
	require.Len(t, st.RecentVisitors, 4)
}
