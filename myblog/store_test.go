package myblog

import (
	"path/filepath"
	"testing"
	"time"

	"alfredhub/store"
	"alfredhub/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend keeps the document in memory and counts writes.
type memBackend struct {
	db     types.Database
	writes int
}

func (m *memBackend) Load() (types.Database, error) {
	if m.db.Genres == nil {
		m.db.Genres = []types.Genre{}
	}
	if m.db.Articles == nil {
		m.db.Articles = []types.Article{}
	}
	return m.db, nil
}

func (m *memBackend) Save(db types.Database) error {
	m.db = db
	m.writes++
	return nil
}

func newTestStore(t *testing.T) (*Store, *memBackend) {
	t.Helper()
	backend := &memBackend{}
	s := NewStore(backend)
	return s, backend
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func floatPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestUpsertIsIdempotentByNormalizedURL(t *testing.T) {
	s, backend := newTestStore(t)

	a := types.Article{Genre: "AI", Title: "One", URL: "https://x.com/a"}
	require.NoError(t, s.UpsertArticles([]types.Article{a}))
	require.NoError(t, s.UpsertArticles([]types.Article{a}))

	assert.Len(t, backend.db.Articles, 1)
}

func TestUpsertCollapsesTrackingParamsAndFragments(t *testing.T) {
	s, backend := newTestStore(t)

	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "AI", Title: "One", URL: "https://x.com/a?utm_source=x#frag"},
		{Genre: "AI", Title: "Two", URL: "https://x.com/a"},
	}))

	require.Len(t, backend.db.Articles, 1)
	assert.Equal(t, "Two", backend.db.Articles[0].Title)
}

func TestUpsertMergesFieldByField(t *testing.T) {
	s, backend := newTestStore(t)

	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "AI", Title: "old", Snippet: "s", URL: "https://x.com/a"},
	}))
	require.NoError(t, s.UpsertArticles([]types.Article{
		{Title: "new", URL: "https://x.com/a"},
	}))

	require.Len(t, backend.db.Articles, 1)
	got := backend.db.Articles[0]
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "s", got.Snippet)
	assert.Equal(t, "AI", got.Genre)
}

func TestUpsertExplicitZeroScoreWins(t *testing.T) {
	s, backend := newTestStore(t)

	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "AI", Title: "a", URL: "https://x.com/a", Score: floatPtr(7)},
	}))
	require.NoError(t, s.UpsertArticles([]types.Article{
		{URL: "https://x.com/a", Score: floatPtr(0)},
	}))

	require.NotNil(t, backend.db.Articles[0].Score)
	assert.Equal(t, 0.0, *backend.db.Articles[0].Score)
}

func TestUpsertGeneratesIDAndFetchedAt(t *testing.T) {
	s, backend := newTestStore(t)
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "AI", Title: "a", URL: "https://x.com/a"},
	}))

	got := backend.db.Articles[0]
	assert.NotEmpty(t, got.ID)
	assert.True(t, got.FetchedAt.Equal(now))
}

func TestUpsertIsOneWritePerBatch(t *testing.T) {
	s, backend := newTestStore(t)

	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "AI", Title: "a", URL: "https://x.com/a"},
		{Genre: "AI", Title: "b", URL: "https://x.com/b"},
		{Genre: "AI", Title: "c", URL: "https://x.com/c"},
	}))

	assert.Equal(t, 1, backend.writes)
	assert.Len(t, backend.db.Articles, 3)
}

func TestTodaysFeedOrdersByGenreRankBeforeScore(t *testing.T) {
	s, backend := newTestStore(t)
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	backend.db.Genres = []types.Genre{
		{ID: "g1", Name: "A", Rank: 1},
		{ID: "g2", Name: "B", Rank: 2},
	}
	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "B", Title: "high score", URL: "https://x.com/b", Score: floatPtr(10)},
		{Genre: "A", Title: "low score", URL: "https://x.com/a", Score: floatPtr(1)},
	}))

	feed, err := s.TodaysFeed(25)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "A", feed[0].Genre)
	assert.Equal(t, "B", feed[1].Genre)
}

func TestTodaysFeedUnknownGenreSortsLast(t *testing.T) {
	s, backend := newTestStore(t)
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	backend.db.Genres = []types.Genre{{ID: "g1", Name: "A", Rank: 1}}
	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "Z", Title: "unknown", URL: "https://x.com/z", Score: floatPtr(100)},
		{Genre: "A", Title: "known", URL: "https://x.com/a"},
	}))

	feed, err := s.TodaysFeed(25)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "known", feed[0].Title)
	assert.Equal(t, "unknown", feed[1].Title)
}

func TestTodaysFeedBreaksTiesByScoreThenPublishedAt(t *testing.T) {
	s, backend := newTestStore(t)
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	backend.db.Genres = []types.Genre{{ID: "g1", Name: "A", Rank: 1}}
	older := now.Add(-3 * time.Hour)
	newer := now.Add(-1 * time.Hour)
	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "A", Title: "older high", URL: "https://x.com/1", Score: floatPtr(5), PublishedAt: timePtr(older)},
		{Genre: "A", Title: "newer high", URL: "https://x.com/2", Score: floatPtr(5), PublishedAt: timePtr(newer)},
		{Genre: "A", Title: "no score", URL: "https://x.com/3"},
	}))

	feed, err := s.TodaysFeed(25)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "newer high", feed[0].Title)
	assert.Equal(t, "older high", feed[1].Title)
	assert.Equal(t, "no score", feed[2].Title)
}

func TestTodaysFeedExcludesYesterday(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Date(2025, 9, 10, 0, 30, 0, 0, time.UTC)
	s.now = fixedClock(now)

	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "A", Title: "yesterday", URL: "https://x.com/y", FetchedAt: now.Add(-2 * time.Hour)},
		{Genre: "A", Title: "today", URL: "https://x.com/t", FetchedAt: now},
	}))

	feed, err := s.TodaysFeed(50)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "today", feed[0].Title)
}

func TestTodaysFeedClampsLimit(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	batch := make([]types.Article, 60)
	for i := range batch {
		batch[i] = types.Article{
			Genre: "A",
			Title: "a",
			URL:   "https://x.com/" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
		}
	}
	require.NoError(t, s.UpsertArticles(batch))

	feed, err := s.TodaysFeed(1000)
	require.NoError(t, err)
	assert.Len(t, feed, 50)

	feed, err = s.TodaysFeed(0)
	require.NoError(t, err)
	assert.Len(t, feed, 5)
}

func TestRecentArticlesWindowAndOrder(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "A", Title: "stale", URL: "https://x.com/1", FetchedAt: now.Add(-40 * time.Hour)},
		{Genre: "A", Title: "old", URL: "https://x.com/2", FetchedAt: now.Add(-20 * time.Hour)},
		{Genre: "A", Title: "fresh", URL: "https://x.com/3", FetchedAt: now.Add(-1 * time.Hour)},
	}))

	got, err := s.RecentArticles(36, 25)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "fresh", got[0].Title)
	assert.Equal(t, "old", got[1].Title)

	got, err = s.RecentArticles(36, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Title)
}

func TestAddGenreRejectsCaseInsensitiveDuplicate(t *testing.T) {
	s, backend := newTestStore(t)

	_, err := s.AddGenre(types.Genre{ID: "1", Name: "AI", Rank: 1})
	require.NoError(t, err)
	_, err = s.AddGenre(types.Genre{ID: "2", Name: "ai", Rank: 2})
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Len(t, backend.db.Genres, 1)
}

func TestGenresSortedByRank(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddGenre(types.Genre{ID: "1", Name: "Low", Rank: 9})
	require.NoError(t, err)
	_, err = s.AddGenre(types.Genre{ID: "2", Name: "High", Rank: 2})
	require.NoError(t, err)

	genres, err := s.Genres()
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "High", genres[0].Name)
}

func TestSeedDefaultGenresIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	seeded, err := s.SeedDefaultGenres()
	require.NoError(t, err)
	require.Len(t, seeded, 3)
	assert.Equal(t, "NBA", seeded[0].Name)
	assert.Equal(t, 1, seeded[0].Rank)
	assert.Equal(t, "Tech company IPO", seeded[1].Name)
	assert.Equal(t, "AI", seeded[2].Name)

	again, err := s.SeedDefaultGenres()
	require.NoError(t, err)
	assert.Len(t, again, 3)
	assert.Equal(t, seeded[0].ID, again[0].ID)
}

func TestUpdateGenreRankClampsAndTruncates(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AddGenre(types.Genre{ID: "1", Name: "AI", Rank: 3})
	require.NoError(t, err)

	g, err := s.UpdateGenreRank("1", 2.9)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rank)

	g, err = s.UpdateGenreRank("1", -4)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Rank)

	_, err = s.UpdateGenreRank("missing", 1)
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestDeleteGenreReportsRemoval(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AddGenre(types.Genre{ID: "1", Name: "AI", Rank: 1})
	require.NoError(t, err)

	removed, err := s.DeleteGenre("1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteGenre("1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSeedIngestListEndToEnd(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(store.NewFileBackend(filepath.Join(dir, "myblog-db.json")))
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	seeded, err := s.SeedDefaultGenres()
	require.NoError(t, err)
	require.Len(t, seeded, 3)

	require.NoError(t, s.UpsertArticles([]types.Article{
		{Genre: "AI", Title: "ai story", URL: "https://x.com/ai", Score: floatPtr(99)},
		{Genre: "NBA", Title: "nba story", URL: "https://x.com/nba", Score: floatPtr(1)},
	}))

	feed, err := s.TodaysFeed(25)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "nba story", feed[0].Title)
	assert.Equal(t, "ai story", feed[1].Title)
}

func TestMarkRefreshRequested(t *testing.T) {
	s, backend := newTestStore(t)
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	require.NoError(t, s.MarkRefreshRequested())
	assert.Equal(t, "2025-09-10T12:00:00Z", backend.db.LastRefreshRequestedAt)
}
