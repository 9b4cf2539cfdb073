// Package myblog implements the article store behind the personal news
// feed: user-ranked genres, URL-deduplicated article upserts, and the two
// query paths (today's ranked feed and a sliding recency window).
package myblog

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"alfredhub/config"
	"alfredhub/store"
	"alfredhub/types"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateName reports a case-insensitive genre name collision.
	// Callers that want the original silent no-op can ignore it.
	ErrDuplicateName = errors.New("genre name already exists")

	// ErrGenreNotFound reports an unknown genre id.
	ErrGenreNotFound = errors.New("genre not found")
)

// unknownGenreRank sorts articles with an unrecognized genre after every
// recognized one.
const unknownGenreRank = math.MaxInt32

// Store provides genre ranking and article ingestion/query over a storage
// backend. Each operation is one full read-modify-write cycle; concurrent
// writers race (last write wins).
type Store struct {
	backend store.Backend
	now     func() time.Time
}

// NewStore creates a Store over the given backend.
func NewStore(backend store.Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// Genres returns all genres sorted ascending by rank.
func (s *Store) Genres() ([]types.Genre, error) {
	db, err := s.backend.Load()
	if err != nil {
		return nil, err
	}
	sortGenres(db.Genres)
	return db.Genres, nil
}

// SeedDefaultGenres inserts the fixed default genres when the store has
// none. Idempotent: any existing genre makes it a no-op.
func (s *Store) SeedDefaultGenres() ([]types.Genre, error) {
	db, err := s.backend.Load()
	if err != nil {
		return nil, err
	}
	if len(db.Genres) > 0 {
		return db.Genres, nil
	}

	for i, name := range config.DefaultGenres {
		db.Genres = append(db.Genres, types.Genre{
			ID:   uuid.NewString(),
			Name: name,
			Rank: i + 1,
		})
	}
	if err := s.backend.Save(db); err != nil {
		return nil, err
	}
	return db.Genres, nil
}

// AddGenre appends a genre unless a case-insensitive name match exists, in
// which case nothing is written and ErrDuplicateName is returned.
func (s *Store) AddGenre(g types.Genre) (types.Genre, error) {
	db, err := s.backend.Load()
	if err != nil {
		return types.Genre{}, err
	}

	for _, existing := range db.Genres {
		if strings.EqualFold(existing.Name, g.Name) {
			return existing, ErrDuplicateName
		}
	}

	db.Genres = append(db.Genres, g)
	sortGenres(db.Genres)
	if err := s.backend.Save(db); err != nil {
		return types.Genre{}, err
	}
	return g, nil
}

// UpdateGenreRank sets a genre's rank, clamped to a minimum of 1 and
// truncated to an integer. Returns ErrGenreNotFound for an unknown id.
func (s *Store) UpdateGenreRank(id string, rank float64) (types.Genre, error) {
	db, err := s.backend.Load()
	if err != nil {
		return types.Genre{}, err
	}

	idx := -1
	for i := range db.Genres {
		if db.Genres[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return types.Genre{}, ErrGenreNotFound
	}

	db.Genres[idx].Rank = clampRank(rank)
	updated := db.Genres[idx]
	sortGenres(db.Genres)
	if err := s.backend.Save(db); err != nil {
		return types.Genre{}, err
	}
	return updated, nil
}

// DeleteGenre removes a genre by id and reports whether anything was
// removed. An absent id is a no-op. Articles referencing the genre by name
// are left untouched.
func (s *Store) DeleteGenre(id string) (bool, error) {
	db, err := s.backend.Load()
	if err != nil {
		return false, err
	}

	kept := db.Genres[:0]
	for _, g := range db.Genres {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	removed := len(kept) != len(db.Genres)
	db.Genres = kept
	if err := s.backend.Save(db); err != nil {
		return false, err
	}
	return removed, nil
}

// UpsertArticles merges a batch into the store, deduplicating by normalized
// URL. On a match, incoming fields overwrite stored ones only when present;
// fetchedAt falls back to the current time. The whole batch is one store
// write: it either fully applies or fully fails.
func (s *Store) UpsertArticles(incoming []types.Article) error {
	db, err := s.backend.Load()
	if err != nil {
		return err
	}

	byURL := make(map[string]int, len(db.Articles))
	for i, a := range db.Articles {
		byURL[NormalizeURL(a.URL)] = i
	}

	now := s.now()
	for _, in := range incoming {
		key := NormalizeURL(in.URL)
		if i, ok := byURL[key]; ok {
			mergeArticle(&db.Articles[i], in, now)
			continue
		}

		a := in
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.FetchedAt.IsZero() {
			a.FetchedAt = now
		}
		db.Articles = append(db.Articles, a)
		byURL[key] = len(db.Articles) - 1
	}

	return s.backend.Save(db)
}

// mergeArticle overwrites stored fields with incoming ones that are present.
// An explicit score (even 0) wins; an absent score keeps the stored value.
func mergeArticle(existing *types.Article, in types.Article, now time.Time) {
	if in.Title != "" {
		existing.Title = in.Title
	}
	if in.Subtitle != "" {
		existing.Subtitle = in.Subtitle
	}
	if in.Snippet != "" {
		existing.Snippet = in.Snippet
	}
	if in.ImageURL != "" {
		existing.ImageURL = in.ImageURL
	}
	if in.Source != "" {
		existing.Source = in.Source
	}
	if in.Genre != "" {
		existing.Genre = in.Genre
	}
	if in.PublishedAt != nil {
		existing.PublishedAt = in.PublishedAt
	}
	if in.Score != nil {
		existing.Score = in.Score
	}
	if !in.FetchedAt.IsZero() {
		existing.FetchedAt = in.FetchedAt
	} else {
		existing.FetchedAt = now
	}
}

// TodaysFeed returns articles fetched on the current UTC calendar day,
// ordered by genre priority, then score descending, then publishedAt
// descending. The result is capped to clamp(limit, 5, 50). Articles whose
// genre is not in the ranking are kept but sort last.
func (s *Store) TodaysFeed(limit int) ([]types.Article, error) {
	db, err := s.backend.Load()
	if err != nil {
		return nil, err
	}

	sortGenres(db.Genres)
	position := make(map[string]int, len(db.Genres))
	for i, g := range db.Genres {
		if _, ok := position[g.Name]; !ok {
			position[g.Name] = i
		}
	}

	today := s.now().UTC()
	todays := make([]types.Article, 0, len(db.Articles))
	for _, a := range db.Articles {
		if sameUTCDay(a.FetchedAt, today) {
			todays = append(todays, a)
		}
	}

	genrePos := func(name string) int {
		if p, ok := position[name]; ok {
			return p
		}
		return unknownGenreRank
	}
	sort.SliceStable(todays, func(i, j int) bool {
		pi, pj := genrePos(todays[i].Genre), genrePos(todays[j].Genre)
		if pi != pj {
			return pi < pj
		}
		si, sj := scoreOf(todays[i]), scoreOf(todays[j])
		if si != sj {
			return si > sj
		}
		return publishedAtOf(todays[i]).After(publishedAtOf(todays[j]))
	})

	if limit < config.MinListLimit {
		limit = config.MinListLimit
	}
	if limit > config.MaxListLimit {
		limit = config.MaxListLimit
	}
	if len(todays) > limit {
		todays = todays[:limit]
	}
	return todays, nil
}

// RecentArticles is the sliding-window query path: articles fetched within
// the last sinceHours, newest first, capped to limit. Distinct from
// TodaysFeed by design; callers depend on each independently.
func (s *Store) RecentArticles(sinceHours, limit int) ([]types.Article, error) {
	db, err := s.backend.Load()
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-time.Duration(sinceHours) * time.Hour)
	fresh := make([]types.Article, 0, len(db.Articles))
	for _, a := range db.Articles {
		if !a.FetchedAt.Before(cutoff) {
			fresh = append(fresh, a)
		}
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].FetchedAt.After(fresh[j].FetchedAt)
	})

	if limit < 0 {
		limit = 0
	}
	if len(fresh) > limit {
		fresh = fresh[:limit]
	}
	return fresh, nil
}

// MarkRefreshRequested stamps the document with the current time so clients
// can rate-limit their own refresh triggers.
func (s *Store) MarkRefreshRequested() error {
	db, err := s.backend.Load()
	if err != nil {
		return err
	}
	db.LastRefreshRequestedAt = s.now().UTC().Format(time.RFC3339)
	return s.backend.Save(db)
}

func sortGenres(genres []types.Genre) {
	sort.SliceStable(genres, func(i, j int) bool {
		return genres[i].Rank < genres[j].Rank
	})
}

func clampRank(rank float64) int {
	r := int(math.Floor(rank))
	if r < 1 {
		r = 1
	}
	return r
}

func sameUTCDay(t, day time.Time) bool {
	t = t.UTC()
	return t.Year() == day.Year() && t.Month() == day.Month() && t.Day() == day.Day()
}

func scoreOf(a types.Article) float64 {
	if a.Score == nil {
		return 0
	}
	return *a.Score
}

func publishedAtOf(a types.Article) time.Time {
	if a.PublishedAt == nil {
		return time.Time{}
	}
	return *a.PublishedAt
}
