// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package film_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/film"
	"github.com/filmorate/filmorate/internal/platform/apperr"
	"github.com/filmorate/filmorate/internal/user"
	"github.com/filmorate/filmorate/pkg/slice"
)

// fakeRepository is an in-memory [film.Repository] mirroring the SQL
// implementation's ordering and conflict rules.
type fakeRepository struct {
	nextID       int64
	films        map[int64]*film.Film
	popularCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{films: make(map[int64]*film.Film)}
}

func (f *fakeRepository) FindAll(_ context.Context) ([]*film.Film, error) {
	films := f.sorted(func(a, b *film.Film) bool { return a.ID < b.ID })
	return films, nil
}

func (f *fakeRepository) Create(_ context.Context, entity *film.Film) error {
	f.nextID++
	entity.ID = f.nextID

	stored := *entity
	stored.Likes = []int64{}
	f.films[stored.ID] = &stored
	return nil
}

func (f *fakeRepository) Update(_ context.Context, entity *film.Film) error {
	existing, ok := f.films[entity.ID]
	if !ok {
		return apperr.NotFound("Film")
	}

	stored := *entity
	stored.Likes = existing.Likes
	stored.Rate = existing.Rate
	f.films[stored.ID] = &stored
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*film.Film, error) {
	entity, ok := f.films[id]
	if !ok {
		return nil, apperr.NotFound("Film")
	}
	return entity, nil
}

func (f *fakeRepository) AddLike(_ context.Context, filmID, userID int64) error {
	entity := f.films[filmID]
	for _, liker := range entity.Likes {
		if liker == userID {
			return apperr.Conflict("duplicate like")
		}
	}

	entity.Likes = append(entity.Likes, userID)
	entity.Rate = len(entity.Likes)
	return nil
}

func (f *fakeRepository) DeleteLike(_ context.Context, filmID, userID int64) error {
	entity := f.films[filmID]
	for index, liker := range entity.Likes {
		if liker == userID {
			entity.Likes = append(entity.Likes[:index], entity.Likes[index+1:]...)
			entity.Rate = len(entity.Likes)
			return nil
		}
	}
	return apperr.Conflict("no like to remove")
}

func (f *fakeRepository) MostPopular(_ context.Context, count int) ([]*film.Film, error) {
	f.popularCalls++

	films := f.sorted(func(a, b *film.Film) bool {
		if a.LikeCount() != b.LikeCount() {
			return a.LikeCount() > b.LikeCount()
		}
		return a.ID < b.ID
	})

	if len(films) > count {
		films = films[:count]
	}
	return films, nil
}

func (f *fakeRepository) SearchByTitle(_ context.Context, query string) ([]*film.Film, error) {
	films := f.sorted(func(a, b *film.Film) bool { return a.ID < b.ID })

	matched := slice.Filter(films, func(entity *film.Film) bool {
		return strings.Contains(strings.ToLower(entity.Name), strings.ToLower(query))
	})
	return matched, nil
}

func (f *fakeRepository) UpdateRate(_ context.Context, filmID int64) error {
	entity, ok := f.films[filmID]
	if !ok {
		return apperr.NotFound("Film")
	}
	entity.Rate = len(entity.Likes)
	return nil
}

func (f *fakeRepository) sorted(less func(a, b *film.Film) bool) []*film.Film {
	films := make([]*film.Film, 0, len(f.films))
	for _, entity := range f.films {
		films = append(films, entity)
	}
	sort.Slice(films, func(i, j int) bool { return less(films[i], films[j]) })
	return films
}

// fakeUserDirectory answers existence checks for like authors.
type fakeUserDirectory struct {
	users map[int64]*user.User
}

func (f *fakeUserDirectory) FindByID(_ context.Context, id int64) (*user.User, error) {
	entity, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return entity, nil
}

// fakeCache is an in-memory [film.PopularCache] with call counters.
type fakeCache struct {
	entries       map[int][]*film.Film
	sets          int
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int][]*film.Film)}
}

func (f *fakeCache) Get(_ context.Context, count int) ([]*film.Film, error) {
	return f.entries[count], nil
}

func (f *fakeCache) Set(_ context.Context, count int, films []*film.Film) error {
	f.sets++
	f.entries[count] = films
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context) error {
	f.invalidations++
	f.entries = make(map[int][]*film.Film)
	return nil
}

// testHarness bundles the service with its fakes.
type testHarness struct {
	service *film.Service
	repo    *fakeRepository
	cache   *fakeCache
	users   *fakeUserDirectory
}

func newTestHarness() *testHarness {
	repo := newFakeRepository()
	cache := newFakeCache()
	users := &fakeUserDirectory{users: map[int64]*user.User{
		100: {ID: 100, Login: "alice"},
		200: {ID: 200, Login: "bob"},
		300: {ID: 300, Login: "carol"},
	}}

	return &testHarness{
		service: film.NewService(repo, users, cache),
		repo:    repo,
		cache:   cache,
		users:   users,
	}
}

// newTestFilm builds a valid film payload for creation.
func newTestFilm(name string) *film.Film {
	return &film.Film{
		Name:        name,
		Description: "A test picture",
		ReleaseDate: time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC),
		Duration:    136,
		MPA:         film.MpaRating{ID: 3},
	}
}

/*
TestService_Create verifies that a valid film gets an ID assigned and comes
back hydrated.
*/
func TestService_Create(t *testing.T) {
	h := newTestHarness()

	created, err := h.service.Create(context.Background(), newTestFilm("The Matrix"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "The Matrix", created.Name)
	assert.Empty(t, created.Likes)
}

/*
TestService_Create_Validation covers every boundary rule for film payloads.
*/
func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*film.Film)
	}{
		{"blank_name", func(f *film.Film) { f.Name = "  " }},
		{"description_too_long", func(f *film.Film) {
			f.Description = strings.Repeat("x", film.MaxDescriptionLen+1)
		}},
		{"release_before_cinema", func(f *film.Film) {
			f.ReleaseDate = time.Date(1895, time.December, 27, 0, 0, 0, 0, time.UTC)
		}},
		{"zero_duration", func(f *film.Film) { f.Duration = 0 }},
		{"negative_duration", func(f *film.Film) { f.Duration = -5 }},
		{"missing_mpa", func(f *film.Film) { f.MPA = film.MpaRating{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness()
			invalid := newTestFilm("Broken")
			tt.mutate(invalid)

			_, err := h.service.Create(context.Background(), invalid)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_Update_NotFound verifies the full-row replace rejects unknown IDs.
*/
func TestService_Update_NotFound(t *testing.T) {
	h := newTestHarness()
	missing := newTestFilm("Ghost")
	missing.ID = 42

	_, err := h.service.Update(context.Background(), missing)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_PopularityRanking verifies the ordering: like count descending,
ties broken by ascending film ID, truncated to the requested count.
*/
func TestService_PopularityRanking(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third", "Fourth"} {
		_, err := h.service.Create(ctx, newTestFilm(name))
		require.NoError(t, err)
	}

	// Film 2 leads with two likes; films 1 and 3 tie on one like each.
	require.NoError(t, h.service.AddLike(ctx, 2, 100))
	require.NoError(t, h.service.AddLike(ctx, 2, 200))
	require.NoError(t, h.service.AddLike(ctx, 1, 300))
	require.NoError(t, h.service.AddLike(ctx, 3, 100))

	ranked, err := h.service.MostPopular(ctx, 3)

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, int64(2), ranked[0].ID)
	assert.Equal(t, int64(1), ranked[1].ID) // tie with film 3, lower ID wins
	assert.Equal(t, int64(3), ranked[2].ID)
}

/*
TestService_MostPopular_CountGuard rejects non-positive counts.
*/
func TestService_MostPopular_CountGuard(t *testing.T) {
	h := newTestHarness()

	_, err := h.service.MostPopular(context.Background(), 0)

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_MostPopular_CacheRoundTrip verifies the cache is populated on a
miss, served on a hit, and dropped by like mutations.
*/
func TestService_MostPopular_CacheRoundTrip(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.service.Create(ctx, newTestFilm("Cached"))
	require.NoError(t, err)

	// Miss populates the cache.
	_, err = h.service.MostPopular(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, h.repo.popularCalls)
	assert.Equal(t, 1, h.cache.sets)

	// Hit skips the repository.
	_, err = h.service.MostPopular(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, h.repo.popularCalls)

	// A like mutation drops the cached ranking.
	require.NoError(t, h.service.AddLike(ctx, 1, 100))
	assert.Equal(t, 1, h.cache.invalidations)

	_, err = h.service.MostPopular(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, h.repo.popularCalls)
}

/*
TestService_LikeGuards covers conflicts and existence checks on like
mutations.
*/
func TestService_LikeGuards(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.service.Create(ctx, newTestFilm("Liked"))
	require.NoError(t, err)

	// Absent film and absent user are NotFound.
	err = h.service.AddLike(ctx, 42, 100)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	err = h.service.AddLike(ctx, 1, 999)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// A repeated like is a Conflict, and the rate tracks the like count.
	require.NoError(t, h.service.AddLike(ctx, 1, 100))
	err = h.service.AddLike(ctx, 1, 100)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	stored, err := h.service.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Rate)

	// Removing twice conflicts on the second attempt.
	require.NoError(t, h.service.DeleteLike(ctx, 1, 100))
	err = h.service.DeleteLike(ctx, 1, 100)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	stored, err = h.service.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Rate)
}

/*
TestService_SearchByTitle verifies the case-insensitive substring match and
the blank-query guard.
*/
func TestService_SearchByTitle(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	for _, name := range []string{"The Matrix", "The Matrix Reloaded", "Alien"} {
		_, err := h.service.Create(ctx, newTestFilm(name))
		require.NoError(t, err)
	}

	matched, err := h.service.SearchByTitle(ctx, "matrix")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "The Matrix", matched[0].Name)
	assert.Equal(t, "The Matrix Reloaded", matched[1].Name)

	_, err = h.service.SearchByTitle(ctx, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
