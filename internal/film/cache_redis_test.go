// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package film_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/film"
	"github.com/filmorate/filmorate/internal/platform/constants"
)

// newTestCache spins up an in-process Redis server and a cache bound to it.
func newTestCache(t *testing.T) (*film.RedisPopularCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return film.NewRedisPopularCache(client), server
}

/*
TestRedisPopularCache_MissReturnsNil verifies that an absent key is a clean
miss, not an error.
*/
func TestRedisPopularCache_MissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t)

	films, err := cache.Get(context.Background(), 10)

	require.NoError(t, err)
	assert.Nil(t, films)
}

/*
TestRedisPopularCache_RoundTrip verifies that a stored ranking comes back
intact and carries the TTL backstop.
*/
func TestRedisPopularCache_RoundTrip(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	ranking := []*film.Film{
		{ID: 2, Name: "Leader", Rate: 5, MPA: film.MpaRating{ID: 1, Name: "G"},
			Genres: []film.Genre{{ID: 1, Name: "Comedy"}}, Likes: []int64{300, 200}},
		{ID: 1, Name: "Runner-up", Rate: 3, Genres: []film.Genre{}, Likes: []int64{100}},
	}

	require.NoError(t, cache.Set(ctx, 10, ranking))

	cached, err := cache.Get(ctx, 10)
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, int64(2), cached[0].ID)
	assert.Equal(t, []int64{300, 200}, cached[0].Likes)
	assert.Equal(t, "Comedy", cached[0].Genres[0].Name)

	key := constants.RedisPrefixPopularFilms + "10"
	assert.Positive(t, server.TTL(key))

	// Past the TTL the entry degrades to a miss.
	server.FastForward(constants.PopularFilmsCacheTTL + time.Second)
	expired, err := cache.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, expired)
}

/*
TestRedisPopularCache_Invalidate verifies that every ranking key is dropped
while unrelated keys survive.
*/
func TestRedisPopularCache_Invalidate(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 5, []*film.Film{{ID: 1}}))
	require.NoError(t, cache.Set(ctx, 10, []*film.Film{{ID: 1}}))
	require.NoError(t, server.Set("unrelated:key", "survives"))

	require.NoError(t, cache.Invalidate(ctx))

	assert.False(t, server.Exists(constants.RedisPrefixPopularFilms+"5"))
	assert.False(t, server.Exists(constants.RedisPrefixPopularFilms+"10"))
	assert.True(t, server.Exists("unrelated:key"))

	films, err := cache.Get(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, films)
}
