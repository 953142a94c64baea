// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package film

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/filmorate/filmorate/internal/platform/constants"
)

// PopularCache caches the popularity ranking per requested count.
//
// A nil film slice from Get means a cache miss. Implementations must treat
// all failures as their own errors; the caller decides whether a cache
// failure is fatal (it is not, see [Service.MostPopular]).
type PopularCache interface {
	Get(context context.Context, count int) ([]*Film, error)
	Set(context context.Context, count int, films []*Film) error
	Invalidate(context context.Context) error
}

// RedisPopularCache implements [PopularCache] on Redis with a TTL backstop.
type RedisPopularCache struct {
	client *redis.Client
}

// NewRedisPopularCache creates a new Redis-backed [PopularCache].
func NewRedisPopularCache(client *redis.Client) *RedisPopularCache {
	return &RedisPopularCache{client: client}
}

// popularKey builds the cache key for a ranking of the given length.
func popularKey(count int) string {
	return fmt.Sprintf("%s%d", constants.RedisPrefixPopularFilms, count)
}

/*
Get retrieves a cached ranking for the given count.

Returns:
  - []*Film: The cached ranking, or nil on a cache miss
  - error: Connectivity or decoding failures
*/
func (cache *RedisPopularCache) Get(context context.Context, count int) ([]*Film, error) {
	payload, err := cache.client.Get(context, popularKey(count)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_popular_get_failed: %w", err)
	}

	var films []*Film
	if err := json.Unmarshal(payload, &films); err != nil {
		return nil, fmt.Errorf("redis_popular_decode_failed: %w", err)
	}

	return films, nil
}

/*
Set stores a ranking for the given count with the standard TTL.

Returns:
  - error: Encoding or storage failures
*/
func (cache *RedisPopularCache) Set(context context.Context, count int, films []*Film) error {
	payload, err := json.Marshal(films)
	if err != nil {
		return fmt.Errorf("redis_popular_encode_failed: %w", err)
	}

	err = cache.client.Set(context, popularKey(count), payload,
		constants.PopularFilmsCacheTTL).Err()
	if err != nil {
		return fmt.Errorf("redis_popular_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops every cached ranking, whatever its count.

Description: Scans for the popularity prefix instead of KEYS so a large
keyspace never blocks the server.

Returns:
  - error: Scan or deletion failures
*/
func (cache *RedisPopularCache) Invalidate(context context.Context) error {
	iterator := cache.client.Scan(context, 0,
		constants.RedisPrefixPopularFilms+"*", 0).Iterator()

	for iterator.Next(context) {
		if err := cache.client.Del(context, iterator.Val()).Err(); err != nil {
			return fmt.Errorf("redis_popular_invalidate_failed: %w", err)
		}
	}

	if err := iterator.Err(); err != nil {
		return fmt.Errorf("redis_popular_scan_failed: %w", err)
	}

	return nil
}
