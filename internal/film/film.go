// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

// Package film owns the film catalog: CRUD, user likes, the derived
// popularity ranking, and title search.
//
// # Domain
//
// A film carries one MPA rating, zero or more genres, and a set of like
// rows (one per user). Popularity is the like count; the rate column is
// recomputed from it inside every like mutation so the two never drift.
package film

import "time"

// EarliestReleaseDate is the lower bound for film release dates. Cinema was
// born on 1895-12-28 (the Lumiere brothers' first public screening).
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

const (
	// MaxDescriptionLen bounds the film description in Unicode characters.
	MaxDescriptionLen = 200

	// DefaultPopularCount is how many films the popularity ranking returns
	// when the caller does not specify a count.
	DefaultPopularCount = 10
)

// Genre is a film's genre association (dictionary row embedded in the film).
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MpaRating is a film's MPA content rating (dictionary row, exactly one per film).
type MpaRating struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Film is a catalog entry with its attached associations.
type Film struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"releaseDate"`
	Duration    int       `json:"duration"` // minutes
	Rate        int       `json:"rate"`     // derived like count, see UpdateRate
	MPA         MpaRating `json:"mpa"`
	Genres      []Genre   `json:"genres"`
	Likes       []int64   `json:"likes"` // user IDs, descending
}

// LikeCount returns the film's popularity score.
func (film *Film) LikeCount() int {
	return len(film.Likes)
}
