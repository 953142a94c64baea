// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

// Package reference serves the immutable dictionary tables: film genres and
// MPA content ratings.
//
// # Domain
//
// Both dictionaries are seeded by migrations and read-only at runtime.
package reference

// Genre is a film genre dictionary entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MpaRating is an MPA content-rating dictionary entry (age-suitability tag).
type MpaRating struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
