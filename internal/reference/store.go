// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package reference

import "context"

// # Dictionary Data Access

// Repository defines the read-only access contract for the dictionaries.
type Repository interface {

	/*
		ListGenres returns all genres ordered by ID ascending.
	*/
	ListGenres(context context.Context) ([]*Genre, error)

	/*
		GetGenreByID returns a single genre.

		Returns:
		  - *Genre: The dictionary entry
		  - error: apperr.NotFound if the key is absent
	*/
	GetGenreByID(context context.Context, id int) (*Genre, error)

	/*
		ListMpaRatings returns all MPA ratings ordered by ID ascending.
	*/
	ListMpaRatings(context context.Context) ([]*MpaRating, error)

	/*
		GetMpaRatingByID returns a single MPA rating.

		Returns:
		  - *MpaRating: The dictionary entry
		  - error: apperr.NotFound if the key is absent
	*/
	GetMpaRatingByID(context context.Context, id int) (*MpaRating, error)
}
