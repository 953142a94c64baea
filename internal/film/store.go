// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package film

import "context"

// # Film Data Access

// Repository defines the persistence contract for the film catalog.
type Repository interface {

	/*
		FindAll returns the whole catalog with genres and likes attached.

		Returns:
		  - []*Film: Ordered by film ID ascending
	*/
	FindAll(context context.Context) ([]*Film, error)

	/*
		Create persists a new film with its genre associations.

		Parameters:
		  - film: *Film (ID is populated from the sequence)
	*/
	Create(context context.Context, film *Film) error

	/*
		Update rewrites the film row and its genre associations.

		Returns:
		  - error: apperr.NotFound when the target row does not exist
	*/
	Update(context context.Context, film *Film) error

	/*
		FindByID returns a single film with genres and likes attached.

		Returns:
		  - error: apperr.NotFound if the ID is absent
	*/
	FindByID(context context.Context, id int64) (*Film, error)

	/*
		AddLike records that a user likes a film and refreshes the rate column.

		Returns:
		  - error: apperr.Conflict if the like already exists
	*/
	AddLike(context context.Context, filmID, userID int64) error

	/*
		DeleteLike removes a user's like and refreshes the rate column.

		Returns:
		  - error: apperr.Conflict if no like exists to remove
	*/
	DeleteLike(context context.Context, filmID, userID int64) error

	/*
		MostPopular returns up to count films ranked by like count descending.
		Ties are broken by ascending film ID so the ranking is deterministic.
	*/
	MostPopular(context context.Context, count int) ([]*Film, error)

	/*
		SearchByTitle returns films whose name contains the query,
		case-insensitively, ordered by film ID ascending.
	*/
	SearchByTitle(context context.Context, query string) ([]*Film, error)

	/*
		UpdateRate recomputes the film's rate column from the like rows.
	*/
	UpdateRate(context context.Context, filmID int64) error
}
