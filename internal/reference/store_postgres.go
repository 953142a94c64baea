// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package reference

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmorate/filmorate/internal/platform/apperr"
	"github.com/filmorate/filmorate/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListGenres retrieves the full genre dictionary.

Returns:
  - []*Genre: Ordered by primary key ascending
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListGenres(context context.Context) ([]*Genre, error) {
	const query = `
		SELECT genre_id, genre_name
		FROM genres
		ORDER BY genre_id ASC;
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	var genres []*Genre
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, rows.Err()
}

/*
GetGenreByID fetches a single genre by its primary key.

Returns:
  - *Genre: The hydrated dictionary entry
  - error: apperr.NotFound if the key is absent
*/
func (repository *PostgresRepository) GetGenreByID(context context.Context, id int) (*Genre, error) {
	const query = `
		SELECT genre_id, genre_name
		FROM genres
		WHERE genre_id = $1;
	`

	g := &Genre{}
	err := repository.db.QueryRow(context, query, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Genre")
		}
		return nil, dberr.Wrap(err, "get_genre")
	}

	return g, nil
}

/*
ListMpaRatings retrieves the full MPA rating dictionary.

Returns:
  - []*MpaRating: Ordered by primary key ascending
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListMpaRatings(context context.Context) ([]*MpaRating, error) {
	const query = `
		SELECT mpa_id, mpa_name
		FROM mpa_ratings
		ORDER BY mpa_id ASC;
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_mpa_ratings")
	}
	defer rows.Close()

	var ratings []*MpaRating
	for rows.Next() {
		m := &MpaRating{}
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_mpa_rating")
		}
		ratings = append(ratings, m)
	}

	return ratings, rows.Err()
}

/*
GetMpaRatingByID fetches a single MPA rating by its primary key.

Returns:
  - *MpaRating: The hydrated dictionary entry
  - error: apperr.NotFound if the key is absent
*/
func (repository *PostgresRepository) GetMpaRatingByID(context context.Context, id int) (*MpaRating, error) {
	const query = `
		SELECT mpa_id, mpa_name
		FROM mpa_ratings
		WHERE mpa_id = $1;
	`

	m := &MpaRating{}
	err := repository.db.QueryRow(context, query, id).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("MPA rating")
		}
		return nil, dberr.Wrap(err, "get_mpa_rating")
	}

	return m, nil
}
