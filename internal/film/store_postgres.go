// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package film

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmorate/filmorate/internal/platform/apperr"
	"github.com/filmorate/filmorate/internal/platform/dberr"
	"github.com/filmorate/filmorate/pkg/slice"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// filmColumns is the shared projection for film rows joined to their MPA rating.
const filmColumns = `
	f.film_id, f.film_name, f.description, f.release_date, f.duration, f.rate,
	m.mpa_id, m.mpa_name`

/*
FindAll retrieves the whole catalog with genres and likes batch-attached.

Description: Films and their MPA ratings come back in one query; genres and
likes are attached with two ANY($1) queries over the collected IDs instead of
2N follow-up round trips.

Returns:
  - []*Film: Ordered by film ID ascending
*/
func (repository *PostgresRepository) FindAll(context context.Context) ([]*Film, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM films f
		JOIN mpa_ratings m ON f.mpa_id = m.mpa_id
		ORDER BY f.film_id ASC;
	`, filmColumns)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_films")
	}
	defer rows.Close()

	films, err := collectFilms(rows)
	if err != nil {
		return nil, err
	}

	return films, repository.attachAssociations(context, films)
}

/*
Create persists a new film row plus its genre associations in one transaction.

Parameters:
  - film: *Film (ID is populated from the sequence; Genres are deduplicated)

Returns:
  - error: Constraint violations (e.g. unknown MPA or genre IDs) or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, film *Film) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_film_begin")
	}
	defer func() { _ = tx.Rollback(context) }()

	const insert = `
		INSERT INTO films (film_name, description, release_date, duration, rate, mpa_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING film_id;
	`

	err = tx.QueryRow(context, insert,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Rate, film.MPA.ID,
	).Scan(&film.ID)
	if err != nil {
		return dberr.Wrap(err, "create_film")
	}

	if err := replaceGenres(context, tx, film); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "create_film_commit")
}

/*
Update rewrites the film row and re-associates its genres (full-row replace).

Returns:
  - error: apperr.NotFound when the target row does not exist
*/
func (repository *PostgresRepository) Update(context context.Context, film *Film) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_film_begin")
	}
	defer func() { _ = tx.Rollback(context) }()

	const update = `
		UPDATE films
		SET film_name = $2, description = $3, release_date = $4, duration = $5, mpa_id = $6
		WHERE film_id = $1;
	`

	cmd, err := tx.Exec(context, update,
		film.ID, film.Name, film.Description, film.ReleaseDate, film.Duration, film.MPA.ID)
	if err != nil {
		return dberr.Wrap(err, "update_film")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Film")
	}

	const clearGenres = `DELETE FROM film_genres WHERE film_id = $1;`
	if _, err := tx.Exec(context, clearGenres, film.ID); err != nil {
		return dberr.Wrap(err, "update_film_clear_genres")
	}

	if err := replaceGenres(context, tx, film); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "update_film_commit")
}

/*
FindByID retrieves a single film with genres and likes attached.

Returns:
  - *Film: The hydrated entity
  - error: apperr.NotFound if the ID is absent
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Film, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM films f
		JOIN mpa_ratings m ON f.mpa_id = m.mpa_id
		WHERE f.film_id = $1;
	`, filmColumns)

	film := &Film{Genres: []Genre{}, Likes: []int64{}}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&film.ID, &film.Name, &film.Description, &film.ReleaseDate, &film.Duration,
		&film.Rate, &film.MPA.ID, &film.MPA.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Film")
		}
		return nil, dberr.Wrap(err, "get_film")
	}

	return film, repository.attachAssociations(context, []*Film{film})
}

/*
AddLike inserts a like row and refreshes the rate column in one transaction.

Description: The composite primary key on (film_id, user_id) makes the
duplicate insert race impossible; the violation surfaces as a Conflict.

Returns:
  - error: apperr.Conflict if the user already likes the film
*/
func (repository *PostgresRepository) AddLike(context context.Context, filmID, userID int64) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "add_like_begin")
	}
	defer func() { _ = tx.Rollback(context) }()

	const insert = `
		INSERT INTO film_likes (film_id, user_id)
		VALUES ($1, $2);
	`
	if _, err := tx.Exec(context, insert, filmID, userID); err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(
				fmt.Sprintf("User %d already likes film %d", userID, filmID))
		}
		return dberr.Wrap(err, "add_like")
	}

	if err := refreshRate(context, tx, filmID); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "add_like_commit")
}

/*
DeleteLike removes a like row and refreshes the rate column in one transaction.

Returns:
  - error: apperr.Conflict if no like exists to remove
*/
func (repository *PostgresRepository) DeleteLike(context context.Context, filmID, userID int64) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "delete_like_begin")
	}
	defer func() { _ = tx.Rollback(context) }()

	const remove = `
		DELETE FROM film_likes
		WHERE film_id = $1 AND user_id = $2;
	`
	cmd, err := tx.Exec(context, remove, filmID, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_like")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.Conflict(
			fmt.Sprintf("User %d has no like on film %d to remove", userID, filmID))
	}

	if err := refreshRate(context, tx, filmID); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "delete_like_commit")
}

/*
MostPopular retrieves up to count films ranked by like count.

Description: The ranking orders by like count descending with film ID
ascending as the tie breaker, so repeated calls over unchanged data return
the same list.

Returns:
  - []*Film: At most count entries, genres and likes attached
*/
func (repository *PostgresRepository) MostPopular(context context.Context, count int) ([]*Film, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM films f
		JOIN mpa_ratings m ON f.mpa_id = m.mpa_id
		LEFT JOIN film_likes fl ON f.film_id = fl.film_id
		GROUP BY f.film_id, m.mpa_id
		ORDER BY COUNT(fl.user_id) DESC, f.film_id ASC
		LIMIT $1;
	`, filmColumns)

	rows, err := repository.pool.Query(context, query, count)
	if err != nil {
		return nil, dberr.Wrap(err, "most_popular_films")
	}
	defer rows.Close()

	films, err := collectFilms(rows)
	if err != nil {
		return nil, err
	}

	return films, repository.attachAssociations(context, films)
}

/*
SearchByTitle retrieves films whose name contains the query, case-insensitively.

Returns:
  - []*Film: Ordered by film ID ascending, genres and likes attached
*/
func (repository *PostgresRepository) SearchByTitle(context context.Context, query string) ([]*Film, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM films f
		JOIN mpa_ratings m ON f.mpa_id = m.mpa_id
		WHERE f.film_name ILIKE '%%' || $1 || '%%'
		ORDER BY f.film_id ASC;
	`, filmColumns)

	rows, err := repository.pool.Query(context, sql, query)
	if err != nil {
		return nil, dberr.Wrap(err, "search_films")
	}
	defer rows.Close()

	films, err := collectFilms(rows)
	if err != nil {
		return nil, err
	}

	return films, repository.attachAssociations(context, films)
}

/*
UpdateRate recomputes the film's rate column from the like rows.

Description: Standalone variant of the refresh that runs inside every like
mutation; exposed for backfills and consistency repairs.
*/
func (repository *PostgresRepository) UpdateRate(context context.Context, filmID int64) error {
	const query = `
		UPDATE films
		SET rate = (SELECT COUNT(*) FROM film_likes WHERE film_id = $1)
		WHERE film_id = $1;
	`

	cmd, err := repository.pool.Exec(context, query, filmID)
	if err != nil {
		return dberr.Wrap(err, "update_film_rate")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Film")
	}
	return nil
}

// refreshRate keeps the denormalized rate column equal to the like count,
// inside the caller's transaction.
func refreshRate(context context.Context, tx pgx.Tx, filmID int64) error {
	const query = `
		UPDATE films
		SET rate = (SELECT COUNT(*) FROM film_likes WHERE film_id = $1)
		WHERE film_id = $1;
	`

	if _, err := tx.Exec(context, query, filmID); err != nil {
		return dberr.Wrap(err, "refresh_film_rate")
	}
	return nil
}

// replaceGenres inserts the film's genre associations, skipping duplicates
// in the input.
func replaceGenres(context context.Context, tx pgx.Tx, film *Film) error {
	if len(film.Genres) == 0 {
		return nil
	}

	const insert = `
		INSERT INTO film_genres (film_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`

	batch := &pgx.Batch{}
	for _, genre := range film.Genres {
		batch.Queue(insert, film.ID, genre.ID)
	}

	results := tx.SendBatch(context, batch)
	defer results.Close()

	for range film.Genres {
		if _, err := results.Exec(); err != nil {
			return dberr.Wrap(err, "attach_film_genre")
		}
	}
	return results.Close()
}

// collectFilms scans film+MPA rows into entities with empty association slices.
func collectFilms(rows pgx.Rows) ([]*Film, error) {
	films := make([]*Film, 0)

	for rows.Next() {
		film := &Film{Genres: []Genre{}, Likes: []int64{}}
		if err := rows.Scan(
			&film.ID, &film.Name, &film.Description, &film.ReleaseDate, &film.Duration,
			&film.Rate, &film.MPA.ID, &film.MPA.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_film_row")
		}
		films = append(films, film)
	}

	return films, rows.Err()
}

// attachAssociations batch-loads genres and likes for the given films with
// two ANY($1) queries and distributes the rows by film ID.
func (repository *PostgresRepository) attachAssociations(context context.Context, films []*Film) error {
	if len(films) == 0 {
		return nil
	}

	ids := slice.Map(films, func(entity *Film) int64 { return entity.ID })

	byID := make(map[int64]*Film, len(films))
	for _, entity := range films {
		byID[entity.ID] = entity
	}

	const genreQuery = `
		SELECT fg.film_id, g.genre_id, g.genre_name
		FROM film_genres fg
		JOIN genres g ON fg.genre_id = g.genre_id
		WHERE fg.film_id = ANY($1)
		ORDER BY fg.film_id ASC, g.genre_id ASC;
	`

	genreRows, err := repository.pool.Query(context, genreQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "attach_genres")
	}
	defer genreRows.Close()

	for genreRows.Next() {
		var (
			filmID int64
			genre  Genre
		)
		if err := genreRows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return dberr.Wrap(err, "scan_film_genre")
		}
		byID[filmID].Genres = append(byID[filmID].Genres, genre)
	}
	if err := genreRows.Err(); err != nil {
		return dberr.Wrap(err, "attach_genres")
	}

	const likeQuery = `
		SELECT film_id, user_id
		FROM film_likes
		WHERE film_id = ANY($1)
		ORDER BY film_id ASC, user_id DESC;
	`

	likeRows, err := repository.pool.Query(context, likeQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "attach_likes")
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var filmID, userID int64
		if err := likeRows.Scan(&filmID, &userID); err != nil {
			return dberr.Wrap(err, "scan_film_like")
		}
		byID[filmID].Likes = append(byID[filmID].Likes, userID)
	}

	return likeRows.Err()
}
