// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmorate/filmorate/internal/platform/apperr"
	"github.com/filmorate/filmorate/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindAll retrieves every user together with their outgoing friend IDs.

Description: A single LEFT JOIN against the friendship table avoids one
friend-list query per user; rows are grouped client-side by user ID, keeping
the query free of dialect-specific string aggregation.

Returns:
  - []*User: Ordered by user ID descending, friend IDs descending
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) FindAll(context context.Context) ([]*User, error) {

	// One round trip for parents and children together.
	const query = `
		SELECT u.user_id, u.email, u.login, u.user_name, u.birthday, fs.friend_id
		FROM users u
		LEFT JOIN friendship fs ON u.user_id = fs.user_id
		ORDER BY u.user_id DESC, fs.friend_id DESC;
	`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	return collectUsersWithFriends(rows)
}

/*
Create persists a new user row and binds the generated key.

Parameters:
  - context: context.Context
  - user: *User (ID is populated from the sequence)

Returns:
  - error: Constraint violations or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (email, login, user_name, birthday)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id;
	`

	err := repository.pool.QueryRow(context, query,
		user.Email, user.Login, user.Name, user.Birthday,
	).Scan(&user.ID)

	return dberr.Wrap(err, "create_user")
}

/*
Update rewrites all mutable fields of the user row (full-row replace).

Returns:
  - error: apperr.NotFound when the target row does not exist
*/
func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users
		SET email = $2, login = $3, user_name = $4, birthday = $5
		WHERE user_id = $1;
	`

	cmd, err := repository.pool.Exec(context, query,
		user.ID, user.Email, user.Login, user.Name, user.Birthday)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

/*
FindByID retrieves a single user and attaches their outgoing friend IDs.

Returns:
  - *User: The hydrated entity
  - error: apperr.NotFound if the ID is absent
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*User, error) {
	const userQuery = `
		SELECT user_id, email, login, user_name, birthday
		FROM users
		WHERE user_id = $1;
	`
	const friendsQuery = `
		SELECT friend_id
		FROM friendship
		WHERE user_id = $1
		ORDER BY friend_id DESC;
	`

	user := &User{Friends: []int64{}}
	err := repository.pool.QueryRow(context, userQuery, id).Scan(
		&user.ID, &user.Email, &user.Login, &user.Name, &user.Birthday)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "get_user")
	}

	// Attach the outgoing edge IDs, any status.
	rows, err := repository.pool.Query(context, friendsQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_user_friends")
	}
	defer rows.Close()

	for rows.Next() {
		var friendID int64
		if err := rows.Scan(&friendID); err != nil {
			return nil, dberr.Wrap(err, "scan_user_friend")
		}
		user.Friends = append(user.Friends, friendID)
	}

	return user, rows.Err()
}

/*
AddFriend executes the friend-request transition inside one transaction.

Description: The pair's edges are fetched FOR UPDATE so two concurrent
transitions on the same pair serialize; the composite primary key on
(user_id, friend_id) catches the remaining insert/insert race and surfaces
it as a Conflict.

Returns:
  - error: apperr.Conflict when the pair is already related
*/
func (repository *PostgresRepository) AddFriend(context context.Context, userID, friendID int64) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "add_friend_begin")
	}
	defer func() { _ = tx.Rollback(context) }()

	existing, err := fetchPairForUpdate(context, tx, userID, friendID)
	if err != nil {
		return err
	}

	plan, err := PlanAddFriend(existing, userID, friendID)
	if err != nil {
		return err
	}

	if plan.Promote != nil {
		const promote = `
			UPDATE friendship
			SET friend_status = $3
			WHERE user_id = $1 AND friend_id = $2;
		`
		if _, err := tx.Exec(context, promote,
			plan.Promote.UserID, plan.Promote.FriendID, StatusApproved); err != nil {
			return dberr.Wrap(err, "add_friend_promote")
		}
	}

	const insert = `
		INSERT INTO friendship (user_id, friend_id, friend_status)
		VALUES ($1, $2, $3);
	`
	if _, err := tx.Exec(context, insert,
		plan.Insert.UserID, plan.Insert.FriendID, plan.Insert.Status); err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(
				fmt.Sprintf("Users %d and %d are already related", userID, friendID))
		}
		return dberr.Wrap(err, "add_friend_insert")
	}

	return dberr.Wrap(tx.Commit(context), "add_friend_commit")
}

/*
DeleteFriend executes the friend-removal transition inside one transaction.

Returns:
  - error: apperr.Conflict when no relationship exists to remove
*/
func (repository *PostgresRepository) DeleteFriend(context context.Context, userID, friendID int64) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "delete_friend_begin")
	}
	defer func() { _ = tx.Rollback(context) }()

	existing, err := fetchPairForUpdate(context, tx, userID, friendID)
	if err != nil {
		return err
	}

	plan, err := PlanDeleteFriend(existing, userID, friendID)
	if err != nil {
		return err
	}

	const remove = `
		DELETE FROM friendship
		WHERE user_id = $1 AND friend_id = $2;
	`
	if _, err := tx.Exec(context, remove, plan.Delete.UserID, plan.Delete.FriendID); err != nil {
		return dberr.Wrap(err, "delete_friend_remove")
	}

	if plan.Demote != nil {
		const demote = `
			UPDATE friendship
			SET friend_status = $3
			WHERE user_id = $1 AND friend_id = $2;
		`
		if _, err := tx.Exec(context, demote,
			plan.Demote.UserID, plan.Demote.FriendID, StatusRequested); err != nil {
			return dberr.Wrap(err, "delete_friend_demote")
		}
	}

	return dberr.Wrap(tx.Commit(context), "delete_friend_commit")
}

/*
ListFriends retrieves the users referenced by userID's outgoing edges, each
carrying their own friend-ID list.

Description: Joins the friendship table to users and LEFT JOINs each friend's
own outgoing edges, grouping client-side — one round trip instead of N+1.

Returns:
  - []*User: Ordered by user ID descending
*/
func (repository *PostgresRepository) ListFriends(context context.Context, userID int64) ([]*User, error) {
	const query = `
		SELECT u.user_id, u.email, u.login, u.user_name, u.birthday, fs2.friend_id
		FROM friendship fs
		JOIN users u ON fs.friend_id = u.user_id
		LEFT JOIN friendship fs2 ON u.user_id = fs2.user_id
		WHERE fs.user_id = $1
		ORDER BY u.user_id DESC, fs2.friend_id DESC;
	`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_friends")
	}
	defer rows.Close()

	return collectUsersWithFriends(rows)
}

/*
CommonFriends retrieves the intersection of both sides' APPROVED outgoing
edges, each returned user carrying their own friend-ID list.

Description: "Friends" in the common-friends sense means confirmed
relationships only, so both sides' edges are filtered to APPROVED before
intersecting on friend_id.

Returns:
  - []*User: Ordered by user ID descending; ties impossible (unique IDs)
*/
func (repository *PostgresRepository) CommonFriends(context context.Context, userID, otherID int64) ([]*User, error) {
	const query = `
		SELECT u.user_id, u.email, u.login, u.user_name, u.birthday, fs2.friend_id
		FROM friendship fa
		JOIN friendship fb ON fa.friend_id = fb.friend_id
		JOIN users u ON u.user_id = fa.friend_id
		LEFT JOIN friendship fs2 ON u.user_id = fs2.user_id
		WHERE fa.user_id = $1 AND fa.friend_status = $3
		  AND fb.user_id = $2 AND fb.friend_status = $3
		ORDER BY u.user_id DESC, fs2.friend_id DESC;
	`

	rows, err := repository.pool.Query(context, query, userID, otherID, StatusApproved)
	if err != nil {
		return nil, dberr.Wrap(err, "common_friends")
	}
	defer rows.Close()

	return collectUsersWithFriends(rows)
}

// fetchPairForUpdate locks and returns every friendship edge where the
// unordered pair appears, in either direction.
func fetchPairForUpdate(context context.Context, tx pgx.Tx, userID, friendID int64) ([]Friendship, error) {
	const query = `
		SELECT user_id, friend_id, friend_status
		FROM friendship
		WHERE user_id IN ($1, $2) AND friend_id IN ($1, $2)
		FOR UPDATE;
	`

	rows, err := tx.Query(context, query, userID, friendID)
	if err != nil {
		return nil, dberr.Wrap(err, "lock_friendship_pair")
	}
	defer rows.Close()

	var edges []Friendship
	for rows.Next() {
		var edge Friendship
		if err := rows.Scan(&edge.UserID, &edge.FriendID, &edge.Status); err != nil {
			return nil, dberr.Wrap(err, "scan_friendship_edge")
		}
		edges = append(edges, edge)
	}

	return edges, rows.Err()
}

// collectUsersWithFriends groups (user, friend_id) join rows into an ordered
// slice of users, preserving the query's ordering for both levels.
func collectUsersWithFriends(rows pgx.Rows) ([]*User, error) {
	users := make([]*User, 0)
	var current *User

	for rows.Next() {
		var (
			row      User
			friendID *int64 // NULL when the user has no outgoing edges
		)
		if err := rows.Scan(&row.ID, &row.Email, &row.Login, &row.Name, &row.Birthday, &friendID); err != nil {
			return nil, dberr.Wrap(err, "scan_user_row")
		}

		// New parent key starts a new user entry.
		if current == nil || current.ID != row.ID {
			row.Friends = []int64{}
			users = append(users, &row)
			current = users[len(users)-1]
		}

		if friendID != nil {
			current.Friends = append(current.Friends, *friendID)
		}
	}

	return users, rows.Err()
}
