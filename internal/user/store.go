// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package user

import "context"

// # User Data Access

// Repository defines the data access contract for the user domain.
type Repository interface {

	/*
		FindAll returns every user with their outgoing friend-ID lists attached.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: All users, ordered by ID descending, friend IDs descending
		  - error: Database retrieval failures
	*/
	FindAll(context context.Context) ([]*User, error)

	/*
		Create persists a new user and assigns its generated ID.

		Parameters:
		  - context: context.Context
		  - user: *User (ID is populated on return)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update rewrites all mutable fields of an existing user (full-row replace).

		Parameters:
		  - context: context.Context
		  - user: *User (Target ID and replacement attributes)

		Returns:
		  - error: apperr.NotFound if the ID does not exist
	*/
	Update(context context.Context, user *User) error

	/*
		FindByID returns the user with the given ID, friend IDs attached.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: The hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		AddFriend runs the friend-request transition for the directed pair.

		The read-then-write sequence executes inside one transaction with the
		pair's edges locked, so concurrent requests cannot duplicate edges.

		Parameters:
		  - context: context.Context
		  - userID: int64 (Requesting side)
		  - friendID: int64 (Requested side)

		Returns:
		  - error: apperr.Conflict when the pair is already related
	*/
	AddFriend(context context.Context, userID, friendID int64) error

	/*
		DeleteFriend runs the friend-removal transition for the directed pair.

		Parameters:
		  - context: context.Context
		  - userID: int64 (Removing side)
		  - friendID: int64 (Removed side)

		Returns:
		  - error: apperr.Conflict when no relationship exists to remove
	*/
	DeleteFriend(context context.Context, userID, friendID int64) error

	/*
		ListFriends returns the users referenced by userID's outgoing edges
		(any status), each with their own friend-ID list attached.

		Returns:
		  - []*User: Ordered by user ID descending
		  - error: Database retrieval failures
	*/
	ListFriends(context context.Context, userID int64) ([]*User, error)

	/*
		CommonFriends returns the users that both sides hold an APPROVED
		outgoing edge to, each with their own friend-ID list attached.

		Returns:
		  - []*User: The intersection, ordered by user ID descending
		  - error: Database retrieval failures
	*/
	CommonFriends(context context.Context, userID, otherID int64) ([]*User, error)
}
