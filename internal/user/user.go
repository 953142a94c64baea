// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

// Package user implements the member directory and the friendship graph.
//
// # Domain
//
// A User is identified by a numeric ID assigned on creation. Friendships are
// directed edges between users carrying a status; a mutual friendship is two
// APPROVED edges, one per direction. Symmetry is emergent, never enforced by
// the schema.
package user

import "time"

// FriendStatus is the lifecycle state of a single directed friendship edge.
type FriendStatus string

const (
	// StatusRequested marks a one-way pending friend request.
	StatusRequested FriendStatus = "REQUESTED"

	// StatusApproved marks a confirmed friendship from this direction.
	StatusApproved FriendStatus = "APPROVED"
)

// User is a registered member of the platform.
type User struct {
	// ID is the numeric identity assigned by the store on creation.
	ID int64 `json:"id"`

	// Email is the unique contact address.
	Email string `json:"email"`

	// Login is the URL-safe handle (no spaces).
	Login string `json:"login"`

	// Name is the display name. Falls back to Login when blank.
	Name string `json:"name"`

	// Birthday must not lie in the future.
	Birthday time.Time `json:"birthday"`

	// Friends holds the IDs of all outgoing friendship edges, sorted
	// descending. It is derived from the friendship table, never persisted
	// on the user row itself.
	Friends []int64 `json:"friends"`
}

// Friendship is a directed edge (UserID -> FriendID) with a status.
//
// A pair of users in a mutual friendship is represented as two rows, one per
// direction, each independently APPROVED.
type Friendship struct {
	UserID   int64        `json:"user_id"`
	FriendID int64        `json:"friend_id"`
	Status   FriendStatus `json:"status"`
}
