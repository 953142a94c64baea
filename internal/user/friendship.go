// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package user

import (
	"fmt"

	"github.com/filmorate/filmorate/internal/platform/apperr"
)

// # Friendship State Machine
//
// The transition logic is a pure function over the edges currently persisted
// for an unordered pair. The repository fetches those edges under a row lock,
// asks the planner which statements to run, and executes them inside the same
// transaction. Keeping the decision pure makes every transition unit-testable
// without a database.

// AddPlan describes the statements required to complete an AddFriend transition.
type AddPlan struct {
	// Promote, when non-nil, is the existing reverse edge (friend -> user)
	// whose status must be raised to APPROVED.
	Promote *Friendship

	// Insert is the new directed edge to persist.
	Insert Friendship
}

// DeletePlan describes the statements required to complete a DeleteFriend transition.
type DeletePlan struct {
	// Delete is the outgoing edge (user -> friend) to remove.
	Delete Friendship

	// Demote, when non-nil, is the reverse edge (friend -> user) whose status
	// must be lowered back to REQUESTED because the relationship is no longer
	// mutual.
	Demote *Friendship
}

/*
PlanAddFriend decides how a friend request from userID to friendID transitions
the pair's edge set.

Parameters:
  - existing: []Friendship (All edges where the unordered pair appears, either direction)
  - userID: int64 (The requesting side)
  - friendID: int64 (The requested side)

Returns:
  - AddPlan: The statements the repository must execute
  - error: apperr.Conflict when the pair is already related

Transitions:
  - No edges: insert (user -> friend, REQUESTED).
  - One reverse edge (friend -> user): the other party already requested;
    promote it to APPROVED and insert (user -> friend, APPROVED).
  - Both edges, or any outgoing (user -> friend) edge: Conflict.
*/
func PlanAddFriend(existing []Friendship, userID, friendID int64) (AddPlan, error) {

	// Reject repeated requests. Any outgoing edge means this direction already
	// exists, regardless of status; two edges mean the pair is fully mutual.
	if len(existing) == 2 || containsEdge(existing, userID, friendID) {
		return AddPlan{}, apperr.Conflict(
			fmt.Sprintf("Users %d and %d are already related", userID, friendID))
	}

	// Exactly one edge remains and it is necessarily the reverse direction:
	// self-requests are rejected upstream, so the pair has only two possible
	// directions and the outgoing one was excluded above.
	if len(existing) == 1 {
		reverse := existing[0]
		return AddPlan{
			Promote: &reverse,
			Insert:  Friendship{UserID: userID, FriendID: friendID, Status: StatusApproved},
		}, nil
	}

	// Fresh pair: a plain one-way request.
	return AddPlan{
		Insert: Friendship{UserID: userID, FriendID: friendID, Status: StatusRequested},
	}, nil
}

/*
PlanDeleteFriend decides how removing friendID from userID's friend set
transitions the pair's edge set.

Parameters:
  - existing: []Friendship (All edges where the unordered pair appears, either direction)
  - userID: int64 (The removing side)
  - friendID: int64 (The removed side)

Returns:
  - DeletePlan: The statements the repository must execute
  - error: apperr.Conflict when no outgoing edge exists

Transitions:
  - (user -> friend, REQUESTED): delete the pending request.
  - (user -> friend, APPROVED): delete it and demote the reverse edge to
    REQUESTED, since the friendship is one-sided again from the other party's view.
  - No outgoing edge: Conflict.
*/
func PlanDeleteFriend(existing []Friendship, userID, friendID int64) (DeletePlan, error) {
	outgoing, found := findEdge(existing, userID, friendID)
	if !found {
		return DeletePlan{}, apperr.Conflict(
			fmt.Sprintf("Users %d and %d are not related", userID, friendID))
	}

	plan := DeletePlan{Delete: outgoing}

	// A mutual friendship loses one direction; the survivor drops back to a
	// pending request rather than disappearing.
	if outgoing.Status == StatusApproved {
		if reverse, ok := findEdge(existing, friendID, userID); ok {
			plan.Demote = &reverse
		}
	}

	return plan, nil
}

// containsEdge reports whether a directed edge from -> to exists, any status.
func containsEdge(edges []Friendship, from, to int64) bool {
	_, found := findEdge(edges, from, to)
	return found
}

// findEdge returns the directed edge from -> to, if present.
func findEdge(edges []Friendship, from, to int64) (Friendship, bool) {
	for _, edge := range edges {
		if edge.UserID == from && edge.FriendID == to {
			return edge, true
		}
	}
	return Friendship{}, false
}
