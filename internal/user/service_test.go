// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/platform/apperr"
	"github.com/filmorate/filmorate/internal/user"
)

// fakeRepository is an in-memory [user.Repository] for service-level tests.
//
// Friendship transitions reuse the production planner against an in-memory
// edge slice, so service tests observe the same state machine as the
// postgres implementation.
type fakeRepository struct {
	users  map[int64]*user.User
	edges  []user.Friendship
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[int64]*user.User), nextID: 1}
}

func (f *fakeRepository) FindAll(_ context.Context) ([]*user.User, error) {
	all := make([]*user.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, u)
	}
	return all, nil
}

func (f *fakeRepository) Create(_ context.Context, u *user.User) error {
	u.ID = f.nextID
	f.nextID++
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepository) Update(_ context.Context, u *user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperr.NotFound("User")
	}
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	stored, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	result := *stored
	result.Friends = f.outgoing(id)
	return &result, nil
}

func (f *fakeRepository) AddFriend(_ context.Context, userID, friendID int64) error {
	plan, err := user.PlanAddFriend(f.pair(userID, friendID), userID, friendID)
	if err != nil {
		return err
	}
	if plan.Promote != nil {
		f.setStatus(plan.Promote.UserID, plan.Promote.FriendID, user.StatusApproved)
	}
	f.edges = append(f.edges, plan.Insert)
	return nil
}

func (f *fakeRepository) DeleteFriend(_ context.Context, userID, friendID int64) error {
	plan, err := user.PlanDeleteFriend(f.pair(userID, friendID), userID, friendID)
	if err != nil {
		return err
	}
	f.removeEdge(plan.Delete.UserID, plan.Delete.FriendID)
	if plan.Demote != nil {
		f.setStatus(plan.Demote.UserID, plan.Demote.FriendID, user.StatusRequested)
	}
	return nil
}

func (f *fakeRepository) ListFriends(ctx context.Context, userID int64) ([]*user.User, error) {
	var friends []*user.User
	for _, id := range f.outgoing(userID) {
		friend, err := f.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		friends = append(friends, friend)
	}
	return friends, nil
}

func (f *fakeRepository) CommonFriends(ctx context.Context, userID, otherID int64) ([]*user.User, error) {
	approved := func(from, to int64) bool {
		for _, e := range f.edges {
			if e.UserID == from && e.FriendID == to && e.Status == user.StatusApproved {
				return true
			}
		}
		return false
	}

	var common []*user.User
	for id := range f.users {
		if approved(userID, id) && approved(otherID, id) {
			friend, err := f.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			common = append(common, friend)
		}
	}
	return common, nil
}

func (f *fakeRepository) pair(a, b int64) []user.Friendship {
	var result []user.Friendship
	for _, e := range f.edges {
		if (e.UserID == a && e.FriendID == b) || (e.UserID == b && e.FriendID == a) {
			result = append(result, e)
		}
	}
	return result
}

func (f *fakeRepository) outgoing(userID int64) []int64 {
	var ids []int64
	for _, e := range f.edges {
		if e.UserID == userID {
			ids = append(ids, e.FriendID)
		}
	}
	return ids
}

func (f *fakeRepository) setStatus(from, to int64, status user.FriendStatus) {
	for i, e := range f.edges {
		if e.UserID == from && e.FriendID == to {
			f.edges[i].Status = status
		}
	}
}

func (f *fakeRepository) removeEdge(from, to int64) {
	for i, e := range f.edges {
		if e.UserID == from && e.FriendID == to {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)
			return
		}
	}
}

// newTestUser returns a valid user entity for test input.
func newTestUser(login string) *user.User {
	return &user.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC),
	}
}

/*
TestService_Create verifies ID assignment and the login fallback for blank
display names.
*/
func TestService_Create(t *testing.T) {
	service := user.NewService(newFakeRepository())

	created, err := service.Create(context.Background(), newTestUser("marty"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "marty", created.Name) // Blank name falls back to login
	assert.Empty(t, created.Friends)
}

/*
TestService_Create_Validation rejects malformed input before it reaches storage.
*/
func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*user.User)
	}{
		{"bad_email", func(u *user.User) { u.Email = "not-an-email" }},
		{"blank_login", func(u *user.User) { u.Login = "" }},
		{"login_with_spaces", func(u *user.User) { u.Login = "doc brown" }},
		{"future_birthday", func(u *user.User) { u.Birthday = time.Now().Add(48 * time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := user.NewService(newFakeRepository())
			input := newTestUser("marty")
			tt.mutate(input)

			_, err := service.Create(context.Background(), input)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_RoundTrip verifies that a created user reads back equal except
for the assigned ID and the initially-empty friend list.
*/
func TestService_RoundTrip(t *testing.T) {
	service := user.NewService(newFakeRepository())
	ctx := context.Background()

	input := newTestUser("marty")
	input.Name = "Marty McFly"
	created, err := service.Create(ctx, input)
	require.NoError(t, err)

	fetched, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "marty@example.com", fetched.Email)
	assert.Equal(t, "marty", fetched.Login)
	assert.Equal(t, "Marty McFly", fetched.Name)
	assert.Empty(t, fetched.Friends)
}

/*
TestService_Update_NotFound verifies that updates to absent IDs fail cleanly.
*/
func TestService_Update_NotFound(t *testing.T) {
	service := user.NewService(newFakeRepository())

	input := newTestUser("marty")
	input.ID = 42
	_, err := service.Update(context.Background(), input)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_AddFriend_Guards covers the service-level preconditions: both
users must exist and self-friendship is rejected.
*/
func TestService_AddFriend_Guards(t *testing.T) {
	repo := newFakeRepository()
	service := user.NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, newTestUser("marty"))
	require.NoError(t, err)

	t.Run("self_friendship_rejected", func(t *testing.T) {
		err := service.AddFriend(ctx, created.ID, created.ID)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("absent_friend_not_found", func(t *testing.T) {
		err := service.AddFriend(ctx, created.ID, 999)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("absent_user_not_found", func(t *testing.T) {
		err := service.AddFriend(ctx, 999, created.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_FriendshipScenario is the three-user scenario: a confirmed pair,
a pending request, and the common-friends view filtered to APPROVED edges.
*/
func TestService_FriendshipScenario(t *testing.T) {
	repo := newFakeRepository()
	service := user.NewService(repo)
	ctx := context.Background()

	alice, err := service.Create(ctx, newTestUser("alice"))
	require.NoError(t, err)
	bob, err := service.Create(ctx, newTestUser("bob"))
	require.NoError(t, err)
	carol, err := service.Create(ctx, newTestUser("carol"))
	require.NoError(t, err)

	// alice -> bob REQUESTED
	require.NoError(t, service.AddFriend(ctx, alice.ID, bob.ID))

	// bob -> alice confirms: both APPROVED
	require.NoError(t, service.AddFriend(ctx, bob.ID, alice.ID))

	// carol -> bob REQUESTED only
	require.NoError(t, service.AddFriend(ctx, carol.ID, bob.ID))

	// Re-requesting a confirmed pair conflicts.
	err = service.AddFriend(ctx, alice.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Both reference bob, but carol's edge is only REQUESTED. Common
	// friends counts confirmed relationships, so the intersection is empty.
	common, err := service.CommonFriends(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	assert.Empty(t, common)

	// The friend-ID view, by contrast, includes pending edges.
	fetched, err := service.GetByID(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob.ID}, fetched.Friends)

	// alice removes bob: bob's reverse edge demotes to REQUESTED.
	require.NoError(t, service.DeleteFriend(ctx, alice.ID, bob.ID))

	fetchedAlice, err := service.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, fetchedAlice.Friends)

	fetchedBob, err := service.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID}, fetchedBob.Friends)

	// A second removal of the same edge conflicts.
	err = service.DeleteFriend(ctx, alice.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}
