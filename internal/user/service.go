// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package user

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate/internal/platform/validate"
)

// Service implements the user and friendship use cases.
//
// # Architecture
//
// The service validates input and orchestrates the repository; it knows
// nothing about HTTP or SQL. Friendship transition rules live in the
// repository layer (see [PlanAddFriend]) because they are inseparable from
// the transactional fetch of the pair's edges.
type Service struct {
	userRepository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{userRepository: repository}
}

// FindAll returns every registered user with friend IDs attached.
func (service *Service) FindAll(context context.Context) ([]*User, error) {
	return service.userRepository.FindAll(context)
}

// Create validates and persists a brand new user.
//
// # Business Rules
//   - Email must be a well-formed address.
//   - Login is mandatory and must not contain spaces.
//   - Birthday must not lie in the future.
//   - A blank display name falls back to the login.
func (service *Service) Create(context context.Context, user *User) (*User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}

	applyNameFallback(user)

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("user_service_create_failed: %w", err)
	}

	user.Friends = []int64{}
	return user, nil
}

// Update validates and rewrites an existing user (full-row replace).
func (service *Service) Update(context context.Context, user *User) (*User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}

	applyNameFallback(user)

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return service.userRepository.FindByID(context, user.ID)
}

// GetByID returns the user with the given ID or apperr.NotFound.
func (service *Service) GetByID(context context.Context, id int64) (*User, error) {
	return service.userRepository.FindByID(context, id)
}

// AddFriend records a friend request from userID towards friendID.
//
// # Returns
//   - apperr.NotFound if either side does not exist.
//   - apperr.ValidationError for self-friendship.
//   - apperr.Conflict if the pair is already related.
func (service *Service) AddFriend(context context.Context, userID, friendID int64) error {
	if err := service.checkFriendPair(context, userID, friendID); err != nil {
		return err
	}
	return service.userRepository.AddFriend(context, userID, friendID)
}

// DeleteFriend removes userID's outgoing edge towards friendID.
//
// # Returns
//   - apperr.NotFound if either side does not exist.
//   - apperr.Conflict if no relationship exists to remove.
func (service *Service) DeleteFriend(context context.Context, userID, friendID int64) error {
	if err := service.checkFriendPair(context, userID, friendID); err != nil {
		return err
	}
	return service.userRepository.DeleteFriend(context, userID, friendID)
}

// ListFriends returns the users referenced by userID's outgoing edges.
func (service *Service) ListFriends(context context.Context, userID int64) ([]*User, error) {
	if _, err := service.userRepository.FindByID(context, userID); err != nil {
		return nil, err
	}
	return service.userRepository.ListFriends(context, userID)
}

// CommonFriends returns the confirmed friends shared by both users.
func (service *Service) CommonFriends(context context.Context, userID, otherID int64) ([]*User, error) {
	if err := service.checkFriendPair(context, userID, otherID); err != nil {
		return nil, err
	}
	return service.userRepository.CommonFriends(context, userID, otherID)
}

// checkFriendPair rejects self-referential pairs and verifies both users exist.
//
// Rejecting self-pairs up front guarantees the state machine's "exactly one
// existing edge means the reverse direction" assumption.
func (service *Service) checkFriendPair(context context.Context, userID, friendID int64) error {
	if userID == friendID {
		return validate.RequiredError("friend_id", "Must reference another user")
	}

	if _, err := service.userRepository.FindByID(context, userID); err != nil {
		return err
	}
	if _, err := service.userRepository.FindByID(context, friendID); err != nil {
		return err
	}

	return nil
}

// validateUser applies the boundary rules shared by Create and Update.
func validateUser(user *User) error {
	v := &validate.Validator{}
	return v.
		Required("email", user.Email).
		Email("email", user.Email).
		Required("login", user.Login).
		NoSpaces("login", user.Login).
		NotInFuture("birthday", user.Birthday).
		Err()
}

// applyNameFallback substitutes the login for a blank display name.
func applyNameFallback(user *User) {
	if user.Name == "" {
		user.Name = user.Login
	}
}
