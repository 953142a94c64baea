// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package user

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/filmorate/filmorate/internal/platform/request"
	"github.com/filmorate/filmorate/internal/platform/respond"
	"github.com/filmorate/filmorate/internal/platform/validate"
)

// birthdayLayout is the wire format for user birthdays.
const birthdayLayout = "2006-01-02"

// Handler implements the user and friendship HTTP endpoints.
//
// # Scope
//
// Handlers parse and validate the transport representation, delegate to the
// service, and standardize responses. They contain NO business logic or
// database queries.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] configured with user-specific routes.
//
// # Endpoints
//   - GET    /                                : Lists all users.
//   - POST   /                                : Creates a user.
//   - PUT    /                                : Updates a user (ID in body).
//   - GET    /{id}                            : Fetches one user.
//   - PUT    /{id}/friends/{friendId}         : Sends/confirms a friend request.
//   - DELETE /{id}/friends/{friendId}         : Removes a friendship edge.
//   - GET    /{id}/friends                    : Lists a user's friends.
//   - GET    /{id}/friends/common/{otherId}   : Lists mutual confirmed friends.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Put("/", handler.update)
	router.Get("/{id}", handler.getByID)
	router.Put("/{id}/friends/{friendId}", handler.addFriend)
	router.Delete("/{id}/friends/{friendId}", handler.deleteFriend)
	router.Get("/{id}/friends", handler.listFriends)
	router.Get("/{id}/friends/common/{otherId}", handler.commonFriends)

	return router
}

// userRequest represents the JSON payload for user creation and updates.
type userRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"` // YYYY-MM-DD
}

// toDomain converts the transport payload into a domain entity.
func (input userRequest) toDomain() (*User, error) {
	birthday, err := time.Parse(birthdayLayout, input.Birthday)
	if err != nil {
		return nil, validate.RequiredError("birthday", "Must be a date in YYYY-MM-DD format")
	}

	return &User{
		ID:       input.ID,
		Email:    input.Email,
		Login:    input.Login,
		Name:     input.Name,
		Birthday: birthday,
	}, nil
}

// list handles GET /api/v1/users requests.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.userService.FindAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

// create handles POST /api/v1/users requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the stored user.
//   - Writes HTTP 400 Bad Request if validation rules fail.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input userRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := input.toDomain()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.userService.Create(request.Context(), user)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// update handles PUT /api/v1/users requests (full-row replace, ID in body).
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input userRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := input.toDomain()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.userService.Update(request.Context(), user)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// getByID handles GET /api/v1/users/{id} requests.
func (handler *Handler) getByID(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.userService.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// addFriend handles PUT /api/v1/users/{id}/friends/{friendId} requests.
//
// # Returns
//   - Writes HTTP 204 No Content on success.
//   - Writes HTTP 409 Conflict if the pair is already related.
func (handler *Handler) addFriend(writer http.ResponseWriter, request *http.Request) {
	userID, friendID, err := friendPairParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.userService.AddFriend(request.Context(), userID, friendID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// deleteFriend handles DELETE /api/v1/users/{id}/friends/{friendId} requests.
//
// # Returns
//   - Writes HTTP 204 No Content on success.
//   - Writes HTTP 409 Conflict if no relationship exists to remove.
func (handler *Handler) deleteFriend(writer http.ResponseWriter, request *http.Request) {
	userID, friendID, err := friendPairParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.userService.DeleteFriend(request.Context(), userID, friendID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// listFriends handles GET /api/v1/users/{id}/friends requests.
func (handler *Handler) listFriends(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	friends, err := handler.userService.ListFriends(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, friends)
}

// commonFriends handles GET /api/v1/users/{id}/friends/common/{otherId} requests.
func (handler *Handler) commonFriends(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	otherID, err := requestutil.Int64Param(request, "otherId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	common, err := handler.userService.CommonFriends(request.Context(), userID, otherID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, common)
}

// friendPairParams extracts the {id} and {friendId} route parameters.
func friendPairParams(request *http.Request) (int64, int64, error) {
	userID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		return 0, 0, err
	}

	friendID, err := requestutil.Int64Param(request, "friendId")
	if err != nil {
		return 0, 0, err
	}

	return userID, friendID, nil
}
