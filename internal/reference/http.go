// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/filmorate/filmorate/internal/platform/request"
	"github.com/filmorate/filmorate/internal/platform/respond"
)

// Handler implements the dictionary HTTP endpoints.
type Handler struct {
	referenceService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{referenceService: service}
}

// GenreRoutes returns a [chi.Router] for the genre dictionary.
//
// # Endpoints
//   - GET /     : Lists all genres.
//   - GET /{id} : Fetches one genre.
func (handler *Handler) GenreRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listGenres)
	router.Get("/{id}", handler.getGenre)

	return router
}

// MpaRoutes returns a [chi.Router] for the MPA rating dictionary.
//
// # Endpoints
//   - GET /     : Lists all MPA ratings.
//   - GET /{id} : Fetches one MPA rating.
func (handler *Handler) MpaRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMpaRatings)
	router.Get("/{id}", handler.getMpaRating)

	return router
}

// listGenres handles GET /api/v1/genres requests.
func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.referenceService.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genres)
}

// getGenre handles GET /api/v1/genres/{id} requests.
func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.referenceService.GetGenreByID(request.Context(), int(id))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genre)
}

// listMpaRatings handles GET /api/v1/mpa requests.
func (handler *Handler) listMpaRatings(writer http.ResponseWriter, request *http.Request) {
	ratings, err := handler.referenceService.ListMpaRatings(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ratings)
}

// getMpaRating handles GET /api/v1/mpa/{id} requests.
func (handler *Handler) getMpaRating(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rating, err := handler.referenceService.GetMpaRatingByID(request.Context(), int(id))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, rating)
}
