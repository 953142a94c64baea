// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package film

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/filmorate/filmorate/internal/platform/request"
	"github.com/filmorate/filmorate/internal/platform/respond"
	"github.com/filmorate/filmorate/internal/platform/validate"
	"github.com/filmorate/filmorate/pkg/slice"
)

// releaseDateLayout is the wire format for film release dates.
const releaseDateLayout = "2006-01-02"

// Handler implements the film catalog HTTP endpoints.
type Handler struct {
	filmService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{filmService: service}
}

// Routes returns a [chi.Router] configured with film-specific routes.
//
// # Endpoints
//   - GET    /                        : Lists all films.
//   - POST   /                        : Creates a film.
//   - PUT    /                        : Updates a film (ID in body).
//   - GET    /popular?count=N         : Popularity ranking (default 10).
//   - GET    /search?q=...            : Title substring search.
//   - GET    /{id}                    : Fetches one film.
//   - PUT    /{id}/like/{userId}      : Records a like.
//   - DELETE /{id}/like/{userId}      : Removes a like.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Put("/", handler.update)
	router.Get("/popular", handler.mostPopular)
	router.Get("/search", handler.search)
	router.Get("/{id}", handler.getByID)
	router.Put("/{id}/like/{userId}", handler.addLike)
	router.Delete("/{id}/like/{userId}", handler.deleteLike)

	return router
}

// idRef is a transport reference to a dictionary row by primary key.
type idRef struct {
	ID int `json:"id"`
}

// filmRequest represents the JSON payload for film creation and updates.
type filmRequest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ReleaseDate string  `json:"releaseDate"` // YYYY-MM-DD
	Duration    int     `json:"duration"`
	MPA         idRef   `json:"mpa"`
	Genres      []idRef `json:"genres"`
}

// toDomain converts the transport payload into a domain entity.
func (input filmRequest) toDomain() (*Film, error) {
	releaseDate, err := time.Parse(releaseDateLayout, input.ReleaseDate)
	if err != nil {
		return nil, validate.RequiredError("releaseDate", "Must be a date in YYYY-MM-DD format")
	}

	genres := slice.Map(input.Genres, func(ref idRef) Genre {
		return Genre{ID: ref.ID}
	})

	return &Film{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		ReleaseDate: releaseDate,
		Duration:    input.Duration,
		MPA:         MpaRating{ID: input.MPA.ID},
		Genres:      genres,
	}, nil
}

// list handles GET /api/v1/films requests.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	films, err := handler.filmService.FindAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, films)
}

// create handles POST /api/v1/films requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the stored film.
//   - Writes HTTP 400 Bad Request if validation rules fail.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input filmRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	film, err := input.toDomain()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.filmService.Create(request.Context(), film)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// update handles PUT /api/v1/films requests (full-row replace, ID in body).
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input filmRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	film, err := input.toDomain()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.filmService.Update(request.Context(), film)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// getByID handles GET /api/v1/films/{id} requests.
func (handler *Handler) getByID(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	film, err := handler.filmService.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, film)
}

// mostPopular handles GET /api/v1/films/popular?count=N requests.
func (handler *Handler) mostPopular(writer http.ResponseWriter, request *http.Request) {
	count, err := requestutil.QueryInt(request, "count", DefaultPopularCount)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	films, err := handler.filmService.MostPopular(request.Context(), count)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, films)
}

// search handles GET /api/v1/films/search?q=... requests.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	films, err := handler.filmService.SearchByTitle(
		request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, films)
}

// addLike handles PUT /api/v1/films/{id}/like/{userId} requests.
//
// # Returns
//   - Writes HTTP 204 No Content on success.
//   - Writes HTTP 409 Conflict if the like already exists.
func (handler *Handler) addLike(writer http.ResponseWriter, request *http.Request) {
	filmID, userID, err := likePairParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.filmService.AddLike(request.Context(), filmID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// deleteLike handles DELETE /api/v1/films/{id}/like/{userId} requests.
//
// # Returns
//   - Writes HTTP 204 No Content on success.
//   - Writes HTTP 409 Conflict if no like exists to remove.
func (handler *Handler) deleteLike(writer http.ResponseWriter, request *http.Request) {
	filmID, userID, err := likePairParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.filmService.DeleteLike(request.Context(), filmID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// likePairParams extracts the {id} and {userId} route parameters.
func likePairParams(request *http.Request) (int64, int64, error) {
	filmID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		return 0, 0, err
	}

	userID, err := requestutil.Int64Param(request, "userId")
	if err != nil {
		return 0, 0, err
	}

	return filmID, userID, nil
}
