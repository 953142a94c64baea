// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package film

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/filmorate/filmorate/internal/platform/ctxutil"
	"github.com/filmorate/filmorate/internal/platform/validate"
	"github.com/filmorate/filmorate/internal/user"
)

// UserDirectory is the slice of the user domain the film service needs:
// verifying that like authors exist. [user.Repository] satisfies it.
type UserDirectory interface {
	FindByID(context context.Context, id int64) (*user.User, error)
}

// Service implements the film catalog use cases.
//
// # Architecture
//
// The service validates input, verifies cross-domain references (like
// authors), and orchestrates the repository and the popularity cache. Cache
// failures degrade to direct repository reads instead of failing requests.
type Service struct {
	filmRepository Repository
	users          UserDirectory
	popularCache   PopularCache
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, users UserDirectory, cache PopularCache) *Service {
	return &Service{
		filmRepository: repository,
		users:          users,
		popularCache:   cache,
	}
}

// FindAll returns the whole catalog with genres and likes attached.
func (service *Service) FindAll(context context.Context) ([]*Film, error) {
	return service.filmRepository.FindAll(context)
}

// Create validates and persists a brand new film.
//
// # Business Rules
//   - Name is mandatory.
//   - Description is capped at [MaxDescriptionLen] characters.
//   - Release date must not precede [EarliestReleaseDate].
//   - Duration must be a positive number of minutes.
func (service *Service) Create(context context.Context, film *Film) (*Film, error) {
	if err := validateFilm(film); err != nil {
		return nil, err
	}

	if err := service.filmRepository.Create(context, film); err != nil {
		return nil, fmt.Errorf("film_service_create_failed: %w", err)
	}

	// Re-read so the response carries resolved genre/MPA names.
	return service.filmRepository.FindByID(context, film.ID)
}

// Update validates and rewrites an existing film (full-row replace).
func (service *Service) Update(context context.Context, film *Film) (*Film, error) {
	if err := validateFilm(film); err != nil {
		return nil, err
	}

	if err := service.filmRepository.Update(context, film); err != nil {
		return nil, err
	}

	return service.filmRepository.FindByID(context, film.ID)
}

// GetByID returns the film with the given ID or apperr.NotFound.
func (service *Service) GetByID(context context.Context, id int64) (*Film, error) {
	return service.filmRepository.FindByID(context, id)
}

// AddLike records that userID likes filmID.
//
// # Returns
//   - apperr.NotFound if the film or the user does not exist.
//   - apperr.Conflict if the like already exists.
func (service *Service) AddLike(context context.Context, filmID, userID int64) error {
	if err := service.checkLikePair(context, filmID, userID); err != nil {
		return err
	}

	if err := service.filmRepository.AddLike(context, filmID, userID); err != nil {
		return err
	}

	service.invalidatePopular(context)
	return nil
}

// DeleteLike removes userID's like from filmID.
//
// # Returns
//   - apperr.NotFound if the film or the user does not exist.
//   - apperr.Conflict if no like exists to remove.
func (service *Service) DeleteLike(context context.Context, filmID, userID int64) error {
	if err := service.checkLikePair(context, filmID, userID); err != nil {
		return err
	}

	if err := service.filmRepository.DeleteLike(context, filmID, userID); err != nil {
		return err
	}

	service.invalidatePopular(context)
	return nil
}

// MostPopular returns up to count films ranked by like count descending,
// ties broken by ascending film ID. A non-positive count is rejected.
//
// The ranking is served from the cache when possible; cache failures are
// logged and fall through to the repository.
func (service *Service) MostPopular(context context.Context, count int) ([]*Film, error) {
	v := &validate.Validator{}
	if err := v.Custom("count", count <= 0, "Must be at least 1").Err(); err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)

	cached, err := service.popularCache.Get(context, count)
	if err != nil {
		logger.Warn("popular films cache read failed", slog.Any("error", err))
	}
	if cached != nil {
		return cached, nil
	}

	films, err := service.filmRepository.MostPopular(context, count)
	if err != nil {
		return nil, err
	}

	if err := service.popularCache.Set(context, count, films); err != nil {
		logger.Warn("popular films cache write failed", slog.Any("error", err))
	}

	return films, nil
}

// SearchByTitle returns films whose name contains the query, case-insensitively.
func (service *Service) SearchByTitle(context context.Context, query string) ([]*Film, error) {
	v := &validate.Validator{}
	if err := v.Required("q", query).Err(); err != nil {
		return nil, err
	}

	return service.filmRepository.SearchByTitle(context, query)
}

// checkLikePair verifies both sides of a like mutation exist.
func (service *Service) checkLikePair(context context.Context, filmID, userID int64) error {
	if _, err := service.filmRepository.FindByID(context, filmID); err != nil {
		return err
	}
	if _, err := service.users.FindByID(context, userID); err != nil {
		return err
	}
	return nil
}

// invalidatePopular drops the cached rankings after a like mutation. The TTL
// is the backstop, so a failed invalidation is logged, not returned.
func (service *Service) invalidatePopular(context context.Context) {
	if err := service.popularCache.Invalidate(context); err != nil {
		ctxutil.GetLogger(context).Warn("popular films cache invalidation failed",
			slog.Any("error", err))
	}
}

// validateFilm applies the boundary rules shared by Create and Update.
func validateFilm(film *Film) error {
	v := &validate.Validator{}
	return v.
		Required("name", film.Name).
		MaxLen("description", film.Description, MaxDescriptionLen).
		NotBefore("releaseDate", film.ReleaseDate, EarliestReleaseDate).
		Positive("duration", int64(film.Duration)).
		Positive("mpa.id", int64(film.MPA.ID)).
		Err()
}
