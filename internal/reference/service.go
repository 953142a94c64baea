// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package reference

import "context"

// Service exposes the dictionary lookups.
//
// # Architecture
//
// The dictionaries carry no business rules, so the service is a thin pass
// through kept for layering symmetry with the other domains.
type Service struct {
	referenceRepository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{referenceRepository: repository}
}

// ListGenres returns all genres ordered by ID ascending.
func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.referenceRepository.ListGenres(context)
}

// GetGenreByID returns the genre with the given ID or apperr.NotFound.
func (service *Service) GetGenreByID(context context.Context, id int) (*Genre, error) {
	return service.referenceRepository.GetGenreByID(context, id)
}

// ListMpaRatings returns all MPA ratings ordered by ID ascending.
func (service *Service) ListMpaRatings(context context.Context) ([]*MpaRating, error) {
	return service.referenceRepository.ListMpaRatings(context)
}

// GetMpaRatingByID returns the MPA rating with the given ID or apperr.NotFound.
func (service *Service) GetMpaRatingByID(context context.Context, id int) (*MpaRating, error) {
	return service.referenceRepository.GetMpaRatingByID(context, id)
}
