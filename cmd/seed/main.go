// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

// Command seed fills a development database with generated users, films,
// likes, and friendship edges.
//
// # Usage
//
//	DATABASE_URL=postgres://... go run ./cmd/seed -users 50 -films 100
//
// The seeder is additive and intended for development environments only.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmorate/filmorate/internal/film"
	"github.com/filmorate/filmorate/internal/platform/config"
	pgstore "github.com/filmorate/filmorate/internal/platform/postgres"
	"github.com/filmorate/filmorate/internal/user"
)

// Dictionary bounds from the seeded migration data.
const (
	mpaRatingCount = 5
	genreCount     = 6
)

func main() {
	userCount := flag.Int("users", 50, "number of users to create")
	filmCount := flag.Int("films", 100, "number of films to create")
	likesPerUser := flag.Int("likes", 5, "average likes per user")
	friendsPerUser := flag.Int("friends", 3, "average friend requests per user")
	seed := flag.Uint64("seed", 0, "faker seed (0 = random)")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).
		With(slog.String("app", "filmorate-seed"))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	faker := gofakeit.New(*seed)
	seeder := &seeder{pool: pool, faker: faker, log: log}

	userIDs, err := seeder.users(ctx, *userCount)
	must(log, err, "seed users")

	filmIDs, err := seeder.films(ctx, *filmCount)
	must(log, err, "seed films")

	must(log, seeder.likes(ctx, userIDs, filmIDs, *likesPerUser), "seed likes")
	must(log, seeder.friendships(ctx, userIDs, *friendsPerUser), "seed friendships")

	log.Info("seeding complete",
		slog.Int("users", len(userIDs)),
		slog.Int("films", len(filmIDs)),
	)
}

type seeder struct {
	pool  *pgxpool.Pool
	faker *gofakeit.Faker
	log   *slog.Logger
}

// users inserts count generated accounts and returns their IDs.
func (s *seeder) users(ctx context.Context, count int) ([]int64, error) {
	const insert = `
		INSERT INTO users (email, login, user_name, birthday)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id;
	`

	now := time.Now()
	ids := make([]int64, 0, count)

	for i := 0; i < count; i++ {
		var id int64
		err := s.pool.QueryRow(ctx, insert,
			s.faker.Email(),
			s.faker.Username(),
			s.faker.Name(),
			s.faker.DateRange(now.AddDate(-70, 0, 0), now.AddDate(-13, 0, 0)),
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	s.log.Info("users seeded", slog.Int("count", len(ids)))
	return ids, nil
}

// films inserts count generated films with random genre associations.
func (s *seeder) films(ctx context.Context, count int) ([]int64, error) {
	const insert = `
		INSERT INTO films (film_name, description, release_date, duration, rate, mpa_id)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING film_id;
	`
	const attachGenre = `
		INSERT INTO film_genres (film_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`

	ids := make([]int64, 0, count)

	for i := 0; i < count; i++ {
		description := s.faker.Sentence(10)
		if len(description) > film.MaxDescriptionLen {
			description = description[:film.MaxDescriptionLen]
		}

		var id int64
		err := s.pool.QueryRow(ctx, insert,
			s.faker.MovieName(),
			description,
			s.faker.DateRange(film.EarliestReleaseDate, time.Now()),
			s.faker.Number(45, 240),
			s.faker.Number(1, mpaRatingCount),
		).Scan(&id)
		if err != nil {
			return nil, err
		}

		for g := 0; g < s.faker.Number(0, 3); g++ {
			if _, err := s.pool.Exec(ctx, attachGenre, id, s.faker.Number(1, genreCount)); err != nil {
				return nil, err
			}
		}

		ids = append(ids, id)
	}

	s.log.Info("films seeded", slog.Int("count", len(ids)))
	return ids, nil
}

// likes distributes random like rows and refreshes the derived rate column.
func (s *seeder) likes(ctx context.Context, userIDs, filmIDs []int64, perUser int) error {
	if len(filmIDs) == 0 {
		return nil
	}

	const insert = `
		INSERT INTO film_likes (film_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`
	const refreshRates = `
		UPDATE films f
		SET rate = (SELECT COUNT(*) FROM film_likes fl WHERE fl.film_id = f.film_id);
	`

	for _, userID := range userIDs {
		for i := 0; i < s.faker.Number(0, perUser*2); i++ {
			filmID := filmIDs[s.faker.Number(0, len(filmIDs)-1)]
			if _, err := s.pool.Exec(ctx, insert, filmID, userID); err != nil {
				return err
			}
		}
	}

	if _, err := s.pool.Exec(ctx, refreshRates); err != nil {
		return err
	}

	s.log.Info("likes seeded")
	return nil
}

// friendships creates random edges: some pending requests, some confirmed
// mutual pairs (two APPROVED rows).
func (s *seeder) friendships(ctx context.Context, userIDs []int64, perUser int) error {
	if len(userIDs) < 2 {
		return nil
	}

	const insert = `
		INSERT INTO friendship (user_id, friend_id, friend_status)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING;
	`

	for _, userID := range userIDs {
		for i := 0; i < s.faker.Number(0, perUser*2); i++ {
			friendID := userIDs[s.faker.Number(0, len(userIDs)-1)]
			if friendID == userID {
				continue
			}

			if s.faker.Bool() {
				// Confirmed pair, one row per direction.
				if _, err := s.pool.Exec(ctx, insert, userID, friendID, user.StatusApproved); err != nil {
					return err
				}
				if _, err := s.pool.Exec(ctx, insert, friendID, userID, user.StatusApproved); err != nil {
					return err
				}
			} else if _, err := s.pool.Exec(ctx, insert, userID, friendID, user.StatusRequested); err != nil {
				return err
			}
		}
	}

	s.log.Info("friendships seeded")
	return nil
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
