// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

//go:build integration
// +build integration

package title_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/quangdm/revio/internal/catalog/taxonomy"
	"github.com/quangdm/revio/internal/catalog/title"
	"github.com/quangdm/revio/internal/platform/migration"
	"github.com/quangdm/revio/internal/review"
	"github.com/quangdm/revio/pkg/pagination"
	"github.com/quangdm/revio/pkg/pointer"
	"github.com/quangdm/revio/pkg/uuid"
)

// setupCatalogStore starts a throwaway PostgreSQL container and applies the
// schema migrations against it.
func setupCatalogStore(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("revio_test"),
		postgres.WithUsername("revio"),
		postgres.WithPassword("revio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migration.RunUp(dsn, "../../../data/migrations", slog.New(slog.DiscardHandler)))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func seedCatalogAccount(t *testing.T, pool *pgxpool.Pool, username string) string {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users.account (id, username, email) VALUES ($1, $2, $3)`,
		id, username, username+"@example.com")
	require.NoError(t, err)
	return id
}

func seedCategory(t *testing.T, pool *pgxpool.Pool) *taxonomy.Term {
	t.Helper()
	category := &taxonomy.Term{Kind: taxonomy.KindCategory, Name: "Movies", Slug: "movies"}
	require.NoError(t, taxonomy.NewPostgresRepository(pool).Create(context.Background(), category))
	return category
}

/*
TestPostgresTitle_RatingIsMeanOfScores verifies the rating aggregate end to
end: a title with no reviews has no rating, and once reviews exist the rating
equals the mean of the supplied scores with scoreless reviews excluded.
*/
func TestPostgresTitle_RatingIsMeanOfScores(t *testing.T) {
	pool := setupCatalogStore(t)
	ctx := context.Background()

	category := seedCategory(t, pool)
	titles := title.NewPostgresRepository(pool)

	entity := &title.Title{Name: "The Mean", Year: 1999, Category: category}
	require.NoError(t, titles.Create(ctx, entity))

	loaded, err := titles.FindByID(ctx, entity.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.Rating)

	reviews := review.NewPostgresRepository(pool)
	submissions := []struct {
		author string
		score  *int
	}{
		{"alice", pointer.To(7)},
		{"bob", pointer.To(9)},
		{"carol", nil}, // scoreless commentary must not skew the mean
	}
	for _, submission := range submissions {
		authorID := seedCatalogAccount(t, pool, submission.author)
		require.NoError(t, reviews.Create(ctx, &review.Review{
			TitleID:  entity.ID,
			AuthorID: authorID,
			Text:     "Opinion",
			Score:    submission.score,
		}))
	}

	loaded, err = titles.FindByID(ctx, entity.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Rating)
	assert.InDelta(t, 8.0, *loaded.Rating, 0.0001)
}

/*
TestPostgresTitle_ListOrderedByYear verifies that the listing is sorted by
release year, ascending, regardless of insertion order.
*/
func TestPostgresTitle_ListOrderedByYear(t *testing.T) {
	pool := setupCatalogStore(t)
	ctx := context.Background()

	category := seedCategory(t, pool)
	titles := title.NewPostgresRepository(pool)

	for _, year := range []int{2005, 1999, 2010} {
		require.NoError(t, titles.Create(ctx, &title.Title{
			Name:     "Work",
			Year:     year,
			Category: category,
		}))
	}

	listed, total, err := titles.List(ctx, title.Filters{}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	years := make([]int, 0, len(listed))
	for _, item := range listed {
		years = append(years, item.Year)
	}
	assert.Equal(t, []int{1999, 2005, 2010}, years)
}
