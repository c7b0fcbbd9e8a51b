// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

//go:build integration
// +build integration

package review_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/quangdm/revio/internal/platform/migration"
	"github.com/quangdm/revio/internal/review"
	"github.com/quangdm/revio/pkg/pagination"
	"github.com/quangdm/revio/pkg/pointer"
	"github.com/quangdm/revio/pkg/uuid"
)

// setupReviewStore starts a throwaway PostgreSQL container and applies the
// schema migrations against it.
func setupReviewStore(t *testing.T) *pgxpool.Pool {
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

	require.NoError(t, migration.RunUp(dsn, "../../data/migrations", slog.New(slog.DiscardHandler)))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func seedReviewAccount(t *testing.T, pool *pgxpool.Pool, username string) string {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users.account (id, username, email) VALUES ($1, $2, $3)`,
		id, username, username+"@example.com")
	require.NoError(t, err)
	return id
}

func seedTitle(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO catalog.title (name, year) VALUES ('Reviewed Work', 2001) RETURNING id`,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

/*
TestPostgresReview_ListedInPublicationOrder verifies that a title's reviews
come back oldest first, and that a review stored without a score round-trips
with a nil score.
*/
func TestPostgresReview_ListedInPublicationOrder(t *testing.T) {
	pool := setupReviewStore(t)
	ctx := context.Background()

	titleID := seedTitle(t, pool)
	reviews := review.NewPostgresRepository(pool)

	scores := []*int{pointer.To(3), nil, pointer.To(10)}
	for i, score := range scores {
		authorID := seedReviewAccount(t, pool, fmt.Sprintf("reviewer-%d", i))
		require.NoError(t, reviews.Create(ctx, &review.Review{
			TitleID:  titleID,
			AuthorID: authorID,
			Text:     fmt.Sprintf("Opinion %d", i),
			Score:    score,
		}))
	}

	listed, total, err := reviews.ListByTitle(ctx, titleID, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, listed, 3)

	for i, item := range listed {
		assert.Equal(t, fmt.Sprintf("Opinion %d", i), item.Text)
	}
	assert.Equal(t, pointer.To(3), listed[0].Score)
	assert.Nil(t, listed[1].Score)
	assert.Equal(t, pointer.To(10), listed[2].Score)
}
