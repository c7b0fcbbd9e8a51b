// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package taxonomy

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quangdm/revio/internal/platform/apperr"
	"github.com/quangdm/revio/internal/platform/dberr"
	"github.com/quangdm/revio/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the term Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
List returns terms of one kind, newest first, with optional name search.

Parameters:
  - context: context.Context
  - kind: Term kind to scope the query to
  - search: Case-insensitive substring applied to the name (empty = no filter)
  - params: Page and limit

Returns:
  - []Term: The requested page of terms
  - int: Total number of matching terms across all pages
  - error: Storage errors
*/
func (repository *PostgresRepository) List(context context.Context, kind, search string, params pagination.Params) ([]Term, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM catalog.term
		WHERE kind = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')`

	const listQuery = `
		SELECT id, kind, name, slug
		FROM catalog.term
		WHERE kind = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY id DESC
		LIMIT $3 OFFSET $4`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, kind, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_terms")
	}

	rows, err := repository.pool.Query(context, listQuery, kind, search, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_terms")
	}
	defer rows.Close()

	terms := make([]Term, 0)
	for rows.Next() {
		var term Term
		if err := rows.Scan(&term.ID, &term.Kind, &term.Name, &term.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_term")
		}
		terms = append(terms, term)
	}

	return terms, total, nil
}

// Create inserts a new term. A duplicate (kind, slug) pair surfaces as a
// validation error via the dberr translation layer.
func (repository *PostgresRepository) Create(context context.Context, term *Term) error {
	const query = `
		INSERT INTO catalog.term (kind, name, slug)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := repository.pool.QueryRow(context, query, term.Kind, term.Name, term.Slug).Scan(&term.ID)
	if err != nil {
		return dberr.Wrap(err, "create_term")
	}

	return nil
}

// FindBySlug retrieves a single term of the given kind.
func (repository *PostgresRepository) FindBySlug(context context.Context, kind, slug string) (*Term, error) {
	const query = `
		SELECT id, kind, name, slug
		FROM catalog.term
		WHERE kind = $1 AND slug = $2`

	term := &Term{}
	err := repository.pool.QueryRow(context, query, kind, slug).Scan(
		&term.ID,
		&term.Kind,
		&term.Name,
		&term.Slug,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_term_by_slug")
	}

	return term, nil
}

// FindBySlugs retrieves several terms of one kind in a single round trip,
// preserving the caller's slug order.
func (repository *PostgresRepository) FindBySlugs(context context.Context, kind string, slugs []string) ([]Term, error) {
	if len(slugs) == 0 {
		return []Term{}, nil
	}

	const query = `
		SELECT id, kind, name, slug
		FROM catalog.term
		WHERE kind = $1 AND slug = ANY($2)`

	rows, err := repository.pool.Query(context, query, kind, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "find_terms_by_slugs")
	}
	defer rows.Close()

	bySlug := make(map[string]Term, len(slugs))
	for rows.Next() {
		var term Term
		if err := rows.Scan(&term.ID, &term.Kind, &term.Name, &term.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_term")
		}
		bySlug[term.Slug] = term
	}

	// Re-assemble in request order so validation can name the missing slug.
	terms := make([]Term, 0, len(slugs))
	for _, requested := range slugs {
		term, found := bySlug[requested]
		if !found {
			return nil, apperr.NotFound("Term '" + requested + "'")
		}
		terms = append(terms, term)
	}

	return terms, nil
}

// DeleteBySlug removes a term of the given kind, reporting NotFound when the
// slug does not exist.
func (repository *PostgresRepository) DeleteBySlug(context context.Context, kind, slug string) error {
	const query = `DELETE FROM catalog.term WHERE kind = $1 AND slug = $2`

	tag, err := repository.pool.Exec(context, query, kind, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_term")
	}

	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_term")
	}

	return nil
}
