// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package title

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quangdm/revio/internal/catalog/taxonomy"
	"github.com/quangdm/revio/internal/platform/dberr"
	"github.com/quangdm/revio/pkg/pagination"
)

// PostgresRepository implements the title Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the title Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// titleColumns is the hydration projection shared by List and FindByID.
// The rating is an aggregate over review scores, recomputed on every read;
// scoreless reviews carry a NULL score and stay out of the average.
const titleColumns = `
	t.id, t.name, t.year, t.description,
	c.id, c.kind, c.name, c.slug,
	(SELECT AVG(r.score)::float8 FROM review.review r WHERE r.title_id = t.id) AS rating`

// titleFilterClause applies the AND-combined listing filters. The year is
// matched as a substring of its decimal text form.
const titleFilterClause = `
	($1 = '' OR t.name ILIKE '%' || $1 || '%')
	AND ($2 = '' OR CAST(t.year AS TEXT) LIKE '%' || $2 || '%')
	AND ($3 = '' OR c.slug ILIKE '%' || $3 || '%')
	AND ($4 = '' OR EXISTS (
		SELECT 1
		FROM catalog.title_genre tg
		JOIN catalog.term g ON g.id = tg.term_id
		WHERE tg.title_id = t.id AND g.slug ILIKE '%' || $4 || '%'
	))`

/*
List returns a page of titles matching the filters, ordered by release year.

Description: Runs a count query and a page query over the same filter clause,
then hydrates the genre sets for the returned page in a single batched lookup.

Parameters:
  - context: context.Context
  - filters: AND-combined listing filters
  - params: Page and limit

Returns:
  - []Title: The requested page, fully hydrated
  - int: Total number of matching titles across all pages
  - error: Storage errors
*/
func (repository *PostgresRepository) List(context context.Context, filters Filters, params pagination.Params) ([]Title, int, error) {
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM catalog.title t
		LEFT JOIN catalog.term c ON c.id = t.category_id
		WHERE %s`, titleFilterClause)

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM catalog.title t
		LEFT JOIN catalog.term c ON c.id = t.category_id
		WHERE %s
		ORDER BY t.year ASC, t.id ASC
		LIMIT $5 OFFSET $6`, titleColumns, titleFilterClause)

	filterArgs := []any{filters.Name, filters.Year, filters.CategorySlug, filters.GenreSlug}

	var total int
	if err := repository.pool.QueryRow(context, countQuery, filterArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	pageArgs := append(filterArgs, params.Limit, params.Offset())
	rows, err := repository.pool.Query(context, listQuery, pageArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]Title, 0)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, err
		}
		titles = append(titles, *title)
	}
	rows.Close()

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

// FindByID retrieves a fully hydrated title.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Title, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM catalog.title t
		LEFT JOIN catalog.term c ON c.id = t.category_id
		WHERE t.id = $1`, titleColumns)

	row := repository.pool.QueryRow(context, query, id)
	title, err := scanTitle(row)
	if err != nil {
		return nil, err
	}

	page := []Title{*title}
	if err := repository.attachGenres(context, page); err != nil {
		return nil, err
	}

	return &page[0], nil
}

// Create inserts the title and its genre links inside one transaction.
func (repository *PostgresRepository) Create(context context.Context, title *Title) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer func() { _ = transaction.Rollback(context) }()

	const insertQuery = `
		INSERT INTO catalog.title (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err = transaction.QueryRow(context, insertQuery,
		title.Name,
		title.Year,
		title.Description,
		categoryID(title),
	).Scan(&title.ID)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := replaceGenreLinks(context, transaction, title); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}

	return nil
}

// Update rewrites the title row and replaces its genre links inside one transaction.
func (repository *PostgresRepository) Update(context context.Context, title *Title) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer func() { _ = transaction.Rollback(context) }()

	const updateQuery = `
		UPDATE catalog.title
		SET name = $2, year = $3, description = $4, category_id = $5
		WHERE id = $1`

	tag, err := transaction.Exec(context, updateQuery,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		categoryID(title),
	)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_title")
	}

	const clearQuery = `DELETE FROM catalog.title_genre WHERE title_id = $1`
	if _, err := transaction.Exec(context, clearQuery, title.ID); err != nil {
		return dberr.Wrap(err, "clear_title_genres")
	}

	if err := replaceGenreLinks(context, transaction, title); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}

	return nil
}

// Delete removes a title. Reviews, comments and genre links cascade.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM catalog.title WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_title")
	}

	return nil
}

// Exists reports whether a title with the given ID is present.
func (repository *PostgresRepository) Exists(context context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM catalog.title WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "title_exists")
	}

	return exists, nil
}

// # Hydration Helpers

// scanTitle reads one titleColumns row. The category join is LEFT, so its
// columns arrive as NULLs when the title has no category.
func scanTitle(row pgx.Row) (*Title, error) {
	title := &Title{Genres: make([]taxonomy.Term, 0)}

	var catID *int
	var catKind, catName, catSlug *string

	err := row.Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&catID,
		&catKind,
		&catName,
		&catSlug,
		&title.Rating,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_title")
	}

	if catID != nil {
		title.Category = &taxonomy.Term{
			ID:   *catID,
			Kind: *catKind,
			Name: *catName,
			Slug: *catSlug,
		}
	}

	return title, nil
}

// attachGenres hydrates the genre sets for a page of titles in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(titles))
	index := make(map[int64]*Title, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].ID)
		index[titles[i].ID] = &titles[i]
	}

	const query = `
		SELECT tg.title_id, g.id, g.kind, g.name, g.slug
		FROM catalog.title_genre tg
		JOIN catalog.term g ON g.id = tg.term_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name ASC`

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var term taxonomy.Term
		if err := rows.Scan(&titleID, &term.ID, &term.Kind, &term.Name, &term.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if owner, ok := index[titleID]; ok {
			owner.Genres = append(owner.Genres, term)
		}
	}

	return nil
}

// replaceGenreLinks inserts one join row per resolved genre term.
func replaceGenreLinks(context context.Context, transaction pgx.Tx, title *Title) error {
	const linkQuery = `INSERT INTO catalog.title_genre (title_id, term_id) VALUES ($1, $2)`

	for _, genre := range title.Genres {
		if _, err := transaction.Exec(context, linkQuery, title.ID, genre.ID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}

	return nil
}

// categoryID extracts the nullable FK value from the hydrated category.
func categoryID(title *Title) *int {
	if title.Category == nil {
		return nil
	}
	return &title.Category.ID
}
