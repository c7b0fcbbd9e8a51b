// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package review

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quangdm/revio/internal/platform/dberr"
	"github.com/quangdm/revio/pkg/pagination"
)

// PostgresRepository implements the review Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the review Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Reviews

/*
ListByTitle returns a page of a title's reviews in publication order, oldest
first.

Parameters:
  - context: context.Context
  - titleID: Parent title identifier
  - params: Page and limit

Returns:
  - []Review: The requested page with author usernames hydrated
  - int: Total number of reviews on the title
  - error: Storage errors
*/
func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int64, params pagination.Params) ([]Review, int, error) {
	const countQuery = `SELECT COUNT(*) FROM review.review WHERE title_id = $1`

	const listQuery = `
		SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.created_at
		FROM review.review r
		JOIN users.account u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.created_at ASC, r.id ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	rows, err := repository.pool.Query(context, listQuery, titleID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ID,
			&review.TitleID,
			&review.AuthorID,
			&review.Author,
			&review.Text,
			&review.Score,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

// FindByID retrieves a review scoped to its parent title. The title filter is
// part of the lookup, so a mismatched parent yields NotFound.
func (repository *PostgresRepository) FindByID(context context.Context, titleID, reviewID int64) (*Review, error) {
	const query = `
		SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.created_at
		FROM review.review r
		JOIN users.account u ON u.id = r.author_id
		WHERE r.title_id = $1 AND r.id = $2`

	review := &Review{}
	err := repository.pool.QueryRow(context, query, titleID, reviewID).Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.Author,
		&review.Text,
		&review.Score,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_review")
	}

	return review, nil
}

// ExistsByAuthor reports whether the author already reviewed the title.
func (repository *PostgresRepository) ExistsByAuthor(context context.Context, titleID int64, authorID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM review.review WHERE title_id = $1 AND author_id = $2
		)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists_by_author")
	}

	return exists, nil
}

// Create inserts a new review. The UNIQUE (title_id, author_id) constraint is
// the last line of defense against concurrent double-submission; a violation
// is translated to a validation error by the dberr layer.
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	const query = `
		INSERT INTO review.review (title_id, author_id, text, score, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	review.CreatedAt = time.Now()

	err := repository.pool.QueryRow(context, query,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
		review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		return dberr.Wrap(err, "create_review")
	}

	return nil
}

// Update rewrites the review's mutable fields.
func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	const query = `UPDATE review.review SET text = $2, score = $3 WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_review")
	}

	return nil
}

// Delete removes a review. Comments cascade.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM review.review WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_review")
	}

	return nil
}

// # Comments

// ListComments returns a page of a review's comments, oldest first.
func (repository *PostgresRepository) ListComments(context context.Context, reviewID int64, params pagination.Params) ([]Comment, int, error) {
	const countQuery = `SELECT COUNT(*) FROM review.comment WHERE review_id = $1`

	const listQuery = `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.created_at
		FROM review.comment c
		JOIN users.account u ON u.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY c.id ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	rows, err := repository.pool.Query(context, listQuery, reviewID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var comment Comment
		err := rows.Scan(
			&comment.ID,
			&comment.ReviewID,
			&comment.AuthorID,
			&comment.Author,
			&comment.Text,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

// FindCommentByID retrieves a comment scoped to its parent review.
func (repository *PostgresRepository) FindCommentByID(context context.Context, reviewID, commentID int64) (*Comment, error) {
	const query = `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.created_at
		FROM review.comment c
		JOIN users.account u ON u.id = c.author_id
		WHERE c.review_id = $1 AND c.id = $2`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, reviewID, commentID).Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.AuthorID,
		&comment.Author,
		&comment.Text,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}

	return comment, nil
}

// CreateComment inserts a new comment.
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO review.comment (review_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	comment.CreatedAt = time.Now()

	err := repository.pool.QueryRow(context, query,
		comment.ReviewID,
		comment.AuthorID,
		comment.Text,
		comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}

	return nil
}

// UpdateComment rewrites the comment's text.
func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	const query = `UPDATE review.comment SET text = $2 WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_comment")
	}

	return nil
}

// DeleteComment removes a comment.
func (repository *PostgresRepository) DeleteComment(context context.Context, id int64) error {
	const query = `DELETE FROM review.comment WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_comment")
	}

	return nil
}
