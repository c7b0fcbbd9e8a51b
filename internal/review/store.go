// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package review

import (
	"context"

	"github.com/quangdm/revio/pkg/pagination"
)

// TitleDirectory is the slice of the catalog the review service needs:
// just enough to verify that a parent title exists.
type TitleDirectory interface {
	Exists(context context.Context, id int64) (bool, error)
}

// Repository defines the storage contract for reviews and their comments.
type Repository interface {
	// ListByTitle returns a page of a title's reviews with author usernames
	// hydrated, plus the total count.
	ListByTitle(context context.Context, titleID int64, params pagination.Params) ([]Review, int, error)

	// FindByID retrieves a review scoped to its title. A review reached
	// through the wrong title is reported as missing.
	FindByID(context context.Context, titleID, reviewID int64) (*Review, error)

	// ExistsByAuthor reports whether the author already reviewed the title.
	ExistsByAuthor(context context.Context, titleID int64, authorID string) (bool, error)

	// Create persists a new review and fills in its generated ID and timestamp.
	Create(context context.Context, review *Review) error

	// Update rewrites the review's text and score.
	Update(context context.Context, review *Review) error

	// Delete removes a review. Its comments go with it.
	Delete(context context.Context, id int64) error

	// ListComments returns a page of a review's comments, plus the total count.
	ListComments(context context.Context, reviewID int64, params pagination.Params) ([]Comment, int, error)

	// FindCommentByID retrieves a comment scoped to its review.
	FindCommentByID(context context.Context, reviewID, commentID int64) (*Comment, error)

	// CreateComment persists a new comment and fills in its generated ID and timestamp.
	CreateComment(context context.Context, comment *Comment) error

	// UpdateComment rewrites the comment's text.
	UpdateComment(context context.Context, comment *Comment) error

	// DeleteComment removes a comment.
	DeleteComment(context context.Context, id int64) error
}
