// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/quangdm/revio/internal/platform/apperr"
	"github.com/quangdm/revio/internal/platform/perm"
	"github.com/quangdm/revio/internal/platform/sec"
	"github.com/quangdm/revio/internal/platform/validate"
	"github.com/quangdm/revio/pkg/pagination"
)

// Service implements review and comment use cases.
//
// Mutating operations take the acting user's claims so that ownership-based
// authorization happens next to the loaded resource, after existence checks.
// The ordering matters: a caller probing someone else's review through the
// wrong title gets 404, never 403.
type Service struct {
	repo   Repository
	titles TitleDirectory
	logger *slog.Logger
}

// NewService constructs a new review [Service].
func NewService(repo Repository, titles TitleDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

// # Reviews

// ListReviews returns a page of a title's reviews. An unknown title is a 404
// even though the result would just be empty; the parent scope must exist.
func (service *Service) ListReviews(context context.Context, titleID int64, params pagination.Params) ([]Review, int, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByTitle(context, titleID, params)
}

// GetReview retrieves one review scoped to its title.
func (service *Service) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, titleID, reviewID)
}

// ReviewInput holds the data for creating a review. The score may be omitted;
// when present it must fall within the 1..10 range.
type ReviewInput struct {
	Text  string `json:"text"`
	Score *int   `json:"score"`
}

/*
CreateReview validates and persists a new review by the acting user.

Description: The author is always the authenticated actor; it cannot be
supplied in the payload. A second review of the same title by the same user
is rejected with a validation error. The advisory pre-check covers the common
case; the storage constraint covers the race.

Parameters:
  - context: context.Context
  - actor: Authenticated user claims
  - titleID: Parent title identifier
  - input: ReviewInput

Returns:
  - *Review: Created entity with the author username hydrated
  - error: NotFound, validation, or storage errors
*/
func (service *Service) CreateReview(context context.Context, actor *sec.AuthClaims, titleID int64, input ReviewInput) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}

	validator := validate.New().Required("text", input.Text)
	if input.Score != nil {
		validator.Range("score", *input.Score, MinScore, MaxScore)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	alreadyReviewed, err := service.repo.ExistsByAuthor(context, titleID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if alreadyReviewed {
		return nil, apperr.ValidationError("You have already reviewed this title")
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
		slog.String("author_id", actor.UserID),
	)

	return review, nil
}

// ReviewUpdateInput holds a partial review update. Nil fields keep their
// stored value, so a score-only patch never blanks the text.
type ReviewUpdateInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// UpdateReview applies a partial update after an ownership check. Authors may
// edit their own reviews; moderators and admins may edit anyone's.
func (service *Service) UpdateReview(context context.Context, actor *sec.AuthClaims, titleID, reviewID int64, input ReviewUpdateInput) (*Review, error) {
	review, err := service.repo.FindByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := perm.AuthorizeObject(actor, http.MethodPatch, review.AuthorID, perm.ReviewMutation); err != nil {
		return nil, err
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = input.Score
	}

	validator := validate.New().Required("text", review.Text)
	if review.Score != nil {
		validator.Range("score", *review.Score, MinScore, MaxScore)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", reviewID))
	return review, nil
}

// DeleteReview removes a review after an ownership check.
func (service *Service) DeleteReview(context context.Context, actor *sec.AuthClaims, titleID, reviewID int64) error {
	review, err := service.repo.FindByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := perm.AuthorizeObject(actor, http.MethodDelete, review.AuthorID, perm.ReviewMutation); err != nil {
		return err
	}

	if err := service.repo.Delete(context, review.ID); err != nil {
		return err
	}

	service.logger.Info("review_deleted", slog.Int64("review_id", reviewID))
	return nil
}

// # Comments

// ListComments returns a page of a review's comments. Both parents must exist
// and agree; otherwise the thread does not exist.
func (service *Service) ListComments(context context.Context, titleID, reviewID int64, params pagination.Params) ([]Comment, int, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, reviewID, params)
}

// GetComment retrieves one comment scoped to its (title, review) pair.
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.FindCommentByID(context, reviewID, commentID)
}

// CommentInput holds the data for creating a comment.
type CommentInput struct {
	Text string `json:"text"`
}

// CreateComment validates and persists a new comment by the acting user.
func (service *Service) CreateComment(context context.Context, actor *sec.AuthClaims, titleID, reviewID int64, input CommentInput) (*Comment, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	if err := validate.New().Required("text", input.Text).Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     input.Text,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
		slog.String("author_id", actor.UserID),
	)

	return comment, nil
}

// CommentUpdateInput holds a partial comment update.
type CommentUpdateInput struct {
	Text *string `json:"text"`
}

// UpdateComment applies a partial update after an ownership check.
func (service *Service) UpdateComment(context context.Context, actor *sec.AuthClaims, titleID, reviewID, commentID int64, input CommentUpdateInput) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := perm.AuthorizeObject(actor, http.MethodPatch, comment.AuthorID, perm.ReviewMutation); err != nil {
		return nil, err
	}

	if input.Text != nil {
		comment.Text = *input.Text
	}

	if err := validate.New().Required("text", comment.Text).Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", commentID))
	return comment, nil
}

// DeleteComment removes a comment after an ownership check.
func (service *Service) DeleteComment(context context.Context, actor *sec.AuthClaims, titleID, reviewID, commentID int64) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := perm.AuthorizeObject(actor, http.MethodDelete, comment.AuthorID, perm.ReviewMutation); err != nil {
		return err
	}

	if err := service.repo.DeleteComment(context, comment.ID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.Int64("comment_id", commentID))
	return nil
}

// requireTitle turns a missing parent title into a NotFound before any
// child-resource work happens.
func (service *Service) requireTitle(context context.Context, titleID int64) error {
	exists, err := service.titles.Exists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}
