// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package review_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangdm/revio/internal/platform/apperr"
	"github.com/quangdm/revio/internal/platform/sec"
	"github.com/quangdm/revio/internal/review"
	"github.com/quangdm/revio/pkg/pagination"
	"github.com/quangdm/revio/pkg/pointer"
)

// # Test Doubles

// fakeRepository is an in-memory review/comment store.
type fakeRepository struct {
	nextID   int64
	reviews  map[int64]*review.Review
	comments map[int64]*review.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:   1,
		reviews:  make(map[int64]*review.Review),
		comments: make(map[int64]*review.Comment),
	}
}

func (repo *fakeRepository) ListByTitle(_ context.Context, titleID int64, _ pagination.Params) ([]review.Review, int, error) {
	result := make([]review.Review, 0)
	for _, stored := range repo.reviews {
		if stored.TitleID == titleID {
			result = append(result, *stored)
		}
	}
	return result, len(result), nil
}

func (repo *fakeRepository) FindByID(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	stored, found := repo.reviews[reviewID]
	if !found || stored.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	copied := *stored
	return &copied, nil
}

func (repo *fakeRepository) ExistsByAuthor(_ context.Context, titleID int64, authorID string) (bool, error) {
	for _, stored := range repo.reviews {
		if stored.TitleID == titleID && stored.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeRepository) Create(_ context.Context, entity *review.Review) error {
	entity.ID = repo.nextID
	repo.nextID++
	copied := *entity
	repo.reviews[entity.ID] = &copied
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, entity *review.Review) error {
	stored, found := repo.reviews[entity.ID]
	if !found {
		return apperr.NotFound("Review")
	}
	stored.Text = entity.Text
	stored.Score = entity.Score
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, found := repo.reviews[id]; !found {
		return apperr.NotFound("Review")
	}
	delete(repo.reviews, id)
	return nil
}

func (repo *fakeRepository) ListComments(_ context.Context, reviewID int64, _ pagination.Params) ([]review.Comment, int, error) {
	result := make([]review.Comment, 0)
	for _, stored := range repo.comments {
		if stored.ReviewID == reviewID {
			result = append(result, *stored)
		}
	}
	return result, len(result), nil
}

func (repo *fakeRepository) FindCommentByID(_ context.Context, reviewID, commentID int64) (*review.Comment, error) {
	stored, found := repo.comments[commentID]
	if !found || stored.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	copied := *stored
	return &copied, nil
}

func (repo *fakeRepository) CreateComment(_ context.Context, entity *review.Comment) error {
	entity.ID = repo.nextID
	repo.nextID++
	copied := *entity
	repo.comments[entity.ID] = &copied
	return nil
}

func (repo *fakeRepository) UpdateComment(_ context.Context, entity *review.Comment) error {
	stored, found := repo.comments[entity.ID]
	if !found {
		return apperr.NotFound("Comment")
	}
	stored.Text = entity.Text
	return nil
}

func (repo *fakeRepository) DeleteComment(_ context.Context, id int64) error {
	if _, found := repo.comments[id]; !found {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, id)
	return nil
}

// fakeTitles knows a fixed set of title IDs.
type fakeTitles struct {
	known map[int64]bool
}

func (titles *fakeTitles) Exists(_ context.Context, id int64) (bool, error) {
	return titles.known[id], nil
}

func author(id string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Username: "user-" + id, Role: sec.RoleUser}
}

func moderator() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "mod-1", Username: "mod", Role: sec.RoleModerator}
}

func newTestService(repo *fakeRepository) *review.Service {
	titles := &fakeTitles{known: map[int64]bool{1: true, 2: true}}
	return review.NewService(repo, titles, slog.New(slog.DiscardHandler))
}

// # Review Use Cases

/*
TestCreateReview_OnePerAuthor verifies the one-review-per-(title, author)
rule: a second review of the same title is a validation error, while the same
user may still review a different title.
*/
func TestCreateReview_OnePerAuthor(t *testing.T) {
	service := newTestService(newFakeRepository())
	actor := author("u1")

	first, err := service.CreateReview(context.Background(), actor, 1, review.ReviewInput{
		Text:  "Loved it",
		Score: pointer.To(9),
	})
	require.NoError(t, err)
	assert.Equal(t, actor.Username, first.Author)

	_, err = service.CreateReview(context.Background(), actor, 1, review.ReviewInput{
		Text:  "Second thoughts",
		Score: pointer.To(5),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)

	_, err = service.CreateReview(context.Background(), actor, 2, review.ReviewInput{
		Text:  "Different title",
		Score: pointer.To(7),
	})
	assert.NoError(t, err)
}

/*
TestCreateReview_UnknownTitle verifies that the parent scope must exist.
*/
func TestCreateReview_UnknownTitle(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.CreateReview(context.Background(), author("u1"), 99, review.ReviewInput{
		Text:  "Ghost title",
		Score: pointer.To(5),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

/*
TestCreateReview_ScoreBounds verifies that a supplied score must fall within
the 1..10 range.
*/
func TestCreateReview_ScoreBounds(t *testing.T) {
	service := newTestService(newFakeRepository())

	for _, score := range []int{0, 11, -1} {
		_, err := service.CreateReview(context.Background(), author("u1"), 1, review.ReviewInput{
			Text:  "Out of range",
			Score: pointer.To(score),
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}
}

/*
TestCreateReview_OptionalScore verifies that the score may be omitted
entirely: the review is accepted and stays scoreless through later
text-only edits.
*/
func TestCreateReview_OptionalScore(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	actor := author("u1")

	created, err := service.CreateReview(context.Background(), actor, 1, review.ReviewInput{
		Text: "No score supplied",
	})
	require.NoError(t, err)
	assert.Nil(t, created.Score)

	updated, err := service.UpdateReview(context.Background(), actor, 1, created.ID, review.ReviewUpdateInput{
		Text: pointer.To("Still unscored"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Score)
}

/*
TestUpdateReview_Partial verifies that a score-only patch leaves the text
untouched, and vice versa.
*/
func TestUpdateReview_Partial(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	actor := author("u1")

	created, err := service.CreateReview(context.Background(), actor, 1, review.ReviewInput{
		Text:  "Original text",
		Score: pointer.To(6),
	})
	require.NoError(t, err)

	updated, err := service.UpdateReview(context.Background(), actor, 1, created.ID, review.ReviewUpdateInput{
		Score: pointer.To(9),
	})
	require.NoError(t, err)
	assert.Equal(t, "Original text", updated.Text)
	assert.Equal(t, pointer.To(9), updated.Score)

	updated, err = service.UpdateReview(context.Background(), actor, 1, created.ID, review.ReviewUpdateInput{
		Text: pointer.To("Revised text"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Revised text", updated.Text)
	assert.Equal(t, pointer.To(9), updated.Score)
}

/*
TestUpdateReview_Ownership verifies the mutation matrix: strangers are
forbidden, the author and moderators pass.
*/
func TestUpdateReview_Ownership(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	owner := author("owner")

	created, err := service.CreateReview(context.Background(), owner, 1, review.ReviewInput{
		Text:  "Mine",
		Score: pointer.To(8),
	})
	require.NoError(t, err)

	_, err = service.UpdateReview(context.Background(), author("intruder"), 1, created.ID, review.ReviewUpdateInput{
		Text: pointer.To("Hijacked"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	_, err = service.UpdateReview(context.Background(), moderator(), 1, created.ID, review.ReviewUpdateInput{
		Text: pointer.To("Moderated"),
	})
	assert.NoError(t, err)

	err = service.DeleteReview(context.Background(), author("intruder"), 1, created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	err = service.DeleteReview(context.Background(), owner, 1, created.ID)
	assert.NoError(t, err)
}

/*
TestReview_WrongTitleScope verifies that reaching a review through the wrong
parent title is a 404, even for its author.
*/
func TestReview_WrongTitleScope(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	actor := author("u1")

	created, err := service.CreateReview(context.Background(), actor, 1, review.ReviewInput{
		Text:  "Scoped",
		Score: pointer.To(7),
	})
	require.NoError(t, err)

	_, err = service.GetReview(context.Background(), 2, created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

// # Comment Use Cases

/*
TestComments_NestingAndScope verifies the comment thread: creation under the
right (title, review) pair works, while a mismatched pair is a 404.
*/
func TestComments_NestingAndScope(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	actor := author("u1")

	created, err := service.CreateReview(context.Background(), actor, 1, review.ReviewInput{
		Text:  "Reviewed",
		Score: pointer.To(8),
	})
	require.NoError(t, err)

	comment, err := service.CreateComment(context.Background(), author("u2"), 1, created.ID, review.CommentInput{
		Text: "Agreed",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-u2", comment.Author)

	// The same review addressed through the wrong title does not exist.
	_, err = service.CreateComment(context.Background(), author("u2"), 2, created.ID, review.CommentInput{
		Text: "Lost",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	// The comment is invisible through a mismatched review scope too.
	otherReview, err := service.CreateReview(context.Background(), author("u3"), 2, review.ReviewInput{
		Text:  "Unrelated",
		Score: pointer.To(4),
	})
	require.NoError(t, err)

	_, err = service.GetComment(context.Background(), 2, otherReview.ID, comment.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

/*
TestUpdateComment_Ownership verifies comment mutation permissions.
*/
func TestUpdateComment_Ownership(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateReview(context.Background(), author("u1"), 1, review.ReviewInput{
		Text:  "Reviewed",
		Score: pointer.To(8),
	})
	require.NoError(t, err)

	comment, err := service.CreateComment(context.Background(), author("u2"), 1, created.ID, review.CommentInput{
		Text: "First",
	})
	require.NoError(t, err)

	_, err = service.UpdateComment(context.Background(), author("u3"), 1, created.ID, comment.ID, review.CommentUpdateInput{
		Text: pointer.To("Edited by stranger"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	updated, err := service.UpdateComment(context.Background(), author("u2"), 1, created.ID, comment.ID, review.CommentUpdateInput{
		Text: pointer.To("Edited by author"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Edited by author", updated.Text)

	err = service.DeleteComment(context.Background(), moderator(), 1, created.ID, comment.ID)
	assert.NoError(t, err)
}
