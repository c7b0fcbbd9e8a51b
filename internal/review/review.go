// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

/*
Package review implements user feedback on catalog titles.

A review is one user's scored opinion of a title; each user gets at most one
review per title. Comments hang off a review and form the discussion thread.
Both resources live strictly inside their parent's URL scope: a review
belongs to /titles/{titleID}, a comment to /titles/{titleID}/reviews/{reviewID},
and a child reached through the wrong parent simply does not exist.

Architecture:

  - Service: Scope checks, ownership-based authorization, partial updates.
  - Repository: Abstracted interface for Postgres review/comment storage.
  - Handler: Nested REST endpoints under /titles.
*/
package review

import "time"

// Score bounds for a review.
const (
	MinScore = 1
	MaxScore = 10
)

// Review is one user's scored opinion of a title.
//
// The author is rendered as a username; the underlying user ID stays
// internal. Uniqueness per (title, author) is enforced both in the service
// and by a storage constraint. The score is optional: a scoreless review is
// plain commentary and contributes nothing to the title's average rating.
type Review struct {
	ID        int64     `json:"id"`
	TitleID   int64     `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     *int      `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
}

// Comment is a single entry in a review's discussion thread.
type Comment struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
}
