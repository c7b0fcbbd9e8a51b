// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

/*
Package title implements the core catalog entity that reviews attach to.

A title is a reviewable work (a film, a book, an album) positioned in the
taxonomy: one optional category plus a set of genres. Its aggregate rating is
never stored; it is computed from review scores at read time so it can never
drift out of sync.

Architecture:

  - Service: Validation, taxonomy slug resolution, partial updates.
  - Repository: Abstracted interface for Postgres title storage.
  - Handler: REST endpoints under /titles.
*/
package title

import "github.com/quangdm/revio/internal/catalog/taxonomy"

// Title represents a single reviewable work in the catalog.
//
// Rating is the average review score rounded to storage precision, or nil
// when the title has no reviews yet.
type Title struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	Rating      *float64        `json:"rating"`
	Description *string         `json:"description"`
	Category    *taxonomy.Term  `json:"category"`
	Genres      []taxonomy.Term `json:"genre"`
}

// Filters narrows title listings. All populated fields are combined with AND.
type Filters struct {
	// Name is a case-insensitive substring match on the title name.
	Name string
	// Year is a substring match on the decimal representation of the year.
	Year string
	// CategorySlug is a case-insensitive substring match on the category slug.
	CategorySlug string
	// GenreSlug is a case-insensitive substring match on any linked genre slug.
	GenreSlug string
}
