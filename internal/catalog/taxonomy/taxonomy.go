// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

/*
Package taxonomy implements the classification vocabulary of the catalog.

Categories and genres share identical behavior (a name plus a URL-safe slug),
so both are stored as kinded terms in a single table. A title references
exactly one category and any number of genres.

Architecture:

  - Service: Validation, slug derivation, and kind scoping.
  - Repository: Abstracted interface for Postgres term storage.
  - Handler: One HTTP handler instance per kind, mounted at /categories
    and /genres.
*/
package taxonomy

// Term kinds recognized by the catalog.
const (
	// KindCategory marks a term usable as a title's single category.
	KindCategory = "category"
	// KindGenre marks a term usable in a title's genre set.
	KindGenre = "genre"
)

// Term is a single classification entry (a category or a genre).
//
// The slug is the public identifier used in URLs and write payloads; the
// numeric ID and the kind are internal storage details.
type Term struct {
	ID   int    `json:"-"`
	Kind string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
