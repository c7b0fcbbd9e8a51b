// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package taxonomy

import (
	"context"

	"github.com/quangdm/revio/pkg/pagination"
)

// Repository defines the storage contract for classification terms.
type Repository interface {
	// List returns terms of the given kind, optionally filtered by a
	// case-insensitive name search, alongside the total match count.
	List(context context.Context, kind, search string, params pagination.Params) ([]Term, int, error)

	// Create persists a new term and fills in its generated ID.
	Create(context context.Context, term *Term) error

	// FindBySlug retrieves a term of the given kind by its slug.
	FindBySlug(context context.Context, kind, slug string) (*Term, error)

	// FindBySlugs retrieves multiple terms of the given kind at once.
	// The result preserves the order of the requested slugs.
	FindBySlugs(context context.Context, kind string, slugs []string) ([]Term, error)

	// DeleteBySlug removes a term of the given kind by its slug.
	DeleteBySlug(context context.Context, kind, slug string) error
}
