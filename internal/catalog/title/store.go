// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package title

import (
	"context"

	"github.com/quangdm/revio/pkg/pagination"
)

// Repository defines the storage contract for catalog titles.
type Repository interface {
	// List returns a page of titles matching the filters, with category,
	// genres and computed rating hydrated, plus the total match count.
	List(context context.Context, filters Filters, params pagination.Params) ([]Title, int, error)

	// FindByID retrieves a fully hydrated title.
	FindByID(context context.Context, id int64) (*Title, error)

	// Create persists a new title and its genre links, filling in the
	// generated ID. Category and Genres must carry resolved term IDs.
	Create(context context.Context, title *Title) error

	// Update rewrites the stored title fields and replaces its genre links.
	Update(context context.Context, title *Title) error

	// Delete removes a title. Its reviews and comments go with it.
	Delete(context context.Context, id int64) error

	// Exists reports whether a title with the given ID is present.
	Exists(context context.Context, id int64) (bool, error)
}
