// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package title

import (
	"context"
	"log/slog"

	"github.com/quangdm/revio/internal/catalog/taxonomy"
	"github.com/quangdm/revio/internal/platform/apperr"
	"github.com/quangdm/revio/internal/platform/validate"
	"github.com/quangdm/revio/pkg/pagination"
)

// MaxNameLength bounds the title name, matching the taxonomy name limit.
const MaxNameLength = 256

// Service implements catalog title use cases.
type Service struct {
	repo     Repository
	taxonomy taxonomy.Repository
	logger   *slog.Logger
}

// NewService constructs a new title [Service].
func NewService(repo Repository, taxonomyRepo taxonomy.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		taxonomy: taxonomyRepo,
		logger:   logger,
	}
}

// List returns a page of titles matching the filters.
func (service *Service) List(context context.Context, filters Filters, params pagination.Params) ([]Title, int, error) {
	return service.repo.List(context, filters, params)
}

// Get retrieves a single title by ID.
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.FindByID(context, id)
}

// CreateInput holds the data required to register a new title.
// Category and genres are referenced by their slugs.
type CreateInput struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

/*
Create validates a new title and resolves its taxonomy references.

Description: The year may not lie in the future. Category and genre slugs must
name existing terms of the right kind; an unknown slug is a validation error,
not a lookup miss, because the client chose the reference.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: Created entity, fully hydrated
  - error: Validation or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	validator := validate.New().
		Required("name", input.Name).
		MaxLen("name", input.Name, MaxNameLength).
		Required("category", input.Category).
		YearMax("year", input.Year)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category, genres, err := service.resolveTerms(context, &input.Category, input.Genre)
	if err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    category,
		Genres:      genres,
	}

	if err := service.repo.Create(context, title); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int64("title_id", title.ID),
		slog.String("name", title.Name),
	)

	// Re-read to pick up the computed rating shape (nil for a fresh title).
	return service.repo.FindByID(context, title.ID)
}

// UpdateInput holds a partial title update. Nil fields keep their stored value.
type UpdateInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

/*
Update applies a partial update to a stored title.

Description: Loads the current state, overlays only the provided fields,
re-validates the result, and persists it. Omitted fields are untouched,
including the genre set.

Parameters:
  - context: context.Context
  - id: Title identifier
  - input: UpdateInput

Returns:
  - *Title: Updated entity, fully hydrated
  - error: NotFound, validation, or storage errors
*/
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Title, error) {
	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}

	validator := validate.New().
		Required("name", title.Name).
		MaxLen("name", title.Name, MaxNameLength).
		YearMax("year", title.Year)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Category != nil || input.Genre != nil {
		var genreSlugs []string
		if input.Genre != nil {
			genreSlugs = *input.Genre
		} else {
			for _, genre := range title.Genres {
				genreSlugs = append(genreSlugs, genre.Slug)
			}
		}

		categorySlug := input.Category
		if categorySlug == nil && title.Category != nil {
			categorySlug = &title.Category.Slug
		}

		category, genres, err := service.resolveTerms(context, categorySlug, genreSlugs)
		if err != nil {
			return nil, err
		}
		title.Category = category
		title.Genres = genres
	}

	if err := service.repo.Update(context, title); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("title_id", id))

	return service.repo.FindByID(context, id)
}

// Delete removes a title together with its reviews and comments.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("title_deleted", slog.Int64("title_id", id))
	return nil
}

// resolveTerms maps taxonomy slugs from a write payload onto stored terms.
// Unknown slugs come back as validation errors since the reference itself is
// part of the client's input.
func (service *Service) resolveTerms(context context.Context, categorySlug *string, genreSlugs []string) (*taxonomy.Term, []taxonomy.Term, error) {
	var category *taxonomy.Term

	if categorySlug != nil && *categorySlug != "" {
		found, err := service.taxonomy.FindBySlug(context, taxonomy.KindCategory, *categorySlug)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, nil, apperr.ValidationError("Unknown category slug: " + *categorySlug)
			}
			return nil, nil, err
		}
		category = found
	}

	genres, err := service.taxonomy.FindBySlugs(context, taxonomy.KindGenre, genreSlugs)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil, apperr.ValidationError("Unknown genre slug in request")
		}
		return nil, nil, err
	}

	return category, genres, nil
}
