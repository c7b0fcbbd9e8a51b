// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package taxonomy

import (
	"context"
	"log/slog"

	"github.com/quangdm/revio/internal/platform/validate"
	"github.com/quangdm/revio/pkg/pagination"
	"github.com/quangdm/revio/pkg/slug"
)

// Field length limits for classification terms.
const (
	MaxNameLength = 256
	MaxSlugLength = 50
)

// Service implements classification term use cases for one kind.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new taxonomy [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns a page of terms of the given kind, optionally filtered by a
// case-insensitive name search.
func (service *Service) List(context context.Context, kind, search string, params pagination.Params) ([]Term, int, error) {
	return service.repo.List(context, kind, search, params)
}

// CreateInput holds the data required to register a new term.
type CreateInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

/*
Create validates and persists a new classification term.

Description: When no slug is supplied it is derived from the name. Slug
uniqueness within the kind is enforced by a storage constraint; a collision
surfaces as a validation error.

Parameters:
  - context: context.Context
  - kind: Term kind the new entry belongs to
  - input: CreateInput

Returns:
  - *Term: Created entity
  - error: Validation or storage errors
*/
func (service *Service) Create(context context.Context, kind string, input CreateInput) (*Term, error) {

	// Derive a slug from the name when the client omits one.
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}

	validator := validate.New().
		Required("name", input.Name).
		MaxLen("name", input.Name, MaxNameLength).
		Required("slug", input.Slug).
		MaxLen("slug", input.Slug, MaxSlugLength).
		Slug("slug", input.Slug)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	term := &Term{
		Kind: kind,
		Name: input.Name,
		Slug: input.Slug,
	}

	if err := service.repo.Create(context, term); err != nil {
		return nil, err
	}

	service.logger.Info("term_created",
		slog.String("kind", kind),
		slog.String("slug", term.Slug),
	)

	return term, nil
}

// DeleteBySlug removes a term of the given kind. Titles referencing a deleted
// category fall back to no category; genre links are detached.
func (service *Service) DeleteBySlug(context context.Context, kind, slug string) error {
	if err := service.repo.DeleteBySlug(context, kind, slug); err != nil {
		return err
	}

	service.logger.Info("term_deleted",
		slog.String("kind", kind),
		slog.String("slug", slug),
	)

	return nil
}
