// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package taxonomy_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangdm/revio/internal/catalog/taxonomy"
	"github.com/quangdm/revio/internal/platform/apperr"
	"github.com/quangdm/revio/pkg/pagination"
)

// fakeRepository is an in-memory term store keyed by (kind, slug).
type fakeRepository struct {
	nextID int
	terms  map[string]*taxonomy.Term
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, terms: make(map[string]*taxonomy.Term)}
}

func key(kind, slug string) string { return kind + "/" + slug }

func (repo *fakeRepository) List(_ context.Context, kind, search string, _ pagination.Params) ([]taxonomy.Term, int, error) {
	result := make([]taxonomy.Term, 0)
	for _, term := range repo.terms {
		if term.Kind != kind {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(term.Name), strings.ToLower(search)) {
			continue
		}
		result = append(result, *term)
	}
	return result, len(result), nil
}

func (repo *fakeRepository) Create(_ context.Context, term *taxonomy.Term) error {
	if _, exists := repo.terms[key(term.Kind, term.Slug)]; exists {
		return apperr.ValidationError("A record with these unique fields already exists")
	}
	term.ID = repo.nextID
	repo.nextID++
	copied := *term
	repo.terms[key(term.Kind, term.Slug)] = &copied
	return nil
}

func (repo *fakeRepository) FindBySlug(_ context.Context, kind, slug string) (*taxonomy.Term, error) {
	term, found := repo.terms[key(kind, slug)]
	if !found {
		return nil, apperr.NotFound("Term")
	}
	copied := *term
	return &copied, nil
}

func (repo *fakeRepository) FindBySlugs(_ context.Context, kind string, slugs []string) ([]taxonomy.Term, error) {
	result := make([]taxonomy.Term, 0, len(slugs))
	for _, slug := range slugs {
		term, err := repo.FindBySlug(context.Background(), kind, slug)
		if err != nil {
			return nil, err
		}
		result = append(result, *term)
	}
	return result, nil
}

func (repo *fakeRepository) DeleteBySlug(_ context.Context, kind, slug string) error {
	if _, found := repo.terms[key(kind, slug)]; !found {
		return apperr.NotFound("Term")
	}
	delete(repo.terms, key(kind, slug))
	return nil
}

func newTestService(repo *fakeRepository) *taxonomy.Service {
	return taxonomy.NewService(repo, slog.New(slog.DiscardHandler))
}

/*
TestCreate_SlugDerivation verifies that an omitted slug is derived from the
name, while an explicit slug is kept as-is.
*/
func TestCreate_SlugDerivation(t *testing.T) {
	service := newTestService(newFakeRepository())

	derived, err := service.Create(context.Background(), taxonomy.KindGenre, taxonomy.CreateInput{
		Name: "Science Fiction",
	})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", derived.Slug)

	explicit, err := service.Create(context.Background(), taxonomy.KindGenre, taxonomy.CreateInput{
		Name: "Science Fiction (Classic)",
		Slug: "sci-fi-classic",
	})
	require.NoError(t, err)
	assert.Equal(t, "sci-fi-classic", explicit.Slug)
}

/*
TestCreate_Validation checks name and slug constraints.
*/
func TestCreate_Validation(t *testing.T) {
	service := newTestService(newFakeRepository())

	tests := []struct {
		name  string
		input taxonomy.CreateInput
	}{
		{"missing_name", taxonomy.CreateInput{Slug: "drama"}},
		{"name_too_long", taxonomy.CreateInput{Name: strings.Repeat("x", taxonomy.MaxNameLength+1)}},
		{"slug_too_long", taxonomy.CreateInput{Name: "Drama", Slug: strings.Repeat("d", taxonomy.MaxSlugLength+1)}},
		{"slug_bad_charset", taxonomy.CreateInput{Name: "Drama", Slug: "Drama!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), taxonomy.KindCategory, tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestCreate_DuplicateSlug verifies that a slug collision within a kind is a
validation error, while the same slug under the other kind is fine.
*/
func TestCreate_DuplicateSlug(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Create(context.Background(), taxonomy.KindCategory, taxonomy.CreateInput{Name: "Drama"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), taxonomy.KindCategory, taxonomy.CreateInput{Name: "Drama"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Same slug, different kind: no conflict.
	_, err = service.Create(context.Background(), taxonomy.KindGenre, taxonomy.CreateInput{Name: "Drama"})
	assert.NoError(t, err)
}

/*
TestDeleteBySlug verifies deletion and the missing-slug 404.
*/
func TestDeleteBySlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.Create(context.Background(), taxonomy.KindGenre, taxonomy.CreateInput{Name: "Horror"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteBySlug(context.Background(), taxonomy.KindGenre, "horror"))

	err = service.DeleteBySlug(context.Background(), taxonomy.KindGenre, "horror")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
