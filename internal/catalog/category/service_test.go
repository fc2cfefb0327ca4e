// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package category_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngyn/opusdb/internal/catalog/category"
	"github.com/minhngyn/opusdb/internal/platform/apperr"
	"github.com/minhngyn/opusdb/internal/platform/dberr"
)

type fakeRepository struct {
	bySlug map[string]*category.Category
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bySlug: map[string]*category.Category{}}
}

func (f *fakeRepository) List(_ context.Context, _ string, _, _ int) ([]*category.Category, int, error) {
	var out []*category.Category
	for _, c := range f.bySlug {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	c, ok := f.bySlug[slug]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepository) Create(_ context.Context, c *category.Category) error {
	f.nextID++
	c.ID = f.nextID
	f.bySlug[c.Slug] = c
	return nil
}

func (f *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := f.bySlug[slug]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.bySlug, slug)
	return nil
}

func newTestService(repo category.Repository) *category.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return category.NewService(repo, logger)
}

/*
TestCreateCategory_SlugGeneration derives a slug from the name when omitted.
*/
func TestCreateCategory_SlugGeneration(t *testing.T) {
	service := newTestService(newFakeRepository())

	created := &category.Category{Name: "Science Fiction"}
	require.NoError(t, service.CreateCategory(context.Background(), created))

	assert.Equal(t, "science-fiction", created.Slug)
	assert.NotZero(t, created.ID)
}

/*
TestCreateCategory_ExplicitSlugKept does not overwrite a provided slug.
*/
func TestCreateCategory_ExplicitSlugKept(t *testing.T) {
	service := newTestService(newFakeRepository())

	created := &category.Category{Name: "Science Fiction", Slug: "sci-fi"}
	require.NoError(t, service.CreateCategory(context.Background(), created))

	assert.Equal(t, "sci-fi", created.Slug)
}

/*
TestCreateCategory_LongNameTruncatesSlug keeps generated slugs within the
storage limit.
*/
func TestCreateCategory_LongNameTruncatesSlug(t *testing.T) {
	service := newTestService(newFakeRepository())

	created := &category.Category{Name: strings.Repeat("very long name ", 10)}
	require.NoError(t, service.CreateCategory(context.Background(), created))

	assert.LessOrEqual(t, len(created.Slug), 50)
	assert.False(t, strings.HasSuffix(created.Slug, "-"))
}

/*
TestCreateCategory_Validation rejects missing names and malformed slugs.
*/
func TestCreateCategory_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input *category.Category
		field string
	}{
		{"missing_name", &category.Category{}, "name"},
		{"bad_slug", &category.Category{Name: "Movies", Slug: "Bad Slug!"}, "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository())

			err := service.CreateCategory(context.Background(), tt.input)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestCreateCategory_DuplicateSlug surfaces a friendly field error before the
unique index fires.
*/
func TestCreateCategory_DuplicateSlug(t *testing.T) {
	service := newTestService(newFakeRepository())
	require.NoError(t, service.CreateCategory(context.Background(), &category.Category{Name: "Movies"}))

	err := service.CreateCategory(context.Background(), &category.Category{Name: "Movies"})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "slug", ae.Details[0].Field)
}

/*
TestDeleteCategory removes by slug and 404s on unknown slugs.
*/
func TestDeleteCategory(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	require.NoError(t, service.CreateCategory(context.Background(), &category.Category{Name: "Movies"}))

	require.NoError(t, service.DeleteCategory(context.Background(), "movies"))
	assert.Empty(t, repo.bySlug)

	err := service.DeleteCategory(context.Background(), "movies")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
