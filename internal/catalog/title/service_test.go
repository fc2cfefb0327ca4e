// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package title_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngyn/opusdb/internal/catalog/category"
	"github.com/minhngyn/opusdb/internal/catalog/genre"
	"github.com/minhngyn/opusdb/internal/catalog/title"
	"github.com/minhngyn/opusdb/internal/platform/apperr"
	"github.com/minhngyn/opusdb/internal/platform/dberr"
	"github.com/minhngyn/opusdb/pkg/pointer"
)

// fakeRepository backs the service with in-memory maps. Ratings are not
// simulated; they belong to the storage layer.
type fakeRepository struct {
	titles     map[int]*title.Title
	categories map[string]*category.Category
	genres     map[string]genre.Genre
	nextID     int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		titles:     map[int]*title.Title{},
		categories: map[string]*category.Category{},
		genres:     map[string]genre.Genre{},
	}
}

func (f *fakeRepository) List(_ context.Context, _ title.Filter, _, _ int) ([]*title.Title, int, error) {
	var out []*title.Title
	for _, t := range f.titles {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int) (*title.Title, error) {
	t, ok := f.titles[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return t, nil
}

func (f *fakeRepository) Create(_ context.Context, t *title.Title) error {
	f.nextID++
	t.ID = f.nextID
	f.titles[t.ID] = t
	return nil
}

func (f *fakeRepository) Update(_ context.Context, t *title.Title, _ bool) error {
	if _, ok := f.titles[t.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.titles[t.ID] = t
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := f.titles[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.titles, id)
	return nil
}

func (f *fakeRepository) ResolveCategory(_ context.Context, slug string) (*category.Category, error) {
	c, ok := f.categories[slug]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepository) ResolveGenres(_ context.Context, slugs []string) ([]genre.Genre, error) {
	var out []genre.Genre
	for _, slug := range slugs {
		if g, ok := f.genres[slug]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

// # Harness

func newTestService(repo title.Repository) *title.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return title.NewService(repo, logger)
}

func seededRepository() *fakeRepository {
	repo := newFakeRepository()
	repo.categories["movies"] = &category.Category{ID: 1, Name: "Movies", Slug: "movies"}
	repo.genres["drama"] = genre.Genre{ID: 1, Name: "Drama", Slug: "drama"}
	repo.genres["comedy"] = genre.Genre{ID: 2, Name: "Comedy", Slug: "comedy"}
	return repo
}

/*
TestCreateTitle_Success creates a fully-referenced title.
*/
func TestCreateTitle_Success(t *testing.T) {
	service := newTestService(seededRepository())

	created, err := service.CreateTitle(context.Background(), title.Input{
		Name:     pointer.To("The Green Mile"),
		Year:     pointer.To(1999),
		Category: pointer.To("movies"),
		Genres:   []string{"drama"},
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "The Green Mile", created.Name)
	require.NotNil(t, created.Category)
	assert.Equal(t, "movies", created.Category.Slug)
	require.Len(t, created.Genres, 1)
	assert.Equal(t, "drama", created.Genres[0].Slug)
	assert.Nil(t, created.Rating)
}

/*
TestCreateTitle_Validation covers required fields and the future-year rule.
*/
func TestCreateTitle_Validation(t *testing.T) {
	nextYear := time.Now().Year() + 1

	tests := []struct {
		name  string
		input title.Input
		field string
	}{
		{"missing_name", title.Input{Year: pointer.To(1999)}, "name"},
		{"missing_year", title.Input{Name: pointer.To("Nameless")}, "year"},
		{"future_year", title.Input{Name: pointer.To("Tomorrow"), Year: pointer.To(nextYear)}, "year"},
		{"negative_year", title.Input{Name: pointer.To("Prehistory"), Year: pointer.To(-50)}, "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(seededRepository())

			_, err := service.CreateTitle(context.Background(), tt.input)

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
TestCreateTitle_CurrentYearAllowed keeps the boundary inclusive.
*/
func TestCreateTitle_CurrentYearAllowed(t *testing.T) {
	service := newTestService(seededRepository())

	created, err := service.CreateTitle(context.Background(), title.Input{
		Name: pointer.To("This Year"),
		Year: pointer.To(time.Now().Year()),
	})

	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), created.Year)
}

/*
TestCreateTitle_UnknownReferences rejects slugs that resolve to nothing.
*/
func TestCreateTitle_UnknownReferences(t *testing.T) {
	tests := []struct {
		name  string
		input title.Input
		field string
	}{
		{
			"unknown_category",
			title.Input{Name: pointer.To("X"), Year: pointer.To(2000), Category: pointer.To("podcasts")},
			"category",
		},
		{
			"unknown_genre",
			title.Input{Name: pointer.To("X"), Year: pointer.To(2000), Genres: []string{"drama", "noir"}},
			"genre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(seededRepository())

			_, err := service.CreateTitle(context.Background(), tt.input)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestUpdateTitle_PartialMerge leaves omitted fields untouched and supports
clearing the category with an empty string.
*/
func TestUpdateTitle_PartialMerge(t *testing.T) {
	repo := seededRepository()
	service := newTestService(repo)

	created, err := service.CreateTitle(context.Background(), title.Input{
		Name:     pointer.To("Original"),
		Year:     pointer.To(1990),
		Category: pointer.To("movies"),
		Genres:   []string{"drama", "comedy"},
	})
	require.NoError(t, err)

	updated, err := service.UpdateTitle(context.Background(), created.ID, title.Input{
		Name:     pointer.To("Renamed"),
		Category: pointer.To(""),
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 1990, updated.Year)
	assert.Nil(t, updated.Category, "empty category string clears the link")
	assert.Len(t, updated.Genres, 2, "omitted genre list keeps existing links")
}

/*
TestUpdateTitle_NotFound maps a missing ID to a 404.
*/
func TestUpdateTitle_NotFound(t *testing.T) {
	service := newTestService(seededRepository())

	_, err := service.UpdateTitle(context.Background(), 999, title.Input{Name: pointer.To("X")})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestDeleteTitle removes the row and 404s on repeat.
*/
func TestDeleteTitle(t *testing.T) {
	repo := seededRepository()
	service := newTestService(repo)

	created, err := service.CreateTitle(context.Background(), title.Input{
		Name: pointer.To("Ephemeral"), Year: pointer.To(2001),
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteTitle(context.Background(), created.ID))
	assert.Empty(t, repo.titles)

	err = service.DeleteTitle(context.Background(), created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
