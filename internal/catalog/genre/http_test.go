// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package genre_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngyn/opusdb/internal/catalog/genre"
	"github.com/minhngyn/opusdb/internal/platform/dberr"
)

type fakeRepository struct {
	bySlug map[string]*genre.Genre
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bySlug: map[string]*genre.Genre{}}
}

func (f *fakeRepository) List(_ context.Context, _ string, _, _ int) ([]*genre.Genre, int, error) {
	var out []*genre.Genre
	for _, g := range f.bySlug {
		out = append(out, g)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*genre.Genre, error) {
	g, ok := f.bySlug[slug]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return g, nil
}

func (f *fakeRepository) Create(_ context.Context, g *genre.Genre) error {
	f.nextID++
	g.ID = f.nextID
	f.bySlug[g.Slug] = g
	return nil
}

func (f *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := f.bySlug[slug]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.bySlug, slug)
	return nil
}

/*
TestGetGenreRoute serves a single genre by slug, publicly.
*/
func TestGetGenreRoute(t *testing.T) {
	repo := newFakeRepository()
	repo.bySlug["drama"] = &genre.Genre{ID: 1, Name: "Drama", Slug: "drama"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := genre.NewHandler(genre.NewService(repo, logger))
	router := chi.NewRouter()
	router.Route("/genres", func(genres chi.Router) {
		handler.RegisterRoutes(genres)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/genres/drama", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"slug":"drama"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/genres/noir", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
