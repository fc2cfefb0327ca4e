// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package category_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngyn/opusdb/internal/catalog/category"
)

/*
TestGetCategoryRoute serves a single category by slug, publicly.
*/
func TestGetCategoryRoute(t *testing.T) {
	repo := newFakeRepository()
	repo.bySlug["movies"] = &category.Category{ID: 1, Name: "Movies", Slug: "movies"}

	handler := category.NewHandler(newTestService(repo))
	router := chi.NewRouter()
	router.Route("/categories", func(categories chi.Router) {
		handler.RegisterRoutes(categories)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/categories/movies", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"slug":"movies"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/categories/podcasts", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
