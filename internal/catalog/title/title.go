// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package title

import (
	"time"

	"github.com/minhngyn/opusdb/internal/catalog/category"
	"github.com/minhngyn/opusdb/internal/catalog/genre"
)

// Field names used in validation errors.
const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"
)

// Title is a catalogued work (a film, a book, an album) that users review.
//
// Rating is computed from review scores at read time and is nil until the
// title has at least one review.
type Title struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Year        int                `json:"year"`
	Description *string            `json:"description"`
	Rating      *float64           `json:"rating"`
	Category    *category.Category `json:"category"`
	Genres      []genre.Genre      `json:"genre"`
	CreatedAt   time.Time          `json:"-"`
}

// Input is the write payload for creating or patching a title.
//
// Category and genres are referenced by slug. Pointer fields distinguish
// "omitted" from "set to zero value" so PATCH can merge.
type Input struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

// Filter narrows title listings.
//
// Names matches any of the given substrings (case-insensitive). Category and
// genre filters match by slug.
type Filter struct {
	Names        []string
	CategorySlug string
	GenreSlugs   []string
	Year         *int
}
