package category

import "time"

// Field names used in validation errors.
const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Category groups titles by the broad kind of work (e.g., "Movies", "Books").
//
// The numeric ID is internal; categories are addressed by slug in the API.
type Category struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}
