package genre

import "time"

const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Genre is a fine-grained label attached to titles (e.g., "Drama", "Rock").
// A title may carry any number of genres.
type Genre struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}
