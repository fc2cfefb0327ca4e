package title

import (
	"context"

	"github.com/minhngyn/opusdb/internal/catalog/category"
	"github.com/minhngyn/opusdb/internal/catalog/genre"
)

type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)
	FindByID(context context.Context, id int) (*Title, error)
	Create(context context.Context, title *Title) error
	Update(context context.Context, title *Title, replaceGenres bool) error
	Delete(context context.Context, id int) error

	// ResolveCategory and ResolveGenres map API slugs to stored rows so the
	// service can reject unknown references before writing.
	ResolveCategory(context context.Context, slug string) (*category.Category, error)
	ResolveGenres(context context.Context, slugs []string) ([]genre.Genre, error)
}
