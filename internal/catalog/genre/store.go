package genre

import "context"

type Repository interface {
	List(context context.Context, search string, limit, offset int) ([]*Genre, int, error)
	FindBySlug(context context.Context, slug string) (*Genre, error)
	Create(context context.Context, genre *Genre) error
	DeleteBySlug(context context.Context, slug string) error
}
