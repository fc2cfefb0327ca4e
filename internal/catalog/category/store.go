package category

import "context"

type Repository interface {
	List(context context.Context, search string, limit, offset int) ([]*Category, int, error)
	FindBySlug(context context.Context, slug string) (*Category, error)
	Create(context context.Context, category *Category) error
	DeleteBySlug(context context.Context, slug string) error
}
