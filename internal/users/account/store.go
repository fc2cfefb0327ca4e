package account

import (
	"context"

	"github.com/minhngyn/opusdb/internal/users/auth"
)

// AccountRepository persists and queries user accounts for administration.
type AccountRepository interface {
	List(context context.Context, search string, limit, offset int) ([]*auth.User, int, error)
	FindByUsername(context context.Context, username string) (*auth.User, error)
	FindByEmail(context context.Context, email string) (*auth.User, error)
	FindByID(context context.Context, id string) (*auth.User, error)
	Create(context context.Context, user *auth.User) error
	Update(context context.Context, user *auth.User) error
	DeleteByUsername(context context.Context, username string) error
}
