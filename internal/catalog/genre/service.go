package genre

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/minhngyn/opusdb/internal/platform/dberr"
	"github.com/minhngyn/opusdb/internal/platform/validate"
	"github.com/minhngyn/opusdb/pkg/slug"
)

const (
	maxNameLength = 256
	maxSlugLength = 50
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(context context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	return service.repo.List(context, search, limit, offset)
}

func (service *Service) GetGenre(context context.Context, genreSlug string) (*Genre, error) {
	return service.repo.FindBySlug(context, genreSlug)
}

func (service *Service) CreateGenre(context context.Context, genre *Genre) error {
	genre.Name = strings.TrimSpace(genre.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, maxNameLength)

	if genre.Slug == "" && genre.Name != "" {
		genre.Slug = truncateSlug(slug.From(genre.Name))
	}
	if genre.Slug != "" {
		validator.Slug(FieldSlug, genre.Slug).MaxLen(FieldSlug, genre.Slug, maxSlugLength)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.FindBySlug(context, genre.Slug); err == nil {
		return validate.RequiredError(FieldSlug, "This slug is already in use")
	} else if !errors.Is(err, dberr.ErrNotFound) {
		return err
	}

	if err := service.repo.Create(context, genre); err != nil {
		return err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))
	return nil
}

func (service *Service) DeleteGenre(context context.Context, genreSlug string) error {
	if err := service.repo.DeleteBySlug(context, genreSlug); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.String("slug", genreSlug))
	return nil
}

func truncateSlug(s string) string {
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
	}
	return strings.TrimRight(s, "-")
}
