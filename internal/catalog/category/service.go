// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package category

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

func (service *Service) ListCategories(context context.Context, search string, limit, offset int) ([]*Category, int, error) {
	return service.repo.List(context, search, limit, offset)
}

func (service *Service) GetCategory(context context.Context, categorySlug string) (*Category, error) {
	return service.repo.FindBySlug(context, categorySlug)
}

// CreateCategory validates and persists a new category.
//
// When the slug is omitted, one is derived from the name.
func (service *Service) CreateCategory(context context.Context, category *Category) error {
	category.Name = strings.TrimSpace(category.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, maxNameLength)

	if category.Slug == "" && category.Name != "" {
		category.Slug = truncateSlug(slug.From(category.Name))
	}
	if category.Slug != "" {
		validator.Slug(FieldSlug, category.Slug).MaxLen(FieldSlug, category.Slug, maxSlugLength)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	// Friendly duplicate check; the unique index remains the backstop.
	if _, err := service.repo.FindBySlug(context, category.Slug); err == nil {
		return validate.RequiredError(FieldSlug, "This slug is already in use")
	} else if !errors.Is(err, dberr.ErrNotFound) {
		return err
	}

	if err := service.repo.Create(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))
	return nil
}

func (service *Service) DeleteCategory(context context.Context, categorySlug string) error {
	if err := service.repo.DeleteBySlug(context, categorySlug); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("slug", categorySlug))
	return nil
}

// truncateSlug shortens generated slugs to the storage limit without leaving
// a trailing hyphen.
func truncateSlug(s string) string {
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
	}
	return strings.TrimRight(s, "-")
}
