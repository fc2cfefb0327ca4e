// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package title

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/minhngyn/opusdb/internal/catalog/genre"
	"github.com/minhngyn/opusdb/internal/platform/dberr"
	"github.com/minhngyn/opusdb/internal/platform/validate"
	"github.com/minhngyn/opusdb/pkg/pointer"
)

const maxNameLength = 256

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

func (service *Service) ListTitles(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) GetTitle(context context.Context, id int) (*Title, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) CreateTitle(context context.Context, input Input) (*Title, error) {
	title := &Title{
		Name:        strings.TrimSpace(pointer.Val(input.Name)),
		Year:        pointer.Val(input.Year),
		Description: input.Description,
	}

	if err := service.validateCore(title, input.Year); err != nil {
		return nil, err
	}

	if err := service.applyReferences(context, title, input.Category, input.Genres); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, title); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int("title_id", title.ID),
		slog.String("name", title.Name),
	)
	return title, nil
}

// UpdateTitle merges the provided fields into the stored title. Omitted
// fields are left untouched; a provided genre list replaces the old links.
func (service *Service) UpdateTitle(context context.Context, id int, input Input) (*Title, error) {
	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = strings.TrimSpace(*input.Name)
	}
	if input.Year != nil {
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}

	if err := service.validateCore(title, &title.Year); err != nil {
		return nil, err
	}

	if err := service.applyReferences(context, title, input.Category, input.Genres); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, title, input.Genres != nil); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int("title_id", id))

	// Re-read for a consistent view (rating, ordered genres).
	return service.repo.FindByID(context, id)
}

func (service *Service) DeleteTitle(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("title_deleted", slog.Int("title_id", id))
	return nil
}

func (service *Service) validateCore(title *Title, year *int) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, title.Name).MaxLen(FieldName, title.Name, maxNameLength)
	validator.Custom(FieldYear, year == nil, "This field is required")
	validator.Custom(FieldYear, year != nil && *year < 0, "Must not be negative")
	validator.Custom(FieldYear, year != nil && *year > time.Now().Year(), "Must not be in the future")

	return validator.Err()
}

// applyReferences resolves category and genre slugs and attaches the results.
// A nil categorySlug or genreSlugs means "leave as is".
func (service *Service) applyReferences(context context.Context, title *Title, categorySlug *string, genreSlugs []string) error {
	if categorySlug != nil {
		if *categorySlug == "" {
			title.Category = nil
		} else {
			resolved, err := service.repo.ResolveCategory(context, *categorySlug)
			if errors.Is(err, dberr.ErrNotFound) {
				return validate.RequiredError(FieldCategory, fmt.Sprintf("Unknown category slug: %s", *categorySlug))
			}
			if err != nil {
				return err
			}
			title.Category = resolved
		}
	}

	if genreSlugs != nil {
		resolved, err := service.repo.ResolveGenres(context, genreSlugs)
		if err != nil {
			return err
		}

		if missing := missingSlug(genreSlugs, resolved); missing != "" {
			return validate.RequiredError(FieldGenre, fmt.Sprintf("Unknown genre slug: %s", missing))
		}
		title.Genres = resolved
	}

	return nil
}

// missingSlug returns the first requested slug absent from the resolved set.
func missingSlug(requested []string, resolved []genre.Genre) string {
	found := make(map[string]bool, len(resolved))
	for _, g := range resolved {
		found[g.Slug] = true
	}
	for _, slug := range requested {
		if !found[slug] {
			return slug
		}
	}
	return ""
}
