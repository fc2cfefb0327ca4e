// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package feedback

import (
	"context"
	"log/slog"
	"strings"

	"github.com/minhngyn/opusdb/internal/platform/apperr"
	"github.com/minhngyn/opusdb/internal/platform/sec"
	"github.com/minhngyn/opusdb/internal/platform/validate"
	"github.com/minhngyn/opusdb/pkg/pointer"
)

const (
	minScore = 0
	maxScore = 10
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

// # Reviews

func (service *Service) ListReviews(context context.Context, titleID, limit, offset int) ([]*Review, int, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListReviews(context, titleID, limit, offset)
}

func (service *Service) GetReview(context context.Context, titleID, reviewID int) (*Review, error) {
	return service.repo.FindReview(context, titleID, reviewID)
}

// CreateReview posts the actor's review on a title. A second review on the
// same title by the same author is rejected.
func (service *Service) CreateReview(context context.Context, actor *sec.AuthClaims, titleID int, input ReviewInput) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(pointer.Val(input.Text))
	validator := &validate.Validator{}
	validator.Required(FieldText, text)
	validator.Custom(FieldScore, input.Score == nil, "This field is required")
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, minScore, maxScore)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	alreadyReviewed, err := service.repo.ReviewExistsByAuthor(context, titleID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if alreadyReviewed {
		return nil, validate.RequiredError(FieldTitle, "You have already reviewed this title")
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     text,
		Score:    *input.Score,
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int("review_id", review.ID),
		slog.Int("title_id", titleID),
		slog.String("author", actor.Username),
	)
	return review, nil
}

func (service *Service) UpdateReview(context context.Context, actor *sec.AuthClaims, titleID, reviewID int, input ReviewInput) (*Review, error) {
	review, err := service.repo.FindReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !sec.CanModifyOwned(sec.UserRole(actor.Role), actor.UserID, review.AuthorID) {
		return nil, apperr.Forbidden("You may only edit your own reviews")
	}

	if input.Text != nil {
		review.Text = strings.TrimSpace(*input.Text)
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, review.Text)
	validator.Range(FieldScore, review.Score, minScore, maxScore)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int("review_id", reviewID))
	return review, nil
}

func (service *Service) DeleteReview(context context.Context, actor *sec.AuthClaims, titleID, reviewID int) error {
	review, err := service.repo.FindReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !sec.CanModifyOwned(sec.UserRole(actor.Role), actor.UserID, review.AuthorID) {
		return apperr.Forbidden("You may only delete your own reviews")
	}

	if err := service.repo.DeleteReview(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted",
		slog.Int("review_id", reviewID),
		slog.String("actor", actor.Username),
	)
	return nil
}

// # Comments

func (service *Service) ListComments(context context.Context, titleID, reviewID, limit, offset int) ([]*Comment, int, error) {
	// The review lookup doubles as the existence check for both parents.
	if _, err := service.repo.FindReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, reviewID, limit, offset)
}

func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int) (*Comment, error) {
	if _, err := service.repo.FindReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.FindComment(context, reviewID, commentID)
}

func (service *Service) CreateComment(context context.Context, actor *sec.AuthClaims, titleID, reviewID int, input CommentInput) (*Comment, error) {
	if _, err := service.repo.FindReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(pointer.Val(input.Text))
	if err := (&validate.Validator{}).Required(FieldText, text).Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     text,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int("comment_id", comment.ID),
		slog.Int("review_id", reviewID),
		slog.String("author", actor.Username),
	)
	return comment, nil
}

func (service *Service) UpdateComment(context context.Context, actor *sec.AuthClaims, titleID, reviewID, commentID int, input CommentInput) (*Comment, error) {
	if _, err := service.repo.FindReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := service.repo.FindComment(context, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !sec.CanModifyOwned(sec.UserRole(actor.Role), actor.UserID, comment.AuthorID) {
		return nil, apperr.Forbidden("You may only edit your own comments")
	}

	if input.Text != nil {
		comment.Text = strings.TrimSpace(*input.Text)
	}
	if err := (&validate.Validator{}).Required(FieldText, comment.Text).Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int("comment_id", commentID))
	return comment, nil
}

func (service *Service) DeleteComment(context context.Context, actor *sec.AuthClaims, titleID, reviewID, commentID int) error {
	if _, err := service.repo.FindReview(context, titleID, reviewID); err != nil {
		return err
	}

	comment, err := service.repo.FindComment(context, reviewID, commentID)
	if err != nil {
		return err
	}

	if !sec.CanModifyOwned(sec.UserRole(actor.Role), actor.UserID, comment.AuthorID) {
		return apperr.Forbidden("You may only delete your own comments")
	}

	if err := service.repo.DeleteComment(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted",
		slog.Int("comment_id", commentID),
		slog.String("actor", actor.Username),
	)
	return nil
}

// requireTitle maps a missing title to a 404 before feedback is touched.
func (service *Service) requireTitle(context context.Context, titleID int) error {
	exists, err := service.repo.TitleExists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}
