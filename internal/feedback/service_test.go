// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package feedback_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngyn/opusdb/internal/feedback"
	"github.com/minhngyn/opusdb/internal/platform/apperr"
	"github.com/minhngyn/opusdb/internal/platform/dberr"
	"github.com/minhngyn/opusdb/internal/platform/sec"
	"github.com/minhngyn/opusdb/pkg/pointer"
)

// fakeRepository is an in-memory feedback.Repository for service tests.
type fakeRepository struct {
	titles   map[int]bool
	reviews  map[int]*feedback.Review
	comments map[int]*feedback.Comment
	nextID   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		titles:   map[int]bool{},
		reviews:  map[int]*feedback.Review{},
		comments: map[int]*feedback.Comment{},
	}
}

func (f *fakeRepository) TitleExists(_ context.Context, titleID int) (bool, error) {
	return f.titles[titleID], nil
}

func (f *fakeRepository) ListReviews(_ context.Context, titleID, limit, offset int) ([]*feedback.Review, int, error) {
	var out []*feedback.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindReview(_ context.Context, titleID, reviewID int) (*feedback.Review, error) {
	r, ok := f.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return nil, dberr.ErrNotFound
	}
	return r, nil
}

func (f *fakeRepository) ReviewExistsByAuthor(_ context.Context, titleID int, authorID string) (bool, error) {
	for _, r := range f.reviews {
		if r.TitleID == titleID && r.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) CreateReview(_ context.Context, review *feedback.Review) error {
	f.nextID++
	review.ID = f.nextID
	review.PubDate = time.Now()
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeRepository) UpdateReview(_ context.Context, review *feedback.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeRepository) DeleteReview(_ context.Context, titleID, reviewID int) error {
	r, ok := f.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return dberr.ErrNotFound
	}
	delete(f.reviews, reviewID)
	return nil
}

func (f *fakeRepository) ListComments(_ context.Context, reviewID, limit, offset int) ([]*feedback.Comment, int, error) {
	var out []*feedback.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindComment(_ context.Context, reviewID, commentID int) (*feedback.Comment, error) {
	c, ok := f.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, dberr.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepository) CreateComment(_ context.Context, comment *feedback.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	comment.PubDate = time.Now()
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeRepository) UpdateComment(_ context.Context, comment *feedback.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeRepository) DeleteComment(_ context.Context, reviewID, commentID int) error {
	c, ok := f.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return dberr.ErrNotFound
	}
	delete(f.comments, commentID)
	return nil
}

// # Test Helpers

func newTestService(repo feedback.Repository) *feedback.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return feedback.NewService(repo, logger)
}

func claimsFor(userID, username string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: username, Role: string(role)}
}

/*
TestCreateReview_ScoreBounds checks the inclusive 0-10 score validation.
*/
func TestCreateReview_ScoreBounds(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		isValid bool
	}{
		{"minimum", 0, true},
		{"maximum", 10, true},
		{"below_minimum", -1, false},
		{"above_maximum", 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			repo.titles[1] = true
			service := newTestService(repo)

			review, err := service.CreateReview(context.Background(), claimsFor("u1", "alice", sec.RoleUser), 1, feedback.ReviewInput{
				Text:  pointer.To("great stuff"),
				Score: pointer.To(tt.score),
			})

			if tt.isValid {
				require.NoError(t, err)
				assert.Equal(t, tt.score, review.Score)
				assert.Equal(t, "alice", review.Author)
			} else {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			}
		})
	}
}

/*
TestCreateReview_OnePerTitle ensures a second review by the same author on
the same title is rejected, while other titles and authors remain open.
*/
func TestCreateReview_OnePerTitle(t *testing.T) {
	repo := newFakeRepository()
	repo.titles[1] = true
	repo.titles[2] = true
	service := newTestService(repo)
	alice := claimsFor("u1", "alice", sec.RoleUser)

	_, err := service.CreateReview(context.Background(), alice, 1, feedback.ReviewInput{
		Text: pointer.To("first"), Score: pointer.To(7),
	})
	require.NoError(t, err)

	// Same author, same title: rejected
	_, err = service.CreateReview(context.Background(), alice, 1, feedback.ReviewInput{
		Text: pointer.To("second"), Score: pointer.To(3),
	})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, "title", ae.Details[0].Field)

	// Same author, different title: allowed
	_, err = service.CreateReview(context.Background(), alice, 2, feedback.ReviewInput{
		Text: pointer.To("other title"), Score: pointer.To(5),
	})
	assert.NoError(t, err)

	// Different author, same title: allowed
	_, err = service.CreateReview(context.Background(), claimsFor("u2", "bob", sec.RoleUser), 1, feedback.ReviewInput{
		Text: pointer.To("bob's take"), Score: pointer.To(9),
	})
	assert.NoError(t, err)
}

/*
TestCreateReview_MissingTitle maps an unknown title to a 404.
*/
func TestCreateReview_MissingTitle(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.CreateReview(context.Background(), claimsFor("u1", "alice", sec.RoleUser), 42, feedback.ReviewInput{
		Text: pointer.To("ghost"), Score: pointer.To(5),
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestUpdateReview_Ownership covers the author/moderator/admin mutation matrix.
*/
func TestUpdateReview_Ownership(t *testing.T) {
	tests := []struct {
		name    string
		actor   *sec.AuthClaims
		allowed bool
	}{
		{"author", claimsFor("u1", "alice", sec.RoleUser), true},
		{"other_user", claimsFor("u2", "bob", sec.RoleUser), false},
		{"moderator", claimsFor("u3", "mod", sec.RoleModerator), true},
		{"admin", claimsFor("u4", "root", sec.RoleAdmin), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			repo.titles[1] = true
			service := newTestService(repo)

			created, err := service.CreateReview(context.Background(), claimsFor("u1", "alice", sec.RoleUser), 1, feedback.ReviewInput{
				Text: pointer.To("original"), Score: pointer.To(5),
			})
			require.NoError(t, err)

			updated, err := service.UpdateReview(context.Background(), tt.actor, 1, created.ID, feedback.ReviewInput{
				Text: pointer.To("edited"),
			})

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "edited", updated.Text)
				assert.Equal(t, 5, updated.Score) // untouched on partial update
			} else {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "FORBIDDEN", ae.Code)
			}
		})
	}
}

/*
TestDeleteComment_Ownership ensures regular users cannot remove others' comments.
*/
func TestDeleteComment_Ownership(t *testing.T) {
	repo := newFakeRepository()
	repo.titles[1] = true
	service := newTestService(repo)

	review, err := service.CreateReview(context.Background(), claimsFor("u1", "alice", sec.RoleUser), 1, feedback.ReviewInput{
		Text: pointer.To("review"), Score: pointer.To(5),
	})
	require.NoError(t, err)

	comment, err := service.CreateComment(context.Background(), claimsFor("u1", "alice", sec.RoleUser), 1, review.ID, feedback.CommentInput{
		Text: pointer.To("a comment"),
	})
	require.NoError(t, err)

	// Stranger: forbidden
	err = service.DeleteComment(context.Background(), claimsFor("u2", "bob", sec.RoleUser), 1, review.ID, comment.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	// Moderator: allowed
	err = service.DeleteComment(context.Background(), claimsFor("u3", "mod", sec.RoleModerator), 1, review.ID, comment.ID)
	assert.NoError(t, err)
}

/*
TestCreateComment_MissingReview maps an unknown review to a 404.
*/
func TestCreateComment_MissingReview(t *testing.T) {
	repo := newFakeRepository()
	repo.titles[1] = true
	service := newTestService(repo)

	_, err := service.CreateComment(context.Background(), claimsFor("u1", "alice", sec.RoleUser), 1, 99, feedback.CommentInput{
		Text: pointer.To("orphan"),
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
