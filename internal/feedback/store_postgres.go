// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package feedback

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhngyn/opusdb/internal/platform/dberr"
)

// Author usernames are joined in so responses never need a second lookup.
const (
	reviewSelect = `
		SELECT r.id, r.titleid, r.authorid, a.username, r.text, r.score, r.pubdate
		FROM feedback.review r
		JOIN users.account a ON a.id = r.authorid
	`
	commentSelect = `
		SELECT c.id, c.reviewid, c.authorid, a.username, c.text, c.pubdate
		FROM feedback.comment c
		JOIN users.account a ON a.id = c.authorid
	`
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) TitleExists(context context.Context, titleID int) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context,
		`SELECT EXISTS (SELECT 1 FROM catalog.title WHERE id = $1)`, titleID,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "title_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListReviews(context context.Context, titleID, limit, offset int) ([]*Review, int, error) {
	var total int
	err := repository.db.QueryRow(context,
		`SELECT count(*) FROM feedback.review WHERE titleid = $1`, titleID,
	).Scan(&total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	rows, err := repository.db.Query(context,
		reviewSelect+` WHERE r.titleid = $1 ORDER BY r.pubdate DESC, r.id DESC LIMIT $2 OFFSET $3`,
		titleID, limit, offset,
	)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) FindReview(context context.Context, titleID, reviewID int) (*Review, error) {
	r := &Review{}
	err := repository.db.QueryRow(context,
		reviewSelect+` WHERE r.titleid = $1 AND r.id = $2`,
		titleID, reviewID,
	).Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate)

	return r, dberr.Wrap(err, "find_review")
}

func (repository *PostgresRepository) ReviewExistsByAuthor(context context.Context, titleID int, authorID string) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context,
		`SELECT EXISTS (SELECT 1 FROM feedback.review WHERE titleid = $1 AND authorid = $2)`,
		titleID, authorID,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "review_exists_by_author")
	}
	return exists, nil
}

func (repository *PostgresRepository) CreateReview(context context.Context, review *Review) error {
	query := `
		INSERT INTO feedback.review (titleid, authorid, text, score, pubdate)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, pubdate
	`

	err := repository.db.QueryRow(context, query,
		review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.ID, &review.PubDate)
	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) UpdateReview(context context.Context, review *Review) error {
	cmd, err := repository.db.Exec(context,
		`UPDATE feedback.review SET text = $2, score = $3 WHERE id = $1`,
		review.ID, review.Text, review.Score,
	)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteReview(context context.Context, titleID, reviewID int) error {
	cmd, err := repository.db.Exec(context,
		`DELETE FROM feedback.review WHERE titleid = $1 AND id = $2`,
		titleID, reviewID,
	)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListComments(context context.Context, reviewID, limit, offset int) ([]*Comment, int, error) {
	var total int
	err := repository.db.QueryRow(context,
		`SELECT count(*) FROM feedback.comment WHERE reviewid = $1`, reviewID,
	).Scan(&total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	rows, err := repository.db.Query(context,
		commentSelect+` WHERE c.reviewid = $1 ORDER BY c.pubdate ASC, c.id ASC LIMIT $2 OFFSET $3`,
		reviewID, limit, offset,
	)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.PubDate); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) FindComment(context context.Context, reviewID, commentID int) (*Comment, error) {
	c := &Comment{}
	err := repository.db.QueryRow(context,
		commentSelect+` WHERE c.reviewid = $1 AND c.id = $2`,
		reviewID, commentID,
	).Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.PubDate)

	return c, dberr.Wrap(err, "find_comment")
}

func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	query := `
		INSERT INTO feedback.comment (reviewid, authorid, text, pubdate)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, pubdate
	`

	err := repository.db.QueryRow(context, query,
		comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.ID, &comment.PubDate)
	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	cmd, err := repository.db.Exec(context,
		`UPDATE feedback.comment SET text = $2 WHERE id = $1`,
		comment.ID, comment.Text,
	)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteComment(context context.Context, reviewID, commentID int) error {
	cmd, err := repository.db.Exec(context,
		`DELETE FROM feedback.comment WHERE reviewid = $1 AND id = $2`,
		reviewID, commentID,
	)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
