package feedback

import "context"

type Repository interface {
	// TitleExists lets handlers 404 before touching reviews of a missing title.
	TitleExists(context context.Context, titleID int) (bool, error)

	ListReviews(context context.Context, titleID, limit, offset int) ([]*Review, int, error)
	FindReview(context context.Context, titleID, reviewID int) (*Review, error)
	ReviewExistsByAuthor(context context.Context, titleID int, authorID string) (bool, error)
	CreateReview(context context.Context, review *Review) error
	UpdateReview(context context.Context, review *Review) error
	DeleteReview(context context.Context, titleID, reviewID int) error

	ListComments(context context.Context, reviewID, limit, offset int) ([]*Comment, int, error)
	FindComment(context context.Context, reviewID, commentID int) (*Comment, error)
	CreateComment(context context.Context, comment *Comment) error
	UpdateComment(context context.Context, comment *Comment) error
	DeleteComment(context context.Context, reviewID, commentID int) error
}
