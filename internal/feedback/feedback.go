// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

/*
Package feedback implements user reviews on titles and threaded comments
on those reviews.

Reviews carry a 0-10 score and feed the computed title rating. Each user
may review a given title at most once; moderators and admins may edit or
remove any review or comment, regular users only their own.
*/
package feedback

import "time"

// Field names used in validation errors.
const (
	FieldText  = "text"
	FieldScore = "score"
	FieldTitle = "title"
)

// Review is a single user's opinion of a title, with a 0-10 score.
type Review struct {
	ID       int       `json:"id"`
	TitleID  int       `json:"-"`
	Author   string    `json:"author"`
	AuthorID string    `json:"-"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Comment is a reply attached to a review.
type Comment struct {
	ID       int       `json:"id"`
	ReviewID int       `json:"-"`
	Author   string    `json:"author"`
	AuthorID string    `json:"-"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// ReviewInput is the write payload for reviews. Pointers let PATCH requests
// update text and score independently.
type ReviewInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// CommentInput is the write payload for comments.
type CommentInput struct {
	Text *string `json:"text"`
}
