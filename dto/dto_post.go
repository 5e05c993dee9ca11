package dto

import "twitter_backend/model"

// CreatePostRequest is the body of POST /api/posts. RePost and PostID are
// only meaningful together: a rePost-flagged create is treated as a
// retweet of PostID.
type CreatePostRequest struct {
	Content string `json:"content"`
	UserID  string `json:"userId"`
	RePost  bool   `json:"rePost"`
	PostID  string `json:"postId"`
}

// RetweetRequest is the body of POST /api/posts/retweet.
type RetweetRequest struct {
	Content string `json:"content"`
	UserID  string `json:"userId"`
	PostID  string `json:"postId"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PostsResponse struct {
	Posts []model.FeedPost `json:"posts"`
}

type CreatedPostResponse struct {
	Message string          `json:"message"`
	Post    *model.FeedPost `json:"post,omitempty"`
}

type RetweetResponse struct {
	Message string      `json:"message"`
	Post    *model.Post `json:"post,omitempty"`
}
