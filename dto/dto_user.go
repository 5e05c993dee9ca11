package dto

import "twitter_backend/model"

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	User *model.User `json:"user"`
}
