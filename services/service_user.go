package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"twitter_backend/dto"
	"twitter_backend/internal/repository"
	"twitter_backend/model"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, in dto.CreateUserRequest) (*model.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, invalid("username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, idHex string) (*model.User, error) {
	id, err := bson.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, invalid("invalid userId")
	}
	return s.users.FindByID(ctx, id)
}
