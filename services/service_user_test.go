package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"twitter_backend/dto"
	"twitter_backend/internal/repository"
	"twitter_backend/services"
)

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeStore()
	svc := services.NewUserService(userRepo{store})
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))

	got, err := svc.Get(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestRegisterValidation(t *testing.T) {
	store := newFakeStore()
	svc := services.NewUserService(userRepo{store})

	_, err := svc.Register(context.Background(), dto.CreateUserRequest{Username: "alice"})
	var ve *services.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestGetMissingUser(t *testing.T) {
	store := newFakeStore()
	svc := services.NewUserService(userRepo{store})

	_, err := svc.Get(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Get(context.Background(), "not-an-id")
	var ve *services.ValidationError
	assert.ErrorAs(t, err, &ve)
}
