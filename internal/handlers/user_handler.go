package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"twitter_backend/dto"
	"twitter_backend/services"
)

// CreateUserHandler godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateUserRequest  true  "user to create"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /users [post]
func CreateUserHandler(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := svc.Register(ctx, body)
		if err != nil {
			return respondError(c, err, "User not found")
		}
		return c.Status(fiber.StatusCreated).JSON(dto.UserResponse{User: user})
	}
}

// GetUserHandler godoc
// @Summary      Fetch a user by id
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "user id"
// @Success      200     {object}  dto.UserResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /users/{userId} [get]
func GetUserHandler(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := svc.Get(ctx, c.Params("userId"))
		if err != nil {
			return respondError(c, err, "User not found")
		}
		return c.Status(fiber.StatusOK).JSON(dto.UserResponse{User: user})
	}
}
