package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"twitter_backend/dto"
	"twitter_backend/internal/repository"
	"twitter_backend/services"
)

const requestTimeout = 5 * time.Second

// respondError maps service errors onto the API's status codes. Unexpected
// failures are logged and answered with a generic message only.
func respondError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: ve.Message})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: notFoundMsg})
	case errors.Is(err, services.ErrNoPosts):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "No posts found."})
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Something went wrong"})
	}
}

// GetPostsHandler godoc
// @Summary      List all posts
// @Description  Returns every post, newest first, with author and original-post references resolved.
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.PostsResponse
// @Failure      404  {object}  dto.ErrorResponse  "no posts"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts [get]
func GetPostsHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		posts, err := svc.List(ctx)
		if err != nil {
			return respondError(c, err, "Requested post not found in the database")
		}
		return c.Status(fiber.StatusOK).JSON(dto.PostsResponse{Posts: posts})
	}
}

// CreatePostHandler godoc
// @Summary      Create a post
// @Description  Creates a post. With rePost=true the call is routed through the retweet toggle for the given postId.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePostRequest  true  "post to create"
// @Success      201   {object}  dto.CreatedPostResponse
// @Success      200   {object}  dto.CreatedPostResponse  "rePost toggle undid a previous retweet"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /posts [post]
func CreatePostHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.CreatePostRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		post, msg, err := svc.Create(ctx, body)
		if err != nil {
			return respondError(c, err, "Requested post not found in the database")
		}
		status := fiber.StatusCreated
		if post == nil {
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(dto.CreatedPostResponse{Message: msg, Post: post})
	}
}

// RetweetHandler godoc
// @Summary      Toggle a retweet
// @Description  Retweets the given post, or undoes the user's existing retweet of it.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RetweetRequest  true  "retweet target"
// @Success      201   {object}  dto.RetweetResponse  "retweeted"
// @Success      200   {object}  dto.RetweetResponse  "un-retweeted"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /posts/retweet [post]
func RetweetHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.RetweetRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		post, retweeted, err := svc.Retweet(ctx, body)
		if err != nil {
			return respondError(c, err, "Requested post not found in the database")
		}
		if retweeted {
			return c.Status(fiber.StatusCreated).JSON(dto.RetweetResponse{Message: services.MsgRetweetOn, Post: post})
		}
		return c.Status(fiber.StatusOK).JSON(dto.RetweetResponse{Message: services.MsgUnTweeted})
	}
}

// LikePostHandler godoc
// @Summary      Toggle a like
// @Tags         posts
// @Produce      json
// @Param        postId  path      string  true  "post id"
// @Param        userId  path      string  true  "user id"
// @Success      200     {object}  dto.MessageResponse  "Liked or Unliked"
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /posts/{postId}/{userId}/like [put]
func LikePostHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		liked, err := svc.ToggleLike(ctx, c.Params("postId"), c.Params("userId"))
		if err != nil {
			return respondError(c, err, "Requested post not found in the database")
		}
		msg := services.MsgUnliked
		if liked {
			msg = services.MsgLiked
		}
		return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: msg})
	}
}

// DeletePostHandler godoc
// @Summary      Delete a post
// @Description  Removes the post. Derived retweets and set entries referencing it are not cascaded.
// @Tags         posts
// @Produce      json
// @Param        postId  path      string  true  "post id"
// @Success      200     {object}  dto.MessageResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /posts/{postId} [delete]
func DeletePostHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := svc.Delete(ctx, c.Params("postId")); err != nil {
			return respondError(c, err, "Post not found")
		}
		return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Post deleted successfully"})
	}
}
