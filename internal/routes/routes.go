package routes

import (
	"github.com/gofiber/fiber/v2"

	"twitter_backend/internal/handlers"
	"twitter_backend/services"
)

func PostRoutes(app *fiber.App, svc *services.PostService) {
	posts := app.Group("/api/posts")

	posts.Get("/", handlers.GetPostsHandler(svc))
	posts.Post("/", handlers.CreatePostHandler(svc))
	posts.Post("/retweet", handlers.RetweetHandler(svc))
	posts.Delete("/:postId", handlers.DeletePostHandler(svc))
	posts.Put("/:postId/:userId/like", handlers.LikePostHandler(svc))
}

func UserRoutes(app *fiber.App, svc *services.UserService) {
	users := app.Group("/api/users")

	users.Post("/", handlers.CreateUserHandler(svc))
	users.Get("/:userId", handlers.GetUserHandler(svc))
}
