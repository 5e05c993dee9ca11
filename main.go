// @title Twitter Backend API
// @version 1.0
// @description Minimal social-media backend: posts, likes and retweets over MongoDB.
// @host localhost:4000
// @BasePath /api

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"twitter_backend/bootstrap"
	"twitter_backend/config"
	"twitter_backend/database"
	_ "twitter_backend/docs"
	"twitter_backend/internal/middleware"
	"twitter_backend/internal/repository"
	"twitter_backend/internal/routes"
	"twitter_backend/services"
)

func main() {
	cfg := config.LoadConfig()

	client := database.ConnectMongo(cfg.MongoURI)
	defer database.DisconnectMongo(client)

	db := client.Database(cfg.MongoDB)

	if err := bootstrap.EnsurePostIndexes(db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	postRepo := repository.NewMongoPostRepo(client, db)
	userRepo := repository.NewMongoUserRepo(db)
	postSvc := services.NewPostService(postRepo, userRepo)
	userSvc := services.NewUserService(userRepo)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	middleware.InitMetrics(app, "twitter_backend")

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	routes.PostRoutes(app, postSvc)
	routes.UserRoutes(app, userSvc)

	log.Printf("listening at http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
