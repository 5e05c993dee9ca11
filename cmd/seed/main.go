// Command seed populates the database with fake users, posts, likes and
// retweets for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"twitter_backend/bootstrap"
	"twitter_backend/config"
	"twitter_backend/database"
	"twitter_backend/dto"
	"twitter_backend/internal/repository"
	"twitter_backend/model"
	"twitter_backend/services"
)

func main() {
	numUsers := flag.Int("users", 10, "number of users to create")
	numPosts := flag.Int("posts", 40, "number of posts to create")
	clean := flag.Bool("clean", true, "drop posts and users before seeding")
	flag.Parse()

	cfg := config.LoadConfig()
	client := database.ConnectMongo(cfg.MongoURI)
	defer database.DisconnectMongo(client)

	db := client.Database(cfg.MongoDB)
	ctx := context.Background()

	if *clean {
		if err := db.Collection("posts").Drop(ctx); err != nil {
			log.Fatalf("drop posts: %v", err)
		}
		if err := db.Collection("users").Drop(ctx); err != nil {
			log.Fatalf("drop users: %v", err)
		}
	}

	if err := bootstrap.EnsurePostIndexes(db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	postRepo := repository.NewMongoPostRepo(client, db)
	userRepo := repository.NewMongoUserRepo(db)
	postSvc := services.NewPostService(postRepo, userRepo)

	gofakeit.Seed(time.Now().UnixNano())

	// One hash for everyone; all seeded users share the password below.
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	users := make([]*model.User, 0, *numUsers)
	for i := 0; i < *numUsers; i++ {
		u := &model.User{
			Username:     gofakeit.Username(),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		}
		if err := userRepo.Insert(ctx, u); err != nil {
			log.Fatalf("insert user: %v", err)
		}
		users = append(users, u)
	}
	log.Printf("seeded %d users", len(users))

	posts := make([]bson.ObjectID, 0, *numPosts)
	for i := 0; i < *numPosts; i++ {
		author := users[rand.Intn(len(users))]
		p := &model.Post{
			Content:   gofakeit.Sentence(8 + rand.Intn(8)),
			PostedBy:  author.ID,
			CreatedAt: time.Now().UTC().Add(-time.Duration(rand.Intn(72)) * time.Hour),
			Like:      []bson.ObjectID{},
			RePost:    []bson.ObjectID{},
		}
		if err := postRepo.Insert(ctx, p); err != nil {
			log.Fatalf("insert post: %v", err)
		}
		posts = append(posts, p.ID)
	}
	log.Printf("seeded %d posts", len(posts))

	likes, retweets := 0, 0
	for _, u := range users {
		for _, pid := range posts {
			switch rand.Intn(6) {
			case 0:
				if _, err := postSvc.ToggleLike(ctx, pid.Hex(), u.ID.Hex()); err != nil {
					log.Fatalf("seed like: %v", err)
				}
				likes++
			case 1:
				_, _, err := postSvc.Retweet(ctx, dto.RetweetRequest{
					Content: fmt.Sprintf("RT: %s", gofakeit.Sentence(5)),
					UserID:  u.ID.Hex(),
					PostID:  pid.Hex(),
				})
				if err != nil {
					log.Fatalf("seed retweet: %v", err)
				}
				retweets++
			}
		}
	}
	log.Printf("seeded %d likes, %d retweets", likes, retweets)
	log.Println("done, seeded users all have the password: password123")
}
