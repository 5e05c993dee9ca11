package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsurePostIndexes creates the indexes the post store relies on: the feed
// sort on createdAt, and a partial unique index that keeps exactly one
// derived retweet post per (user, original post) pair.
func EnsurePostIndexes(db *mongo.Database) error {
	_, err := db.Collection("posts").Indexes().CreateMany(
		context.Background(),
		[]mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("feed_created_at"),
			},
			{
				Keys: bson.D{
					{Key: "postedBy", Value: 1},
					{Key: "originalPostRef", Value: 1},
				},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"isRePost": true}).
					SetName("uniq_retweet_per_user"),
			},
		},
	)
	return err
}
