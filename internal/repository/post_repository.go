package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"twitter_backend/model"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// PostRepository is the storage contract of the post store.
type PostRepository interface {
	// List returns every post, author and original-post references
	// resolved, sorted by createdAt descending.
	List(ctx context.Context) ([]model.FeedPost, error)
	Insert(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	// SetLike adds (add=true) or removes the user from the post's like set.
	SetLike(ctx context.Context, postID, userID bson.ObjectID, add bool) error
	// Retweet records userID in the original's rePost set and inserts the
	// derived post, atomically.
	Retweet(ctx context.Context, originalID bson.ObjectID, derived *model.Post) error
	// UndoRetweet removes userID from the original's rePost set and
	// deletes the matching derived post, atomically.
	UndoRetweet(ctx context.Context, originalID, userID bson.ObjectID) error
}

type mongoPostRepo struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewMongoPostRepo(client *mongo.Client, db *mongo.Database) PostRepository {
	return &mongoPostRepo{
		client: client,
		col:    db.Collection("posts"),
	}
}

const (
	stageLookup  = "$lookup"
	stageUnwind  = "$unwind"
	stageProject = "$project"
	stageSort    = "$sort"
)

func (r *mongoPostRepo) List(ctx context.Context) ([]model.FeedPost, error) {
	pipe := mongo.Pipeline{
		{{Key: stageLookup, Value: bson.M{
			"from":         "users",
			"localField":   "postedBy",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: stageUnwind, Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},

		{{Key: stageLookup, Value: bson.M{
			"from":         "posts",
			"localField":   "originalPostRef",
			"foreignField": "_id",
			"as":           "original",
		}}},
		{{Key: stageUnwind, Value: bson.M{"path": "$original", "preserveNullAndEmptyArrays": true}}},

		{{Key: stageProject, Value: bson.M{
			"content":   1,
			"createdAt": 1,
			"like":      1,
			"rePost":    1,
			"isRePost":  1,
			"postedBy": bson.M{"$cond": bson.A{
				bson.M{"$not": bson.A{"$author"}},
				nil,
				bson.M{
					"_id":      "$author._id",
					"username": "$author.username",
					"email":    "$author.email",
				},
			}},
			"originalPostRef": bson.M{"$cond": bson.A{
				bson.M{"$not": bson.A{"$original"}},
				nil,
				bson.M{
					"_id":      "$original._id",
					"postedBy": "$original.postedBy",
					"postedOn": "$original.createdAt",
					"rePost":   "$original.rePost",
					"like":     "$original.like",
				},
			}},
		}}},

		{{Key: stageSort, Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []model.FeedPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *mongoPostRepo) Insert(ctx context.Context, post *model.Post) error {
	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *mongoPostRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	var post model.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mongoPostRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPostRepo) SetLike(ctx context.Context, postID, userID bson.ObjectID, add bool) error {
	op := "$pull"
	if add {
		op = "$push"
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{op: bson.M{"like": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Retweet runs both writes in one transaction so the rePost set and the
// derived-post collection cannot drift apart on a crash.
func (r *mongoPostRepo) Retweet(ctx context.Context, originalID bson.ObjectID, derived *model.Post) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (interface{}, error) {
		res, err := r.col.UpdateOne(sc,
			bson.M{"_id": originalID},
			bson.M{"$push": bson.M{"rePost": derived.PostedBy}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		ins, err := r.col.InsertOne(sc, derived)
		if err != nil {
			return nil, err
		}
		derived.ID = ins.InsertedID.(bson.ObjectID)
		return nil, nil
	})
	return err
}

func (r *mongoPostRepo) UndoRetweet(ctx context.Context, originalID, userID bson.ObjectID) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (interface{}, error) {
		res, err := r.col.UpdateOne(sc,
			bson.M{"_id": originalID},
			bson.M{"$pull": bson.M{"rePost": userID}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		_, err = r.col.DeleteOne(sc, bson.M{
			"postedBy":        userID,
			"originalPostRef": originalID,
			"isRePost":        true,
		})
		return nil, err
	})
	return err
}
