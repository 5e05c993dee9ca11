package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Author is the reduced view of a post's author returned to the frontend.
type Author struct {
	ID       bson.ObjectID `json:"_id" bson:"_id"`
	Username string        `json:"username" bson:"username"`
	Email    string        `json:"email" bson:"email"`
}

// OriginalPost is the reduced view of the post a retweet points back to.
type OriginalPost struct {
	ID       bson.ObjectID   `json:"_id" bson:"_id"`
	PostedBy bson.ObjectID   `json:"postedBy" bson:"postedBy"`
	PostedOn time.Time       `json:"postedOn" bson:"postedOn"`
	RePost   []bson.ObjectID `json:"rePost" bson:"rePost"`
	Like     []bson.ObjectID `json:"like" bson:"like"`
}

// FeedPost is a post with its references resolved for the frontend:
// postedBy becomes an Author and originalPostRef becomes an OriginalPost.
// Either pointer is nil when the referenced document no longer exists.
type FeedPost struct {
	ID              bson.ObjectID   `json:"_id" bson:"_id"`
	Content         string          `json:"content" bson:"content"`
	PostedBy        *Author         `json:"postedBy" bson:"postedBy"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	Like            []bson.ObjectID `json:"like" bson:"like"`
	RePost          []bson.ObjectID `json:"rePost" bson:"rePost"`
	IsRePost        bool            `json:"isRePost" bson:"isRePost"`
	OriginalPostRef *OriginalPost   `json:"originalPostRef,omitempty" bson:"originalPostRef,omitempty"`
}
