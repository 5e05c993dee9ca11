package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post is the stored shape of a post document. Field names match the
// documents already in the collection, so camelCase on the bson side too.
type Post struct {
	ID              bson.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Content         string          `json:"content" bson:"content"`
	PostedBy        bson.ObjectID   `json:"postedBy" bson:"postedBy"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	Like            []bson.ObjectID `json:"like" bson:"like"`
	RePost          []bson.ObjectID `json:"rePost" bson:"rePost"`
	IsRePost        bool            `json:"isRePost" bson:"isRePost"`
	OriginalPostRef *bson.ObjectID  `json:"originalPostRef,omitempty" bson:"originalPostRef,omitempty"`
}

// LikedBy reports whether userID is in the post's like set.
func (p *Post) LikedBy(userID bson.ObjectID) bool {
	for _, id := range p.Like {
		if id == userID {
			return true
		}
	}
	return false
}

// RetweetedBy reports whether userID is in the post's rePost set.
func (p *Post) RetweetedBy(userID bson.ObjectID) bool {
	for _, id := range p.RePost {
		if id == userID {
			return true
		}
	}
	return false
}
