package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"twitter_backend/dto"
	"twitter_backend/internal/repository"
	"twitter_backend/model"
)

// Response messages, kept byte-for-byte compatible with the previous
// incarnation of this API.
const (
	MsgPosted    = "Posted"
	MsgReTweeted = "ReTweeted"
	MsgRetweetOn = "Successfully ReTweeted"
	MsgUnTweeted = "Successfully UnTweeted"
	MsgLiked     = "Liked"
	MsgUnliked   = "Unliked"
)

type PostService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

// List returns the full feed, newest first, or ErrNoPosts when the store
// holds no posts at all.
func (s *PostService) List(ctx context.Context) ([]model.FeedPost, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}
	return posts, nil
}

// Create persists a new post. A rePost-flagged create is routed through
// the retweet toggle so the original's rePost set and the derived post
// always move together; the flag-based path is otherwise identical to
// POST /posts/retweet. The returned message distinguishes the paths.
func (s *PostService) Create(ctx context.Context, in dto.CreatePostRequest) (*model.FeedPost, string, error) {
	if in.Content == "" {
		return nil, "", invalid("Post content cannot be empty")
	}
	if in.UserID == "" {
		return nil, "", invalid("Missing user id in the request body")
	}
	userID, err := bson.ObjectIDFromHex(in.UserID)
	if err != nil {
		return nil, "", invalid("invalid userId")
	}

	if in.RePost {
		if in.PostID == "" {
			return nil, "", invalid("Missing postId in the request body")
		}
		postID, err := bson.ObjectIDFromHex(in.PostID)
		if err != nil {
			return nil, "", invalid("invalid postId")
		}
		derived, retweeted, err := s.toggleRetweet(ctx, in.Content, userID, postID)
		if err != nil {
			return nil, "", err
		}
		if !retweeted {
			return nil, MsgUnTweeted, nil
		}
		view, err := s.resolve(ctx, derived)
		if err != nil {
			return nil, "", err
		}
		return view, MsgReTweeted, nil
	}

	post := &model.Post{
		Content:   in.Content,
		PostedBy:  userID,
		CreatedAt: time.Now().UTC(),
		Like:      []bson.ObjectID{},
		RePost:    []bson.ObjectID{},
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, "", err
	}
	view, err := s.resolve(ctx, post)
	if err != nil {
		return nil, "", err
	}
	return view, MsgPosted, nil
}

// Retweet toggles the (user, post) retweet state. It returns the derived
// post and true when the call retweeted, or nil and false when it undid a
// previous retweet.
func (s *PostService) Retweet(ctx context.Context, in dto.RetweetRequest) (*model.Post, bool, error) {
	if in.Content == "" {
		return nil, false, invalid("Post content cannot be empty")
	}
	if in.UserID == "" {
		return nil, false, invalid("Missing user id in the request body")
	}
	if in.PostID == "" {
		return nil, false, invalid("Missing postId in the request body")
	}
	userID, err := bson.ObjectIDFromHex(in.UserID)
	if err != nil {
		return nil, false, invalid("invalid userId")
	}
	postID, err := bson.ObjectIDFromHex(in.PostID)
	if err != nil {
		return nil, false, invalid("invalid postId")
	}
	return s.toggleRetweet(ctx, in.Content, userID, postID)
}

func (s *PostService) toggleRetweet(ctx context.Context, content string, userID, postID bson.ObjectID) (*model.Post, bool, error) {
	original, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, false, err
	}

	if !original.RetweetedBy(userID) {
		derived := &model.Post{
			Content:         content,
			PostedBy:        userID,
			CreatedAt:       time.Now().UTC(),
			Like:            []bson.ObjectID{},
			RePost:          []bson.ObjectID{},
			IsRePost:        true,
			OriginalPostRef: &postID,
		}
		if err := s.posts.Retweet(ctx, postID, derived); err != nil {
			return nil, false, err
		}
		return derived, true, nil
	}

	if err := s.posts.UndoRetweet(ctx, postID, userID); err != nil {
		return nil, false, err
	}
	return nil, false, nil
}

// ToggleLike flips the user's membership in the post's like set and
// reports the resulting state: true when the call liked the post.
func (s *PostService) ToggleLike(ctx context.Context, postIDHex, userIDHex string) (bool, error) {
	postID, err := bson.ObjectIDFromHex(postIDHex)
	if err != nil {
		return false, invalid("invalid postId")
	}
	userID, err := bson.ObjectIDFromHex(userIDHex)
	if err != nil {
		return false, invalid("invalid userId")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return false, err
	}

	add := !post.LikedBy(userID)
	if err := s.posts.SetLike(ctx, postID, userID, add); err != nil {
		return false, err
	}
	return add, nil
}

// Delete removes the post unconditionally. Derived retweet posts and set
// entries referencing it are left in place; the feed resolves such dead
// references to null.
func (s *PostService) Delete(ctx context.Context, postIDHex string) error {
	postID, err := bson.ObjectIDFromHex(postIDHex)
	if err != nil {
		return invalid("invalid postId")
	}
	return s.posts.Delete(ctx, postID)
}

// resolve builds the frontend view of a freshly written post: author
// reduced to {username, email}, original post reduced to its counters.
// Dangling references resolve to nil rather than failing the request.
func (s *PostService) resolve(ctx context.Context, post *model.Post) (*model.FeedPost, error) {
	view := &model.FeedPost{
		ID:        post.ID,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		Like:      post.Like,
		RePost:    post.RePost,
		IsRePost:  post.IsRePost,
	}

	author, err := s.users.FindByID(ctx, post.PostedBy)
	switch {
	case err == nil:
		view.PostedBy = &model.Author{ID: author.ID, Username: author.Username, Email: author.Email}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	if post.OriginalPostRef != nil {
		original, err := s.posts.FindByID(ctx, *post.OriginalPostRef)
		switch {
		case err == nil:
			view.OriginalPostRef = &model.OriginalPost{
				ID:       original.ID,
				PostedBy: original.PostedBy,
				PostedOn: original.CreatedAt,
				RePost:   original.RePost,
				Like:     original.Like,
			}
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}
	return view, nil
}
