package services_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"twitter_backend/dto"
	"twitter_backend/internal/repository"
	"twitter_backend/model"
	"twitter_backend/services"
)

// fakeStore implements PostRepository and UserRepository in memory with the
// same semantics as the Mongo implementation, including the paired writes
// of Retweet/UndoRetweet.
type fakeStore struct {
	mu    sync.Mutex
	posts map[bson.ObjectID]*model.Post
	users map[bson.ObjectID]*model.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts: map[bson.ObjectID]*model.Post{},
		users: map[bson.ObjectID]*model.User{},
	}
}

func (f *fakeStore) List(ctx context.Context) ([]model.FeedPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.FeedPost, 0, len(f.posts))
	for _, p := range f.posts {
		view := model.FeedPost{
			ID:        p.ID,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			Like:      append([]bson.ObjectID{}, p.Like...),
			RePost:    append([]bson.ObjectID{}, p.RePost...),
			IsRePost:  p.IsRePost,
		}
		if u, ok := f.users[p.PostedBy]; ok {
			view.PostedBy = &model.Author{ID: u.ID, Username: u.Username, Email: u.Email}
		}
		if p.OriginalPostRef != nil {
			if o, ok := f.posts[*p.OriginalPostRef]; ok {
				view.OriginalPostRef = &model.OriginalPost{
					ID:       o.ID,
					PostedBy: o.PostedBy,
					PostedOn: o.CreatedAt,
					RePost:   append([]bson.ObjectID{}, o.RePost...),
					Like:     append([]bson.ObjectID{}, o.Like...),
				}
			}
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) Insert(ctx context.Context, post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	cp := *post
	f.posts[cp.ID] = &cp
	return nil
}

func (f *fakeStore) FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) Delete(ctx context.Context, id bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) SetLike(ctx context.Context, postID, userID bson.ObjectID, add bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	if add {
		p.Like = append(p.Like, userID)
		return nil
	}
	p.Like = remove(p.Like, userID)
	return nil
}

func (f *fakeStore) Retweet(ctx context.Context, originalID bson.ObjectID, derived *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.posts[originalID]
	if !ok {
		return repository.ErrNotFound
	}
	o.RePost = append(o.RePost, derived.PostedBy)
	if derived.ID.IsZero() {
		derived.ID = bson.NewObjectID()
	}
	cp := *derived
	f.posts[cp.ID] = &cp
	return nil
}

func (f *fakeStore) UndoRetweet(ctx context.Context, originalID, userID bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.posts[originalID]
	if !ok {
		return repository.ErrNotFound
	}
	o.RePost = remove(o.RePost, userID)
	for id, p := range f.posts {
		if p.IsRePost && p.PostedBy == userID && p.OriginalPostRef != nil && *p.OriginalPostRef == originalID {
			delete(f.posts, id)
			break
		}
	}
	return nil
}

func (f *fakeStore) InsertUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	cp := *user
	f.users[cp.ID] = &cp
	return nil
}

func (f *fakeStore) derivedCount(userID, originalID bson.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.posts {
		if p.IsRePost && p.PostedBy == userID && p.OriginalPostRef != nil && *p.OriginalPostRef == originalID {
			n++
		}
	}
	return n
}

func remove(ids []bson.ObjectID, id bson.ObjectID) []bson.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// userRepo adapts fakeStore to the UserRepository interface.
type userRepo struct{ *fakeStore }

func (r userRepo) Insert(ctx context.Context, user *model.User) error {
	return r.InsertUser(ctx, user)
}

func (r userRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func newTestService(t *testing.T) (*services.PostService, *fakeStore, *model.User) {
	t.Helper()
	store := newFakeStore()
	svc := services.NewPostService(store, userRepo{store})

	user := &model.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, store.InsertUser(context.Background(), user))
	return svc, store, user
}

func TestCreateValidation(t *testing.T) {
	svc, _, user := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     dto.CreatePostRequest
		wantMsg string
	}{
		{
			name:    "missing content",
			req:     dto.CreatePostRequest{UserID: user.ID.Hex()},
			wantMsg: "Post content cannot be empty",
		},
		{
			name:    "missing user id",
			req:     dto.CreatePostRequest{Content: "hello"},
			wantMsg: "Missing user id in the request body",
		},
		{
			name:    "repost without post id",
			req:     dto.CreatePostRequest{Content: "hello", UserID: user.ID.Hex(), RePost: true},
			wantMsg: "Missing postId in the request body",
		},
		{
			name:    "malformed user id",
			req:     dto.CreatePostRequest{Content: "hello", UserID: "nope"},
			wantMsg: "invalid userId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Create(ctx, tt.req)
			var ve *services.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestCreateResolvesAuthor(t *testing.T) {
	svc, _, user := newTestService(t)
	ctx := context.Background()

	post, msg, err := svc.Create(ctx, dto.CreatePostRequest{Content: "hello", UserID: user.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, services.MsgPosted, msg)

	require.NotNil(t, post.PostedBy)
	assert.Equal(t, "alice", post.PostedBy.Username)
	assert.Equal(t, "alice@example.com", post.PostedBy.Email)
	assert.Empty(t, post.Like)
	assert.Empty(t, post.RePost)
	assert.False(t, post.IsRePost)
}

func TestLikeToggleRoundTrip(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()

	post, _, err := svc.Create(ctx, dto.CreatePostRequest{Content: "hello", UserID: user.ID.Hex()})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, post.ID.Hex(), user.ID.Hex())
	require.NoError(t, err)
	assert.True(t, liked)

	stored, err := store.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{user.ID}, stored.Like)

	liked, err = svc.ToggleLike(ctx, post.ID.Hex(), user.ID.Hex())
	require.NoError(t, err)
	assert.False(t, liked)

	stored, err = store.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Like)
}

func TestLikeMissingPost(t *testing.T) {
	svc, _, user := newTestService(t)

	_, err := svc.ToggleLike(context.Background(), bson.NewObjectID().Hex(), user.ID.Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRetweetToggleRoundTrip(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()

	original, _, err := svc.Create(ctx, dto.CreatePostRequest{Content: "hello", UserID: user.ID.Hex()})
	require.NoError(t, err)

	retweeter := &model.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, store.InsertUser(ctx, retweeter))

	req := dto.RetweetRequest{Content: "rt", UserID: retweeter.ID.Hex(), PostID: original.ID.Hex()}

	derived, retweeted, err := svc.Retweet(ctx, req)
	require.NoError(t, err)
	assert.True(t, retweeted)
	require.NotNil(t, derived)
	assert.True(t, derived.IsRePost)
	require.NotNil(t, derived.OriginalPostRef)
	assert.Equal(t, original.ID, *derived.OriginalPostRef)
	assert.Equal(t, 1, store.derivedCount(retweeter.ID, original.ID))

	stored, err := store.FindByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{retweeter.ID}, stored.RePost)

	derived, retweeted, err = svc.Retweet(ctx, req)
	require.NoError(t, err)
	assert.False(t, retweeted)
	assert.Nil(t, derived)
	assert.Equal(t, 0, store.derivedCount(retweeter.ID, original.ID))

	stored, err = store.FindByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RePost)
}

func TestRetweetMissingOriginal(t *testing.T) {
	svc, _, user := newTestService(t)

	_, _, err := svc.Retweet(context.Background(), dto.RetweetRequest{
		Content: "rt",
		UserID:  user.ID.Hex(),
		PostID:  bson.NewObjectID().Hex(),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateRePostFlagRoutesThroughToggle(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()

	original, _, err := svc.Create(ctx, dto.CreatePostRequest{Content: "hello", UserID: user.ID.Hex()})
	require.NoError(t, err)

	req := dto.CreatePostRequest{
		Content: "rt",
		UserID:  user.ID.Hex(),
		RePost:  true,
		PostID:  original.ID.Hex(),
	}

	post, msg, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, services.MsgReTweeted, msg)
	require.NotNil(t, post)
	assert.True(t, post.IsRePost)
	require.NotNil(t, post.OriginalPostRef)
	assert.Equal(t, original.ID, post.OriginalPostRef.ID)
	assert.Equal(t, 1, store.derivedCount(user.ID, original.ID))

	// The same call again undoes the retweet instead of stacking another.
	post, msg, err = svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, services.MsgUnTweeted, msg)
	assert.Nil(t, post)
	assert.Equal(t, 0, store.derivedCount(user.ID, original.ID))
}

func TestDeleteMissingPost(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Delete(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteLeavesDerivedPosts(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()

	original, _, err := svc.Create(ctx, dto.CreatePostRequest{Content: "hello", UserID: user.ID.Hex()})
	require.NoError(t, err)
	_, _, err = svc.Retweet(ctx, dto.RetweetRequest{Content: "rt", UserID: user.ID.Hex(), PostID: original.ID.Hex()})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, original.ID.Hex()))

	// No cascade: the derived post survives with a dangling reference.
	assert.Equal(t, 1, store.derivedCount(user.ID, original.ID))
}

func TestListEmptyAndOrdering(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, services.ErrNoPosts)

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Insert(ctx, &model.Post{
			Content:   "post",
			PostedBy:  user.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Like:      []bson.ObjectID{},
			RePost:    []bson.ObjectID{},
		}))
	}

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for i := 1; i < len(posts); i++ {
		assert.True(t, posts[i-1].CreatedAt.After(posts[i].CreatedAt))
	}
	for _, p := range posts {
		require.NotNil(t, p.PostedBy)
		assert.Equal(t, "alice", p.PostedBy.Username)
	}
}
