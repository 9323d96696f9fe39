package feedapp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"socialfeed/internal/core/errs"
	followerEntity "socialfeed/internal/core/follower"
	postEntity "socialfeed/internal/core/post"
	userEntity "socialfeed/internal/core/user"
	userPort "socialfeed/internal/ports/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memPosts struct{ posts []*postEntity.Post }

func (m *memPosts) Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	m.posts = append(m.posts, p)
	return p, nil
}
func (m *memPosts) FindByID(ctx context.Context, id string) (*postEntity.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errs.ErrNotFound
}
func (m *memPosts) Delete(ctx context.Context, id string) error { return nil }
func (m *memPosts) AppendComment(ctx context.Context, postID string, c postEntity.Comment) (*postEntity.Post, error) {
	return nil, nil
}
func (m *memPosts) AddLike(ctx context.Context, postID, userID string) (*postEntity.Post, bool, error) {
	return nil, false, nil
}
func (m *memPosts) RemoveLike(ctx context.Context, postID, userID string) (*postEntity.Post, bool, error) {
	return nil, false, nil
}

// list methods return store order on purpose; the service must sort.
func (m *memPosts) FindAll(ctx context.Context) ([]*postEntity.Post, error) {
	return append([]*postEntity.Post{}, m.posts...), nil
}
func (m *memPosts) FindByUserIDs(ctx context.Context, userIDs []string) ([]*postEntity.Post, error) {
	var out []*postEntity.Post
	for _, p := range m.posts {
		for _, id := range userIDs {
			if p.UserID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}
func (m *memPosts) FindByIDs(ctx context.Context, ids []string) ([]*postEntity.Post, error) {
	var out []*postEntity.Post
	for _, p := range m.posts {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}
func (m *memPosts) FindPage(ctx context.Context, afterID string, limit int64) ([]*postEntity.Post, error) {
	return nil, nil
}

type memUsers struct {
	users      []*userEntity.User
	findByIDsN int
	err        error
}

func (m *memUsers) Create(ctx context.Context, u *userEntity.User) (*userEntity.User, error) {
	m.users = append(m.users, u)
	return u, nil
}
func (m *memUsers) FindByID(ctx context.Context, id string) (*userEntity.User, error) {
	for _, u := range m.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}
func (m *memUsers) FindByIDs(ctx context.Context, ids []string) ([]*userEntity.User, error) {
	m.findByIDsN++
	if m.err != nil {
		return nil, m.err
	}
	var out []*userEntity.User
	for _, u := range m.users {
		for _, id := range ids {
			if u.ID.String() == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}
func (m *memUsers) FindByUsernameOrMobile(ctx context.Context, username, mobile string) (*userEntity.User, error) {
	return nil, errs.ErrNotFound
}
func (m *memUsers) FindByUsername(ctx context.Context, username string) (*userEntity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

type memFollows struct{ rows []*followerEntity.Follower }

func (m *memFollows) FollowUser(ctx context.Context, f *followerEntity.Follower) (*followerEntity.Follower, error) {
	m.rows = append(m.rows, f)
	return f, nil
}
func (m *memFollows) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	return nil
}
func (m *memFollows) GetFollowersByUserID(ctx context.Context, userID string) ([]*followerEntity.Follower, error) {
	return nil, nil
}
func (m *memFollows) GetFollowingByUserID(ctx context.Context, followerID string) ([]*followerEntity.Follower, error) {
	var out []*followerEntity.Follower
	for _, f := range m.rows {
		if f.FollowerID.String() == followerID {
			out = append(out, f)
		}
	}
	return out, nil
}
func (m *memFollows) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	return false, nil
}

type memLiked struct{ ids map[string][]string }

func (m *memLiked) Add(ctx context.Context, userID, postID string) error { return nil }
func (m *memLiked) Remove(ctx context.Context, userID, postID string) error { return nil }
func (m *memLiked) PostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	return m.ids[userID], nil
}
func (m *memLiked) All(ctx context.Context) ([]*userEntity.LikedPost, error) { return nil, nil }

type memCache struct {
	entries map[string]*userPort.UserDTO
	getErr  error
}

func (c *memCache) GetMany(ctx context.Context, ids []string) (map[string]*userPort.UserDTO, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := map[string]*userPort.UserDTO{}
	for _, id := range ids {
		if p, ok := c.entries[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
func (c *memCache) SetMany(ctx context.Context, profiles []*userPort.UserDTO) error {
	for _, p := range profiles {
		c.entries[p.ID] = p
	}
	return nil
}

type world struct {
	svc     *FeedService
	posts   *memPosts
	users   *memUsers
	follows *memFollows
	liked   *memLiked
	cache   *memCache
}

func newWorld() *world {
	w := &world{
		posts:   &memPosts{},
		users:   &memUsers{},
		follows: &memFollows{},
		liked:   &memLiked{ids: map[string][]string{}},
		cache:   &memCache{entries: map[string]*userPort.UserDTO{}},
	}
	w.svc = NewFeedService(w.posts, w.users, w.follows, w.liked, w.cache, zap.NewNop())
	return w
}

func (w *world) addUser(username string) *userEntity.User {
	u := &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     "Name " + username,
		Family:   "Family",
		Username: username,
		Mobile:   "0912-" + username,
		Password: "$2a$10$hash-of-" + username,
	}
	w.users.users = append(w.users.users, u)
	return u
}

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func (w *world) addPost(author *userEntity.User, minutes int) *postEntity.Post {
	p := &postEntity.Post{
		ID:        uuid.Must(uuid.NewV4()).String(),
		UserID:    author.ID.String(),
		Text:      "post by " + author.Username,
		Comments:  []postEntity.Comment{},
		Likes:     []string{},
		CreatedAt: base.Add(time.Duration(minutes) * time.Minute),
	}
	w.posts.posts = append(w.posts.posts, p)
	return p
}

func (w *world) follow(follower, followee *userEntity.User) {
	w.follows.rows = append(w.follows.rows, &followerEntity.Follower{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     followee.ID,
		FollowerID: follower.ID,
	})
}

func TestGlobalFeed_NewestFirst(t *testing.T) {
	w := newWorld()
	a, b := w.addUser("ali"), w.addUser("sara")
	w.addPost(a, 1)
	w.addPost(b, 30)
	w.addPost(a, 10)

	feed, err := w.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 3)

	for i := 1; i < len(feed); i++ {
		prev, _ := time.Parse(time.RFC3339Nano, feed[i-1].CreatedAt)
		cur, _ := time.Parse(time.RFC3339Nano, feed[i].CreatedAt)
		assert.True(t, prev.After(cur), "feed must be strictly descending")
	}
	assert.Equal(t, "sara", feed[0].User.Username)
}

func TestGlobalFeed_Empty(t *testing.T) {
	feed, err := newWorld().svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestFeeds_NoCredentialsInOutput(t *testing.T) {
	w := newWorld()
	a, b := w.addUser("ali"), w.addUser("sara")
	p := w.addPost(a, 1)
	p.Comments = append(p.Comments, postEntity.Comment{ID: "c1", UserID: b.ID.String(), Text: "nice", CreatedAt: base})
	p.Likes = []string{b.ID.String()}
	w.follow(b, a)
	w.liked.ids[b.ID.String()] = []string{p.ID}

	views := map[string]func() (interface{}, error){
		"global":    func() (interface{}, error) { return w.svc.GlobalFeed(context.Background()) },
		"following": func() (interface{}, error) { return w.svc.FollowingFeed(context.Background(), b.ID.String()) },
		"user":      func() (interface{}, error) { return w.svc.UserFeed(context.Background(), "ali") },
		"liked":     func() (interface{}, error) { return w.svc.LikedFeed(context.Background(), b.ID.String()) },
	}
	for name, view := range views {
		out, err := view()
		require.NoError(t, err, name)
		raw, err := json.Marshal(out)
		require.NoError(t, err)

		for _, u := range []*userEntity.User{a, b} {
			assert.NotContains(t, string(raw), u.Password, "%s feed leaks password", name)
			assert.NotContains(t, string(raw), u.Mobile, "%s feed leaks mobile", name)
		}
		assert.NotContains(t, string(raw), "password", name)
		assert.Contains(t, string(raw), `"username":"sara"`, "%s feed joins comment author", name)
	}
}

func TestFollowingFeed(t *testing.T) {
	w := newWorld()
	viewer, a, b, c := w.addUser("viewer"), w.addUser("ali"), w.addUser("sara"), w.addUser("reza")
	w.follow(viewer, a)
	w.follow(viewer, b)
	w.addPost(a, 1)
	w.addPost(b, 2)
	w.addPost(c, 3)
	w.addPost(viewer, 4)

	feed, err := w.svc.FollowingFeed(context.Background(), viewer.ID.String())
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, b.ID.String(), feed[0].UserID)
	assert.Equal(t, a.ID.String(), feed[1].UserID)
}

func TestFollowingFeed_EdgeCases(t *testing.T) {
	w := newWorld()
	loner := w.addUser("loner")
	w.addPost(loner, 1)

	feed, err := w.svc.FollowingFeed(context.Background(), loner.ID.String())
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)

	_, err = w.svc.FollowingFeed(context.Background(), uuid.Must(uuid.NewV4()).String())
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserFeed(t *testing.T) {
	w := newWorld()
	a, b := w.addUser("ali"), w.addUser("sara")
	w.addPost(a, 1)
	w.addPost(b, 2)
	w.addPost(a, 3)

	feed, err := w.svc.UserFeed(context.Background(), "ali")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	for _, p := range feed {
		assert.Equal(t, a.ID.String(), p.UserID)
	}
	assert.True(t, feed[0].CreatedAt > feed[1].CreatedAt)

	_, err = w.svc.UserFeed(context.Background(), "ghost")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestLikedFeed(t *testing.T) {
	w := newWorld()
	a, b := w.addUser("ali"), w.addUser("sara")
	p1 := w.addPost(a, 1)
	p2 := w.addPost(a, 2)
	w.addPost(a, 3)
	w.liked.ids[b.ID.String()] = []string{p1.ID, p2.ID, "deleted-post"}

	feed, err := w.svc.LikedFeed(context.Background(), b.ID.String())
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, p2.ID, feed[0].ID)
	assert.Equal(t, p1.ID, feed[1].ID)

	feed, err = w.svc.LikedFeed(context.Background(), a.ID.String())
	require.NoError(t, err)
	assert.Empty(t, feed)

	_, err = w.svc.LikedFeed(context.Background(), uuid.Must(uuid.NewV4()).String())
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProfiles_CacheFirst(t *testing.T) {
	w := newWorld()
	a := w.addUser("ali")
	w.addPost(a, 1)

	_, err := w.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, w.users.findByIDsN)
	assert.Contains(t, w.cache.entries, a.ID.String())

	feed, err := w.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, w.users.findByIDsN, "second read served from cache")
	assert.Equal(t, "ali", feed[0].User.Username)
}

func TestProfiles_CacheFailureFallsThrough(t *testing.T) {
	w := newWorld()
	a := w.addUser("ali")
	w.addPost(a, 1)
	w.cache.getErr = errors.New("redis down")

	feed, err := w.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ali", feed[0].User.Username)
}

func TestProfiles_DirectoryFailure(t *testing.T) {
	w := newWorld()
	a := w.addUser("ali")
	w.addPost(a, 1)
	w.users.err = errors.New("db down")

	_, err := w.svc.GlobalFeed(context.Background())
	require.ErrorIs(t, err, errs.ErrInternal)
	assert.NotContains(t, err.Error(), "db down")
}

func TestFeed_WithoutCache(t *testing.T) {
	w := newWorld()
	w.svc.ProfileCache = nil
	a := w.addUser("ali")
	w.addPost(a, 1)

	feed, err := w.svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ali", feed[0].User.Username)
}
