package postapp

import (
	"context"
	"errors"
	"sync"

	"socialfeed/internal/core/errs"
	notificationEntity "socialfeed/internal/core/notification"
	postEntity "socialfeed/internal/core/post"
	userEntity "socialfeed/internal/core/user"
)

var errBoom = errors.New("boom")

type fakePostRepo struct {
	mu        sync.Mutex
	posts     map[string]*postEntity.Post
	createErr error
	deleteErr error
	// staleToggle simulates a concurrent request that already made the transition
	staleToggle bool
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*postEntity.Post{}}
}

func clonePost(p *postEntity.Post) *postEntity.Post {
	cp := *p
	cp.Comments = append([]postEntity.Comment{}, p.Comments...)
	cp.Likes = append([]string{}, p.Likes...)
	return &cp
}

func (r *fakePostRepo) put(p *postEntity.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = clonePost(p)
}

func (r *fakePostRepo) get(id string) (*postEntity.Post, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, false
	}
	return clonePost(p), true
}

func (r *fakePostRepo) Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.put(p)
	return p, nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id string) (*postEntity.Post, error) {
	p, ok := r.get(id)
	if !ok {
		return nil, errs.ErrNotFound
	}
	return p, nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) AppendComment(ctx context.Context, postID string, c postEntity.Comment) (*postEntity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	p.Comments = append(p.Comments, c)
	return clonePost(p), nil
}

func (r *fakePostRepo) AddLike(ctx context.Context, postID, userID string) (*postEntity.Post, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, false, errs.ErrNotFound
	}
	if r.staleToggle || p.LikedBy(userID) {
		return clonePost(p), false, nil
	}
	p.Likes = append(p.Likes, userID)
	return clonePost(p), true, nil
}

func (r *fakePostRepo) RemoveLike(ctx context.Context, postID, userID string) (*postEntity.Post, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, false, errs.ErrNotFound
	}
	if r.staleToggle || !p.LikedBy(userID) {
		return clonePost(p), false, nil
	}
	kept := p.Likes[:0]
	for _, id := range p.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	p.Likes = kept
	return clonePost(p), true, nil
}

func (r *fakePostRepo) FindAll(ctx context.Context) ([]*postEntity.Post, error) {
	return nil, errors.New("not used")
}

func (r *fakePostRepo) FindByUserIDs(ctx context.Context, userIDs []string) ([]*postEntity.Post, error) {
	return nil, errors.New("not used")
}

func (r *fakePostRepo) FindByIDs(ctx context.Context, ids []string) ([]*postEntity.Post, error) {
	return nil, errors.New("not used")
}

func (r *fakePostRepo) FindPage(ctx context.Context, afterID string, limit int64) ([]*postEntity.Post, error) {
	return nil, errors.New("not used")
}

type fakeUserRepo struct {
	users map[string]*userEntity.User
	err   error
}

func (r *fakeUserRepo) Create(ctx context.Context, u *userEntity.User) (*userEntity.User, error) {
	r.users[u.ID.String()] = u
	return u, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*userEntity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) ([]*userEntity.User, error) {
	return nil, errors.New("not used")
}

func (r *fakeUserRepo) FindByUsernameOrMobile(ctx context.Context, username, mobile string) (*userEntity.User, error) {
	return nil, errors.New("not used")
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*userEntity.User, error) {
	return nil, errors.New("not used")
}

type fakeLikedRepo struct {
	mu    sync.Mutex
	liked map[string]map[string]bool
	err   error
}

func newFakeLikedRepo() *fakeLikedRepo {
	return &fakeLikedRepo{liked: map[string]map[string]bool{}}
}

func (r *fakeLikedRepo) Add(ctx context.Context, userID, postID string) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.liked[userID] == nil {
		r.liked[userID] = map[string]bool{}
	}
	r.liked[userID][postID] = true
	return nil
}

func (r *fakeLikedRepo) Remove(ctx context.Context, userID, postID string) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.liked[userID], postID)
	return nil
}

func (r *fakeLikedRepo) has(userID, postID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.liked[userID][postID]
}

func (r *fakeLikedRepo) PostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	return nil, errors.New("not used")
}

func (r *fakeLikedRepo) All(ctx context.Context) ([]*userEntity.LikedPost, error) {
	return nil, errors.New("not used")
}

type fakeAttachments struct {
	url       string
	err       error
	stored    []string
	destroyed []string
}

func (a *fakeAttachments) Store(ctx context.Context, rawImage string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.stored = append(a.stored, rawImage)
	return a.url, nil
}

func (a *fakeAttachments) Destroy(ctx context.Context, imageURL string) {
	a.destroyed = append(a.destroyed, imageURL)
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notificationEntity.LikeEvent
	err    error
}

func (n *fakeNotifier) EmitLike(ctx context.Context, ev notificationEntity.LikeEvent) (*notificationEntity.Notification, error) {
	if n.err != nil {
		return nil, n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return &notificationEntity.Notification{Type: notificationEntity.TypeLike}, nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}
