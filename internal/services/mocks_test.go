package services

import (
	"context"
	"errors"
	"sync"

	"github.com/graceworks/grace-backend/internal/models"
	"github.com/graceworks/grace-backend/internal/repositories"
	"github.com/graceworks/grace-backend/pkg/mediastore"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errMockStore = errors.New("mock media store error")

// fakePostRepo is an in-memory PostRepository. Mutations hold the lock for
// the whole operation, matching the single-document atomicity the Mongo
// implementation gets from conditional updates.
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}}
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	cp := clonePost(post)
	r.posts[post.ID.Hex()] = &cp
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	cp := clonePost(post)
	return &cp, nil
}

func (r *fakePostRepo) Find(_ context.Context, filter repositories.PostFilter) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, post := range r.posts {
		if filter.User != nil && post.UserID != *filter.User {
			continue
		}
		if filter.Category != nil && (post.Category == nil || *post.Category != *filter.Category) {
			continue
		}
		out = append(out, clonePost(post))
	}
	return out, nil
}

func (r *fakePostRepo) Count(ctx context.Context, filter repositories.PostFilter) (int64, error) {
	posts, err := r.Find(ctx, filter)
	return int64(len(posts)), err
}

func (r *fakePostRepo) Update(_ context.Context, id string, update repositories.PostUpdate) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	if update.Caption != nil {
		post.Caption = *update.Caption
	}
	if update.Size != nil {
		post.Size = *update.Size
	}
	if update.Tags != nil {
		post.Tags = update.Tags
	}
	cp := clonePost(post)
	return &cp, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) ToggleLike(_ context.Context, postID string, userID primitive.ObjectID) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(postID); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	found := -1
	for i, id := range post.Likes {
		if id == userID {
			found = i
			break
		}
	}
	if found >= 0 {
		post.Likes = append(post.Likes[:found], post.Likes[found+1:]...)
	} else {
		post.Likes = append(post.Likes, userID)
	}
	cp := clonePost(post)
	return &cp, nil
}

func (r *fakePostRepo) AddComment(_ context.Context, postID string, comment models.Comment) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(postID); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	post.Comments = append(post.Comments, comment)
	cp := clonePost(post)
	return &cp, nil
}

func (r *fakePostRepo) IncrementShares(_ context.Context, postID string) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(postID); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	post.Shares++
	cp := clonePost(post)
	return &cp, nil
}

func clonePost(p *models.Post) models.Post {
	cp := *p
	cp.Likes = append([]primitive.ObjectID(nil), p.Likes...)
	cp.Comments = append([]models.Comment(nil), p.Comments...)
	cp.Tags = append([]string(nil), p.Tags...)
	return cp
}

// fakeMediaStore records uploads and deletions and can be told to fail.
type fakeMediaStore struct {
	mu           sync.Mutex
	ImageUploads int
	VideoUploads int
	Deleted      []string
	FailUpload   bool
	FailDelete   bool
}

func (s *fakeMediaStore) UploadImage(context.Context, []byte) (*mediastore.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpload {
		return nil, errMockStore
	}
	s.ImageUploads++
	return &mediastore.UploadResult{URL: "https://media.test/image.jpg", StoreID: "grace/feed/images/img-1"}, nil
}

func (s *fakeMediaStore) UploadVideo(context.Context, []byte) (*mediastore.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpload {
		return nil, errMockStore
	}
	s.VideoUploads++
	return &mediastore.UploadResult{URL: "https://media.test/video.mp4", StoreID: "grace/feed/videos/vid-1"}, nil
}

func (s *fakeMediaStore) Delete(_ context.Context, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, storeID)
	if s.FailDelete {
		return errMockStore
	}
	return nil
}
