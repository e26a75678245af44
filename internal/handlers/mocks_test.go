package handlers

import (
	"context"
	"sync"

	"github.com/graceworks/grace-backend/internal/models"
	"github.com/graceworks/grace-backend/internal/repositories"
	"github.com/graceworks/grace-backend/pkg/mediastore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memPostRepo is an in-memory PostRepository for handler tests.
type memPostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[string]*models.Post{}}
}

func (r *memPostRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}

func (r *memPostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	cp := *post
	r.posts[post.ID.Hex()] = &cp
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	cp := *post
	return &cp, nil
}

func (r *memPostRepo) Find(_ context.Context, filter repositories.PostFilter) ([]models.Post, error) {
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
		out = append(out, *post)
	}
	return out, nil
}

func (r *memPostRepo) Count(ctx context.Context, filter repositories.PostFilter) (int64, error) {
	posts, err := r.Find(ctx, filter)
	return int64(len(posts)), err
}

func (r *memPostRepo) Update(_ context.Context, id string, update repositories.PostUpdate) (*models.Post, error) {
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
	cp := *post
	return &cp, nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
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

func (r *memPostRepo) ToggleLike(_ context.Context, postID string, userID primitive.ObjectID) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(postID); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	for i, id := range post.Likes {
		if id == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			cp := *post
			return &cp, nil
		}
	}
	post.Likes = append(post.Likes, userID)
	cp := *post
	return &cp, nil
}

func (r *memPostRepo) AddComment(_ context.Context, postID string, comment models.Comment) (*models.Post, error) {
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
	cp := *post
	return &cp, nil
}

func (r *memPostRepo) IncrementShares(_ context.Context, postID string) (*models.Post, error) {
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
	cp := *post
	return &cp, nil
}

// memMediaStore counts calls so tests can assert the upload gate fired
// before any store interaction.
type memMediaStore struct {
	mu      sync.Mutex
	Uploads int
	Deleted []string
}

func (s *memMediaStore) UploadImage(context.Context, []byte) (*mediastore.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Uploads++
	return &mediastore.UploadResult{URL: "https://media.test/image.jpg", StoreID: "grace/feed/images/img-1"}, nil
}

func (s *memMediaStore) UploadVideo(context.Context, []byte) (*mediastore.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Uploads++
	return &mediastore.UploadResult{URL: "https://media.test/video.mp4", StoreID: "grace/feed/videos/vid-1"}, nil
}

func (s *memMediaStore) Delete(_ context.Context, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, storeID)
	return nil
}

// fakeUserRepo is an in-memory UserRepository that rejects duplicate email
// addresses the way the unique index does.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	r.users[user.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

// fakeNGORepo is an in-memory NGORepository.
type fakeNGORepo struct {
	mu   sync.Mutex
	ngos map[string]*models.NGO
}

func newFakeNGORepo() *fakeNGORepo {
	return &fakeNGORepo{ngos: map[string]*models.NGO{}}
}

func (r *fakeNGORepo) Create(_ context.Context, ngo *models.NGO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ngo.ID = primitive.NewObjectID()
	cp := *ngo
	r.ngos[ngo.ID.Hex()] = &cp
	return nil
}

func (r *fakeNGORepo) GetByID(_ context.Context, id string) (*models.NGO, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ngo, ok := r.ngos[id]
	if !ok {
		return nil, repositories.ErrNGONotFound
	}
	cp := *ngo
	return &cp, nil
}

func (r *fakeNGORepo) List(_ context.Context) ([]models.NGO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.NGO{}
	for _, ngo := range r.ngos {
		out = append(out, *ngo)
	}
	return out, nil
}

func (r *fakeNGORepo) Update(_ context.Context, id string, update bson.M) (*models.NGO, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ngo, ok := r.ngos[id]
	if !ok {
		return nil, repositories.ErrNGONotFound
	}
	if v, ok := update["name"].(string); ok {
		ngo.Name = v
	}
	if v, ok := update["mission"].(string); ok {
		ngo.Mission = v
	}
	if v, ok := update["category"].(string); ok {
		ngo.Category = v
	}
	if v, ok := update["website"].(string); ok {
		ngo.Website = v
	}
	if v, ok := update["logo"].(string); ok {
		ngo.Logo = v
	}
	if v, ok := update["verified"].(bool); ok {
		ngo.Verified = v
	}
	cp := *ngo
	return &cp, nil
}

func (r *fakeNGORepo) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ngos[id]; !ok {
		return repositories.ErrNGONotFound
	}
	delete(r.ngos, id)
	return nil
}

// fakeDonationRepo is an in-memory DonationRepository whose Summary
// aggregates in-process exactly like the SQL GROUP BY.
type fakeDonationRepo struct {
	mu        sync.Mutex
	donations []models.Donation
}

func (r *fakeDonationRepo) Create(donation *models.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.donations = append(r.donations, *donation)
	return nil
}

func (r *fakeDonationRepo) GetByUserID(userID string) ([]models.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Donation{}
	for _, d := range r.donations {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDonationRepo) GetByNgoID(ngoID string) ([]models.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Donation{}
	for _, d := range r.donations {
		if d.NgoID == ngoID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDonationRepo) Summary() ([]models.DonationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byCurrency := map[string]*models.DonationSummary{}
	order := []string{}
	for _, d := range r.donations {
		row, ok := byCurrency[d.Currency]
		if !ok {
			row = &models.DonationSummary{Currency: d.Currency}
			byCurrency[d.Currency] = row
			order = append(order, d.Currency)
		}
		row.Count++
		row.Total += d.Amount
	}
	out := make([]models.DonationSummary, 0, len(order))
	for _, currency := range order {
		out = append(out, *byCurrency[currency])
	}
	return out, nil
}
