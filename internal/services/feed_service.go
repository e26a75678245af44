package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/graceworks/grace-backend/internal/models"
	"github.com/graceworks/grace-backend/internal/repositories"
	"github.com/graceworks/grace-backend/pkg/mediastore"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Service-level error conditions, distinct from the storage sentinels.
var (
	ErrUserRequired     = errors.New("user is required")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// FeedService is the single place where post lifecycle rules are enforced.
// All dependencies are injected at construction.
type FeedService struct {
	posts     repositories.PostRepository
	store     mediastore.MediaStore
	logger    *zap.Logger
	sanitizer *bluemonday.Policy
}

// NewFeedService creates a FeedService
func NewFeedService(posts repositories.PostRepository, store mediastore.MediaStore, logger *zap.Logger) *FeedService {
	return &FeedService{
		posts:     posts,
		store:     store,
		logger:    logger,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// UploadInput carries an upload-mediated post creation request
type UploadInput struct {
	User     string
	Data     []byte
	MimeType string
	Caption  string
	Size     string
	Tags     []string
}

// DirectInput carries a post creation request with already-resolved content
type DirectInput struct {
	User     string
	Type     string
	Content  string
	Caption  string
	Size     string
	Tags     []string
	Category string
}

// CreateFromUpload classifies the payload by MIME type, moves it to the
// media store, and persists the resulting post.
func (s *FeedService) CreateFromUpload(ctx context.Context, in UploadInput) (*models.Post, error) {
	if in.User == "" {
		return nil, ErrUserRequired
	}
	userID, err := primitive.ObjectIDFromHex(in.User)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	var postType string
	var res *mediastore.UploadResult
	switch {
	case strings.HasPrefix(in.MimeType, "image/"):
		postType = models.PostTypePhoto
		res, err = s.store.UploadImage(ctx, in.Data)
	case strings.HasPrefix(in.MimeType, "video/"):
		postType = models.PostTypeVideo
		res, err = s.store.UploadVideo(ctx, in.Data)
	default:
		return nil, ErrUnsupportedMedia
	}
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:    userID,
		Type:      postType,
		Content:   res.URL,
		ContentID: res.StoreID,
		Caption:   s.sanitizer.Sanitize(in.Caption),
		Size:      defaultSize(in.Size),
		Tags:      in.Tags,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateDirect persists a post from already-resolved fields. Type defaults
// to text and size to medium.
func (s *FeedService) CreateDirect(ctx context.Context, in DirectInput) (*models.Post, error) {
	if in.User == "" {
		return nil, ErrUserRequired
	}
	userID, err := primitive.ObjectIDFromHex(in.User)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	postType := in.Type
	if postType == "" {
		postType = models.PostTypeText
	}

	post := &models.Post{
		UserID:  userID,
		Type:    postType,
		Content: in.Content,
		Caption: s.sanitizer.Sanitize(in.Caption),
		Size:    defaultSize(in.Size),
		Tags:    in.Tags,
	}
	if in.Category != "" {
		categoryID, err := primitive.ObjectIDFromHex(in.Category)
		if err != nil {
			return nil, repositories.ErrInvalidID
		}
		post.Category = &categoryID
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns every post matching the filter. No pagination is applied.
func (s *FeedService) List(ctx context.Context, filter repositories.PostFilter) ([]models.Post, error) {
	return s.posts.Find(ctx, filter)
}

// Count returns the number of posts matching the filter
func (s *FeedService) Count(ctx context.Context, filter repositories.PostFilter) (int64, error) {
	return s.posts.Count(ctx, filter)
}

// GetByID returns a single post
func (s *FeedService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Update applies the mutable fields (caption, size, tags) and returns the
// updated post.
func (s *FeedService) Update(ctx context.Context, id string, update repositories.PostUpdate) (*models.Post, error) {
	if update.Caption != nil {
		clean := s.sanitizer.Sanitize(*update.Caption)
		update.Caption = &clean
	}
	return s.posts.Update(ctx, id, update)
}

// Delete removes the post document. When the post carries a media store
// identifier the backing object is deleted as well; a cleanup failure is
// logged and does not affect the committed deletion.
func (s *FeedService) Delete(ctx context.Context, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	if post.ContentID != "" {
		if err := s.store.Delete(ctx, post.ContentID); err != nil {
			s.logger.Warn("media cleanup failed after post deletion",
				zap.String("post_id", id),
				zap.String("store_id", post.ContentID),
				zap.Error(err))
		}
	}
	return nil
}

// ToggleLike adds the user to the post's like set if absent, removes it if
// present, and returns the updated post.
func (s *FeedService) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}
	return s.posts.ToggleLike(ctx, postID, uid)
}

// AddComment appends a comment to the post and returns the updated post
func (s *FeedService) AddComment(ctx context.Context, postID, userID, text string) (*models.Post, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}
	comment := models.Comment{
		UserID:    uid,
		Text:      s.sanitizer.Sanitize(text),
		CreatedAt: time.Now(),
	}
	return s.posts.AddComment(ctx, postID, comment)
}

// Share increments the post's share counter. Repeated shares by the same
// user each count.
func (s *FeedService) Share(ctx context.Context, postID string) (*models.Post, error) {
	return s.posts.IncrementShares(ctx, postID)
}

func defaultSize(size string) string {
	if size == "" {
		return models.PostSizeMedium
	}
	return size
}
