package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post size categories and content types accepted by the feed.
const (
	PostTypePhoto = "photo"
	PostTypeVideo = "video"
	PostTypeText  = "text"

	PostSizeSmall  = "small"
	PostSizeMedium = "medium"
	PostSizeLarge  = "large"
)

// Post represents a feed post stored in MongoDB. Likes and comments are
// embedded in the document; shares is a monotonically increasing counter.
type Post struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID   `json:"user" bson:"user"`
	Type      string               `json:"type" bson:"type"`
	Content   string               `json:"content" bson:"content"`
	ContentID string               `json:"content_id,omitempty" bson:"content_id,omitempty"` // media store public ID, empty for text posts
	Caption   string               `json:"caption,omitempty" bson:"caption,omitempty"`
	Size      string               `json:"size" bson:"size"`
	Tags      []string             `json:"tags,omitempty" bson:"tags,omitempty"`
	Category  *primitive.ObjectID  `json:"category,omitempty" bson:"category,omitempty"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	Shares    int64                `json:"shares" bson:"shares"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
}

// Comment is embedded in a Post; insertion order is display order.
type Comment struct {
	UserID    primitive.ObjectID `json:"user" bson:"user"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreatePostRequest defines the request body for creating a post from
// already-resolved fields (a media URL the caller holds, or a text post).
type CreatePostRequest struct {
	User     string   `json:"user" validate:"required,objectid"`
	Type     string   `json:"type" validate:"omitempty,oneof=photo video text"`
	Content  string   `json:"content" validate:"required"`
	Caption  string   `json:"caption" validate:"omitempty,max=2000"`
	Size     string   `json:"size" validate:"omitempty,oneof=small medium large"`
	Tags     []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	Category string   `json:"category" validate:"omitempty,objectid"`
}

// UpdatePostRequest defines the mutable fields of a post. Identity, user,
// type and content are not reachable from this path.
type UpdatePostRequest struct {
	Caption *string  `json:"caption" validate:"omitempty,max=2000"`
	Size    *string  `json:"size" validate:"omitempty,oneof=small medium large"`
	Tags    []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

// LikeRequest identifies the user toggling a like or sharing a post.
type LikeRequest struct {
	UserID string `json:"userId" validate:"required,objectid"`
}

// CommentRequest defines the request body for appending a comment.
type CommentRequest struct {
	UserID string `json:"userId" validate:"required,objectid"`
	Text   string `json:"text" validate:"required,min=1,max=500"`
}
