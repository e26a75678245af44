// Package mediastore abstracts the external object store that holds binary
// image and video payloads referenced by feed posts.
package mediastore

import "context"

// UploadResult identifies a stored media object.
type UploadResult struct {
	URL     string
	StoreID string
}

// MediaStore defines the narrow interface the feed service uses to move
// media bytes to durable storage. Implementations must be safe for
// concurrent use.
type MediaStore interface {
	UploadImage(ctx context.Context, data []byte) (*UploadResult, error)
	UploadVideo(ctx context.Context, data []byte) (*UploadResult, error)
	Delete(ctx context.Context, storeID string) error
}
