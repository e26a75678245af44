package mediastore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const (
	imageFolder = "grace/feed/images"
	videoFolder = "grace/feed/videos"
)

// CloudinaryStore implements MediaStore on top of Cloudinary.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStore creates a CloudinaryStore from a cloudinary:// URL.
func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration error: %w", err)
	}
	return &CloudinaryStore{client: cld}, nil
}

// UploadImage uploads image bytes and returns the durable URL and public ID.
func (s *CloudinaryStore) UploadImage(ctx context.Context, data []byte) (*UploadResult, error) {
	res, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       imageFolder,
		PublicID:     uuid.NewString(),
		ResourceType: "image",
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: res.SecureURL, StoreID: res.PublicID}, nil
}

// UploadVideo stages the payload on disk before handing it to Cloudinary.
// The staging file is removed on success and failure alike.
func (s *CloudinaryStore) UploadVideo(ctx context.Context, data []byte) (*UploadResult, error) {
	staged, err := stageFile(data)
	if err != nil {
		return nil, err
	}
	defer os.Remove(staged)

	res, err := s.client.Upload.Upload(ctx, staged, uploader.UploadParams{
		Folder:       videoFolder,
		PublicID:     uuid.NewString(),
		ResourceType: "video",
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: res.SecureURL, StoreID: res.PublicID}, nil
}

// Delete removes a previously uploaded media object. The resource type is
// recovered from the folder prefix baked into the public ID at upload time.
func (s *CloudinaryStore) Delete(ctx context.Context, storeID string) error {
	resourceType := "image"
	if strings.HasPrefix(storeID, videoFolder+"/") {
		resourceType = "video"
	}
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     storeID,
		ResourceType: resourceType,
	})
	return err
}

// stageFile writes data to a temp file and returns its path. The caller owns
// removal.
func stageFile(data []byte) (string, error) {
	f, err := os.CreateTemp("", "grace-video-*")
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close staging file: %w", err)
	}
	return f.Name(), nil
}
