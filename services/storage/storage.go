package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService handles vehicle and service-center image uploads.
type StorageService interface {
	UploadImage(ctx context.Context, file multipart.File, folder string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

type cloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewStorageService creates a Cloudinary-backed StorageService.
func NewStorageService(cld *cloudinary.Cloudinary) StorageService {
	return &cloudinaryStorage{cld: cld}
}

// UploadImage uploads an image into the given folder and returns its URL.
func (s *cloudinaryStorage) UploadImage(ctx context.Context, file multipart.File, folder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: no URL returned for upload")
	}
	return result.SecureURL, nil
}

// DeleteImage removes an uploaded image by its public ID.
func (s *cloudinaryStorage) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: failed to delete image: %w", err)
	}
	return nil
}
