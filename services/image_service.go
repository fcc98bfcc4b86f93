package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/brandworks/crm-api/utils"
)

// s3KeyPrefix groups employee uploads inside the bucket
const s3KeyPrefix = "employee-uploads/"

// StoredImage describes an image after it reached storage
type StoredImage struct {
	Key         string
	ContentType string
	Size        int64
}

// ImageService validates, stores, links and deletes uploaded images
type ImageService interface {
	// UploadImage validates and stores an image file
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*StoredImage, error)

	// GetImageURL generates a URL for accessing a stored image
	GetImageURL(ctx context.Context, key string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(ctx context.Context, key string) error
}

var imageServiceInstance ImageService

// GetImageService returns the configured image service
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// S3ImageService implements ImageService on an S3 bucket
type S3ImageService struct {
	s3Service S3Interface
}

// NewS3ImageService wraps an S3 client
func NewS3ImageService(s3Service S3Interface) *S3ImageService {
	return &S3ImageService{s3Service: s3Service}
}

// UploadImage validates the image and uploads it under a fresh key
func (s *S3ImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*StoredImage, error) {
	contentType, err := utils.ValidateImageFile(fileHeader)
	if err != nil {
		return nil, err
	}

	content, err := readUpload(fileHeader)
	if err != nil {
		return nil, err
	}

	key := s3KeyPrefix + utils.NewStorageName(fileHeader.Filename)
	if err := s.s3Service.PutObject(ctx, key, contentType, content); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &StoredImage{Key: key, ContentType: contentType, Size: int64(len(content))}, nil
}

// GetImageURL generates a presigned URL for an image
func (s *S3ImageService) GetImageURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}
	return url, nil
}

// DeleteImage deletes an image from the bucket
func (s *S3ImageService) DeleteImage(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.s3Service.DeleteObject(ctx, key); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// LocalImageService implements ImageService on the local disk. Files are
// served back through /api/uploads/:filename.
type LocalImageService struct {
	dir string
}

// NewLocalImageService stores images under dir
func NewLocalImageService(dir string) *LocalImageService {
	return &LocalImageService{dir: dir}
}

// Dir returns the directory images are written to
func (s *LocalImageService) Dir() string {
	return s.dir
}

// UploadImage validates the image and writes it under a fresh name
func (s *LocalImageService) UploadImage(_ context.Context, fileHeader *multipart.FileHeader) (*StoredImage, error) {
	contentType, err := utils.ValidateImageFile(fileHeader)
	if err != nil {
		return nil, err
	}

	key := utils.NewStorageName(fileHeader.Filename)
	if err := utils.SaveUploadedFile(fileHeader, s.dir, key); err != nil {
		return nil, err
	}

	return &StoredImage{Key: key, ContentType: contentType, Size: fileHeader.Size}, nil
}

// GetImageURL returns the API path of a stored image
func (s *LocalImageService) GetImageURL(_ context.Context, key string) (string, error) {
	return utils.GetImageURL(key), nil
}

// DeleteImage removes the file; a file that is already gone is not an error
func (s *LocalImageService) DeleteImage(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}
