package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/brandworks/crm-api/utils"
)

// MockImageService is an in-memory ImageService for tests. It validates
// uploads exactly like the real implementations.
type MockImageService struct {
	images map[string][]byte
	mu     sync.RWMutex

	// UploadErr, when set, is returned by UploadImage after validation
	UploadErr error
	// DeleteErr, when set, is returned by DeleteImage and the image is kept
	DeleteErr error
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		images: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global image service instance
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates and keeps the image in memory
func (m *MockImageService) UploadImage(_ context.Context, fileHeader *multipart.FileHeader) (*StoredImage, error) {
	contentType, err := utils.ValidateImageFile(fileHeader)
	if err != nil {
		return nil, err
	}
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}

	content, err := readUpload(fileHeader)
	if err != nil {
		return nil, err
	}

	key := "mock/" + utils.NewStorageName(fileHeader.Filename)
	m.mu.Lock()
	m.images[key] = content
	m.mu.Unlock()

	return &StoredImage{Key: key, ContentType: contentType, Size: int64(len(content))}, nil
}

// GetImageURL returns a fake URL for a stored image
func (m *MockImageService) GetImageURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if !m.ImageExists(key) {
		return "", fmt.Errorf("image not found in mock storage: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// DeleteImage drops an image
func (m *MockImageService) DeleteImage(_ context.Context, key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	delete(m.images, key)
	m.mu.Unlock()
	return nil
}

// ImageExists checks if an image exists in mock storage
func (m *MockImageService) ImageExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.images[key]
	return exists
}

// Count returns how many images are stored
func (m *MockImageService) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images)
}
