package services

import (
	"context"
	"fmt"
	"sync"
)

// MockS3Service is an in-memory S3Interface for tests
type MockS3Service struct {
	objects map[string][]byte
	types   map[string]string
	mu      sync.RWMutex
}

// NewMockS3Service creates an empty mock bucket
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

// PutObject stores a copy of content under key
func (m *MockS3Service) PutObject(_ context.Context, key, contentType string, content []byte) error {
	stored := make([]byte, len(content))
	copy(stored, content)

	m.mu.Lock()
	m.objects[key] = stored
	m.types[key] = contentType
	m.mu.Unlock()
	return nil
}

// GetPresignedURL returns a fake bucket URL for a stored key
func (m *MockS3Service) GetPresignedURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if !m.ObjectExists(key) {
		return "", fmt.Errorf("file not found in mock S3: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// DeleteObject drops key
func (m *MockS3Service) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	delete(m.types, key)
	m.mu.Unlock()
	return nil
}

// ObjectExists checks if key is stored
func (m *MockS3Service) ObjectExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.objects[key]
	return exists
}

// ContentType returns the content type key was stored with
func (m *MockS3Service) ContentType(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.types[key]
}
