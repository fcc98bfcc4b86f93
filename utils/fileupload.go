package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// MaxFileSize is 2MB in bytes
	MaxFileSize = 2 * 1024 * 1024
)

// AllowedImageTypes maps accepted extensions to their content type
var AllowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

var (
	// UploadDir is the directory where uploaded files are stored
	// Can be overridden for testing
	UploadDir = "./uploads"
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile checks the size, the extension and the sniffed content of
// an uploaded image. It returns the detected content type.
func ValidateImageFile(fileHeader *multipart.FileHeader) (string, error) {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return "", &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	expected, ok := AllowedImageTypes[ext]
	if !ok {
		return "", &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only JPEG, PNG and GIF images are allowed",
		}
	}

	// Check the content matches the extension
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to inspect uploaded file: %w", err)
	}
	if !detected.Is(expected) {
		return "", &FileUploadError{
			Code:    "INVALID_FILE_CONTENT",
			Message: fmt.Sprintf("File content is %s, expected %s", detected.String(), expected),
		}
	}

	return expected, nil
}

// NewStorageName returns a collision-free file name that keeps the original extension
func NewStorageName(originalName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
}

// SaveUploadedFile saves the uploaded file to the local filesystem under filename
func SaveUploadedFile(fileHeader *multipart.FileHeader, uploadDir, filename string) (err error) {
	// Create uploads directory if it doesn't exist
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Full path to save the file
	fullPath := filepath.Join(uploadDir, filepath.Base(filename))

	// Open the uploaded file
	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Create the destination file
	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	// Copy the file
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	return nil
}

// GetImageURL returns the URL path for accessing a locally stored image
func GetImageURL(filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("/api/uploads/%s", filename)
}
