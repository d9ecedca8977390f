package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalStorageService implements document storage on the local filesystem.
// Rental shops run a single server per location, so disk storage is the
// default backend.
type LocalStorageService struct {
	baseURL      string // Server URL (e.g., "http://localhost:8080")
	uploadsDir   string // Local directory for uploads (e.g., "./uploads")
	documentsDir string // Subdirectory for customer documents
}

// NewLocalStorageService creates a new local storage service
func NewLocalStorageService(baseURL, uploadsDir string) (*LocalStorageService, error) {
	documentsDir := filepath.Join(uploadsDir, "documents")

	if err := os.MkdirAll(documentsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}

	return &LocalStorageService{
		baseURL:      baseURL,
		uploadsDir:   uploadsDir,
		documentsDir: documentsDir,
	}, nil
}

// GeneratePresignedUploadURL generates an upload URL pointing to the server.
// The key is encoded in the query parameter so the upload handler knows
// where to save.
func (s *LocalStorageService) GeneratePresignedUploadURL(
	ctx context.Context,
	key string,
	contentType string,
	expiresIn time.Duration,
) (string, error) {
	uploadToken := uuid.New().String()
	uploadURL := fmt.Sprintf("%s/api/v1/upload/%s?key=%s", s.baseURL, uploadToken, key)
	return uploadURL, nil
}

// GeneratePresignedDownloadURL generates a download URL pointing to the server
func (s *LocalStorageService) GeneratePresignedDownloadURL(
	ctx context.Context,
	key string,
	expiresIn time.Duration,
) (string, error) {
	encodedKey := encodeKey(key)
	downloadURL := fmt.Sprintf("%s/api/v1/download/%s?key=%s", s.baseURL, encodedKey, key)
	return downloadURL, nil
}

// FileExists checks if file exists in the local filesystem
func (s *LocalStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	fullPath := filepath.Join(s.documentsDir, key)

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}

	return true, info.Size(), nil
}

// DeleteFile deletes file from the local filesystem
func (s *LocalStorageService) DeleteFile(ctx context.Context, key string) error {
	fullPath := filepath.Join(s.documentsDir, key)

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// SaveFile saves an uploaded file to the local filesystem
func (s *LocalStorageService) SaveFile(key string, reader io.Reader) error {
	fullPath := filepath.Join(s.documentsDir, key)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ReadFile reads a file from the local filesystem
func (s *LocalStorageService) ReadFile(key string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.documentsDir, key)

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// encodeKey creates a URL-safe hash of the key
func encodeKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16])
}
