package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface defines the interface for customer document storage backends.
// The local implementation keeps files on disk; a cloud backend (S3, Azure)
// can be swapped in behind the same methods.
type StorageInterface interface {
	// GeneratePresignedUploadURL generates a presigned URL for uploading
	// key: storage path/key for the file
	// contentType: MIME type (e.g., "image/jpeg")
	// expiresIn: how long the URL should be valid
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL generates a presigned URL for downloading
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error

	// SaveFile saves a file (used by the local storage HTTP handler)
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a file for reading (used by the local storage HTTP handler)
	ReadFile(key string) (io.ReadCloser, error)
}
