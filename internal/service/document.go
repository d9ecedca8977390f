package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"cyclerent-backend/internal/logger"
	"cyclerent-backend/internal/repository"
	"cyclerent-backend/internal/storage"
)

const presignedURLExpiry = 15 * time.Minute

type documentService struct {
	contractRepo repository.ContractRepository
	store        storage.StorageInterface
}

func NewDocumentService(contractRepo repository.ContractRepository, store storage.StorageInterface) DocumentService {
	return &documentService{
		contractRepo: contractRepo,
		store:        store,
	}
}

func (s *documentService) IssueUploadURL(ctx context.Context, contractID int32, filename, contentType string) (string, string, error) {
	if _, err := s.contractRepo.GetByID(ctx, contractID); err != nil {
		return "", "", fmt.Errorf("contract %d: %w", contractID, ErrNotFound)
	}

	ext := filepath.Ext(filename)
	key := fmt.Sprintf("contracts/%d/%s%s", contractID, uuid.NewString(), ext)

	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, presignedURLExpiry)
	if err != nil {
		return "", "", err
	}
	return key, uploadURL, nil
}

func (s *documentService) ConfirmUpload(ctx context.Context, contractID int32, key string) error {
	exists, size, err := s.store.FileExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("document %q: %w", key, ErrNotFound)
	}

	if err := s.contractRepo.AttachDocumentKey(ctx, contractID, key); err != nil {
		return err
	}
	logger.Info("document attached", "contract_id", contractID, "key", key, "size", size)
	return nil
}

func (s *documentService) DownloadURL(ctx context.Context, key string) (string, error) {
	exists, _, err := s.store.FileExists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("document %q: %w", key, ErrNotFound)
	}
	return s.store.GeneratePresignedDownloadURL(ctx, key, presignedURLExpiry)
}
