package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/repository"
)

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) AddItem(ctx context.Context, item *domain.CatalogItem) error {
	if item.Barcode == "" {
		// Units without a printed label get a generated code that can be
		// typed or re-labeled later.
		item.Barcode = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = domain.CatalogStatusAvailable
	}
	if item.Kind != domain.ItemKindBike && item.Kind != domain.ItemKindAccessory {
		return fmt.Errorf("unknown item kind %q", item.Kind)
	}
	return s.catalogRepo.Create(ctx, item)
}

func (s *catalogService) GetItem(ctx context.Context, id int32) (*domain.CatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog item %d: %w", id, ErrNotFound)
	}
	return item, nil
}

func (s *catalogService) GetItemByBarcode(ctx context.Context, barcode string) (*domain.CatalogItem, error) {
	item, err := s.catalogRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("barcode %q: %w", barcode, ErrNotFound)
	}
	return item, nil
}

func (s *catalogService) UpdateItem(ctx context.Context, item *domain.CatalogItem) error {
	if _, err := s.GetItem(ctx, item.ID); err != nil {
		return err
	}
	return s.catalogRepo.Update(ctx, item)
}

func (s *catalogService) RetireItem(ctx context.Context, id int32) error {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if item.Status == domain.CatalogStatusRented {
		return ErrItemUnavailable
	}
	return s.catalogRepo.SetStatus(ctx, id, domain.CatalogStatusRetired)
}

func (s *catalogService) ListItems(ctx context.Context, kind, status string, page, pageSize int32) ([]domain.CatalogItem, int32, error) {
	return s.catalogRepo.List(ctx, kind, status, page, pageSize)
}
