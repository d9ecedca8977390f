package repository

import (
	"context"
	"time"

	"cyclerent-backend/internal/domain"
)

type ContractRepository interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id int32) (*domain.Contract, error)
	Update(ctx context.Context, c *domain.Contract) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error)

	AddItem(ctx context.Context, contractID int32, item *domain.RentalItem) error
	UpdateItem(ctx context.Context, item *domain.RentalItem) error

	AttachDocumentKey(ctx context.Context, contractID int32, key string) error

	// ListStaleReservations returns reserved contracts whose start instant
	// lies before the cutoff and that were never activated.
	ListStaleReservations(ctx context.Context, cutoff time.Time) ([]domain.Contract, error)
	// ListOpenSince returns in-use contracts started before the cutoff
	// that still have no end instant.
	ListOpenSince(ctx context.Context, cutoff time.Time) ([]domain.Contract, error)
}

type CatalogRepository interface {
	Create(ctx context.Context, item *domain.CatalogItem) error
	GetByID(ctx context.Context, id int32) (*domain.CatalogItem, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.CatalogItem, error)
	Update(ctx context.Context, item *domain.CatalogItem) error
	SetStatus(ctx context.Context, id int32, status domain.CatalogStatus) error
	List(ctx context.Context, kind, status string, page, pageSize int32) ([]domain.CatalogItem, int32, error)
}

type OperatorRepository interface {
	Create(ctx context.Context, op *domain.Operator) error
	GetByID(ctx context.Context, id int32) (*domain.Operator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Operator, error)
}
