package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"cyclerent-backend/internal/domain"
)

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContractRepo) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContractRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Contract), args.Get(1).(int32), args.Error(2)
}
func (m *MockContractRepo) AddItem(ctx context.Context, contractID int32, item *domain.RentalItem) error {
	args := m.Called(ctx, contractID, item)
	return args.Error(0)
}
func (m *MockContractRepo) UpdateItem(ctx context.Context, item *domain.RentalItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockContractRepo) AttachDocumentKey(ctx context.Context, contractID int32, key string) error {
	args := m.Called(ctx, contractID, key)
	return args.Error(0)
}
func (m *MockContractRepo) ListStaleReservations(ctx context.Context, cutoff time.Time) ([]domain.Contract, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Contract), args.Error(1)
}
func (m *MockContractRepo) ListOpenSince(ctx context.Context, cutoff time.Time) ([]domain.Contract, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Contract), args.Error(1)
}

// MockCatalogRepo
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) Create(ctx context.Context, item *domain.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockCatalogRepo) GetByID(ctx context.Context, id int32) (*domain.CatalogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.CatalogItem, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogRepo) Update(ctx context.Context, item *domain.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockCatalogRepo) SetStatus(ctx context.Context, id int32, status domain.CatalogStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockCatalogRepo) List(ctx context.Context, kind, status string, page, pageSize int32) ([]domain.CatalogItem, int32, error) {
	args := m.Called(ctx, kind, status, page, pageSize)
	return args.Get(0).([]domain.CatalogItem), args.Get(1).(int32), args.Error(2)
}

// MockOperatorRepo
type MockOperatorRepo struct {
	mock.Mock
}

func (m *MockOperatorRepo) Create(ctx context.Context, op *domain.Operator) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}
func (m *MockOperatorRepo) GetByID(ctx context.Context, id int32) (*domain.Operator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}
func (m *MockOperatorRepo) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}
