package service

import (
	"context"
	"errors"
	"time"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/pricing"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrContractClosed     = errors.New("contract is not open")
	ErrItemUnavailable    = errors.New("catalog item is not available")
	ErrItemNotOnContract  = errors.New("item is not on the contract")
	ErrNotABike           = errors.New("substitution applies to bikes only")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrAlreadyFinalized   = errors.New("contract payment is already finalized")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Operator, string, string, error) // operator, access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	// EnsureDefaultOperator creates the bootstrap admin account when no
	// operator with the given email exists yet.
	EnsureDefaultOperator(ctx context.Context, email, name, password string) error
}

type CatalogService interface {
	AddItem(ctx context.Context, item *domain.CatalogItem) error
	GetItem(ctx context.Context, id int32) (*domain.CatalogItem, error)
	GetItemByBarcode(ctx context.Context, barcode string) (*domain.CatalogItem, error)
	UpdateItem(ctx context.Context, item *domain.CatalogItem) error
	RetireItem(ctx context.Context, id int32) error
	ListItems(ctx context.Context, kind, status string, page, pageSize int32) ([]domain.CatalogItem, int32, error)
}

// NewContractInput is the intake form for a new contract. Barcodes identify
// the initial items; Insured marks which of them carry insurance.
type NewContractInput struct {
	CustomerName  string
	CustomerPhone string
	IsReservation bool
	StartAt       time.Time
	InsuranceFlat float64
	Notes         string
	Barcodes      []string
	Insured       map[string]bool
}

type ContractService interface {
	CreateContract(ctx context.Context, input NewContractInput) (*domain.Contract, error)
	GetContract(ctx context.Context, id int32) (*domain.Contract, error)
	ListContracts(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error)
	Bill(ctx context.Context, contractID int32, now time.Time) (*pricing.Bill, error)

	AddItem(ctx context.Context, contractID int32, barcode string, insured bool) (*domain.Contract, error)
	ReturnItems(ctx context.Context, contractID int32, barcodes []string, now time.Time) (*domain.Contract, error)
	SubstituteBike(ctx context.Context, contractID int32, oldBarcode, newBarcode string) (*domain.Contract, error)
	OverrideItemPrice(ctx context.Context, contractID int32, index int, field pricing.PriceField, value float64) (*pricing.Bill, error)
	CompletePayment(ctx context.Context, contractID int32, finalAmount *float64, now time.Time) (*domain.Contract, error)
	CancelContract(ctx context.Context, contractID int32) (*domain.Contract, error)
}

type DocumentService interface {
	// IssueUploadURL reserves a storage key for a customer document photo and
	// returns the key plus a presigned upload URL.
	IssueUploadURL(ctx context.Context, contractID int32, filename, contentType string) (string, string, error)
	// ConfirmUpload verifies the bytes landed in storage and attaches the key
	// to the contract's customer record.
	ConfirmUpload(ctx context.Context, contractID int32, key string) error
	DownloadURL(ctx context.Context, key string) (string, error)
}
