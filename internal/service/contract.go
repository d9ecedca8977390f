package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/logger"
	"cyclerent-backend/internal/pricing"
	"cyclerent-backend/internal/repository"
)

type contractService struct {
	contractRepo  repository.ContractRepository
	catalogRepo   repository.CatalogRepository
	insuranceFlat float64
}

// NewContractService builds the contract service. insuranceFlat is the
// shop's per-item insurance surcharge; zero falls back to the engine
// default.
func NewContractService(
	contractRepo repository.ContractRepository,
	catalogRepo repository.CatalogRepository,
	insuranceFlat float64,
) ContractService {
	return &contractService{
		contractRepo:  contractRepo,
		catalogRepo:   catalogRepo,
		insuranceFlat: insuranceFlat,
	}
}

// snapshotLine resolves a barcode against the catalog and freezes the
// current prices into a contract line. Billing reads these snapshots from
// here on; later catalog price changes do not touch running contracts.
func (s *contractService) snapshotLine(ctx context.Context, barcode string, insured bool) (*domain.RentalItem, *domain.CatalogItem, error) {
	cat, err := s.catalogRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, nil, fmt.Errorf("barcode %q: %w", barcode, ErrNotFound)
	}
	if cat.Status != domain.CatalogStatusAvailable {
		return nil, nil, fmt.Errorf("barcode %q: %w", barcode, ErrItemUnavailable)
	}

	item := &domain.RentalItem{
		CatalogItemID:       cat.ID,
		Kind:                cat.Kind,
		Name:                cat.Name,
		Barcode:             cat.Barcode,
		PriceHourly:         cat.PriceHourly,
		PriceDaily:          cat.PriceDaily,
		OriginalPriceHourly: cat.PriceHourly,
		OriginalPriceDaily:  cat.PriceDaily,
		Insurance:           insured,
	}
	if insured {
		item.InsuranceFlat = s.insuranceFlat
	}
	return item, cat, nil
}

func (s *contractService) CreateContract(ctx context.Context, input NewContractInput) (*domain.Contract, error) {
	startAt := input.StartAt
	if startAt.IsZero() {
		startAt = time.Now()
	}

	status := domain.ContractStatusInUse
	if input.IsReservation {
		status = domain.ContractStatusReserved
	}

	c := &domain.Contract{
		Number: uuid.NewString(),
		Customer: domain.Customer{
			Name:  input.CustomerName,
			Phone: input.CustomerPhone,
		},
		Status:        status,
		IsReservation: input.IsReservation,
		StartAt:       startAt,
		InsuranceFlat: input.InsuranceFlat,
		Notes:         input.Notes,
	}

	var taken []*domain.CatalogItem
	for _, code := range input.Barcodes {
		item, cat, err := s.snapshotLine(ctx, code, input.Insured[code])
		if err != nil {
			return nil, err
		}
		c.Items = append(c.Items, *item)
		taken = append(taken, cat)
	}

	if err := s.contractRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	for _, cat := range taken {
		if err := s.catalogRepo.SetStatus(ctx, cat.ID, domain.CatalogStatusRented); err != nil {
			logger.Error("failed to mark catalog item rented", "catalog_item_id", cat.ID, "error", err)
		}
	}

	logger.Info("contract created",
		"contract_id", c.ID, "number", c.Number,
		"reservation", c.IsReservation, "items", len(c.Items))
	return c, nil
}

func (s *contractService) GetContract(ctx context.Context, id int32) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("contract %d: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *contractService) ListContracts(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error) {
	return s.contractRepo.List(ctx, status, page, pageSize)
}

func (s *contractService) Bill(ctx context.Context, contractID int32, now time.Time) (*pricing.Bill, error) {
	c, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	bill := pricing.CalculateBill(c, now)
	return &bill, nil
}

func (s *contractService) AddItem(ctx context.Context, contractID int32, barcode string, insured bool) (*domain.Contract, error) {
	c, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !c.Open() {
		return nil, ErrContractClosed
	}

	item, cat, err := s.snapshotLine(ctx, barcode, insured)
	if err != nil {
		return nil, err
	}
	if err := s.contractRepo.AddItem(ctx, contractID, item); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.SetStatus(ctx, cat.ID, domain.CatalogStatusRented); err != nil {
		logger.Error("failed to mark catalog item rented", "catalog_item_id", cat.ID, "error", err)
	}

	return s.GetContract(ctx, contractID)
}

// ReturnItems marks the given barcodes returned as of now and frees their
// catalog units. When the last open line comes back the contract's end
// instant is fixed, which freezes the billing window.
func (s *contractService) ReturnItems(ctx context.Context, contractID int32, barcodes []string, now time.Time) (*domain.Contract, error) {
	c, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !c.Open() {
		return nil, ErrContractClosed
	}

	for _, code := range barcodes {
		idx := c.ActiveItem(code)
		if idx < 0 {
			return nil, fmt.Errorf("barcode %q: %w", code, ErrItemNotOnContract)
		}
		t := now
		c.Items[idx].ReturnedAt = &t
		if err := s.contractRepo.UpdateItem(ctx, &c.Items[idx]); err != nil {
			return nil, err
		}
		if err := s.catalogRepo.SetStatus(ctx, c.Items[idx].CatalogItemID, domain.CatalogStatusAvailable); err != nil {
			logger.Error("failed to free catalog item", "catalog_item_id", c.Items[idx].CatalogItemID, "error", err)
		}
	}

	allReturned := true
	for _, it := range c.Items {
		if it.ReturnedAt == nil {
			allReturned = false
			break
		}
	}
	if allReturned && c.EndAt == nil {
		t := now
		c.EndAt = &t
	}
	if c.Status == domain.ContractStatusReserved {
		// Items coming back means the reservation was in fact used.
		c.Status = domain.ContractStatusInUse
	}
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("items returned", "contract_id", c.ID, "count", len(barcodes), "all_returned", allReturned)
	return c, nil
}

// SubstituteBike swaps an unreturned bike line for another available bike,
// in place. The line keeps its identity and insurance choice but takes a
// fresh price snapshot from the replacement, so the contract bills one
// bike, not two.
func (s *contractService) SubstituteBike(ctx context.Context, contractID int32, oldBarcode, newBarcode string) (*domain.Contract, error) {
	c, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !c.Open() {
		return nil, ErrContractClosed
	}

	idx := c.ActiveItem(oldBarcode)
	if idx < 0 {
		return nil, fmt.Errorf("barcode %q: %w", oldBarcode, ErrItemNotOnContract)
	}
	if c.Items[idx].Kind != domain.ItemKindBike {
		return nil, ErrNotABike
	}

	replacement, err := s.catalogRepo.GetByBarcode(ctx, newBarcode)
	if err != nil {
		return nil, fmt.Errorf("barcode %q: %w", newBarcode, ErrNotFound)
	}
	if replacement.Kind != domain.ItemKindBike {
		return nil, ErrNotABike
	}
	if replacement.Status != domain.CatalogStatusAvailable {
		return nil, fmt.Errorf("barcode %q: %w", newBarcode, ErrItemUnavailable)
	}

	oldCatalogID := c.Items[idx].CatalogItemID
	line := &c.Items[idx]
	line.CatalogItemID = replacement.ID
	line.Name = replacement.Name
	line.Barcode = replacement.Barcode
	line.PriceHourly = replacement.PriceHourly
	line.PriceDaily = replacement.PriceDaily
	line.OriginalPriceHourly = replacement.PriceHourly
	line.OriginalPriceDaily = replacement.PriceDaily

	if err := s.contractRepo.UpdateItem(ctx, line); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.SetStatus(ctx, oldCatalogID, domain.CatalogStatusAvailable); err != nil {
		logger.Error("failed to free catalog item", "catalog_item_id", oldCatalogID, "error", err)
	}
	if err := s.catalogRepo.SetStatus(ctx, replacement.ID, domain.CatalogStatusRented); err != nil {
		logger.Error("failed to mark catalog item rented", "catalog_item_id", replacement.ID, "error", err)
	}

	logger.Info("bike substituted", "contract_id", c.ID, "old_barcode", oldBarcode, "new_barcode", newBarcode)
	return c, nil
}

func (s *contractService) OverrideItemPrice(ctx context.Context, contractID int32, index int, field pricing.PriceField, value float64) (*pricing.Bill, error) {
	if value < 0 {
		return nil, ErrInvalidAmount
	}
	c, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.FinalAmount != nil {
		return nil, ErrAlreadyFinalized
	}
	if index < 0 || index >= len(c.Items) {
		return nil, ErrItemNotOnContract
	}

	c.Items = pricing.ApplyItemPriceOverride(c.Items, index, field, value)
	if err := s.contractRepo.UpdateItem(ctx, &c.Items[index]); err != nil {
		return nil, err
	}

	logger.Info("item price overridden",
		"contract_id", c.ID, "item_index", index, "field", string(field), "value", value)
	bill := pricing.CalculateBill(c, time.Now())
	return &bill, nil
}

// CompletePayment closes the contract. The operator-confirmed amount (or,
// absent one, the engine total as of now) is stored as the final amount;
// from then on bill reads replay that figure instead of recomputing.
func (s *contractService) CompletePayment(ctx context.Context, contractID int32, finalAmount *float64, now time.Time) (*domain.Contract, error) {
	c, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.FinalAmount != nil {
		return nil, ErrAlreadyFinalized
	}
	if !c.Open() {
		return nil, ErrContractClosed
	}

	amount := 0.0
	if finalAmount != nil {
		if *finalAmount <= 0 {
			return nil, ErrInvalidAmount
		}
		amount = pricing.Round2(*finalAmount)
	} else {
		bill := pricing.CalculateBill(c, now)
		amount = bill.FinalTotal
	}

	for i := range c.Items {
		if c.Items[i].ReturnedAt == nil {
			t := now
			c.Items[i].ReturnedAt = &t
			if err := s.contractRepo.UpdateItem(ctx, &c.Items[i]); err != nil {
				return nil, err
			}
			if err := s.catalogRepo.SetStatus(ctx, c.Items[i].CatalogItemID, domain.CatalogStatusAvailable); err != nil {
				logger.Error("failed to free catalog item", "catalog_item_id", c.Items[i].CatalogItemID, "error", err)
			}
		}
	}

	c.FinalAmount = &amount
	c.Status = domain.ContractStatusCompleted
	if c.EndAt == nil {
		t := now
		c.EndAt = &t
	}
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("payment completed", "contract_id", c.ID, "final_amount", amount)
	return c, nil
}

func (s *contractService) CancelContract(ctx context.Context, contractID int32) (*domain.Contract, error) {
	c, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !c.Open() {
		return nil, ErrContractClosed
	}

	for _, it := range c.Items {
		if it.ReturnedAt == nil {
			if err := s.catalogRepo.SetStatus(ctx, it.CatalogItemID, domain.CatalogStatusAvailable); err != nil {
				logger.Error("failed to free catalog item", "catalog_item_id", it.CatalogItemID, "error", err)
			}
		}
	}

	c.Status = domain.ContractStatusCancelled
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("contract cancelled", "contract_id", c.ID)
	return c, nil
}
