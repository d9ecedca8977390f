package domain

import "time"

type ContractStatus string

const (
	ContractStatusReserved  ContractStatus = "reserved"
	ContractStatusInUse     ContractStatus = "in-use"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

// Customer is embedded in the contract document. DocumentKeys reference
// captured ID photos in document storage.
type Customer struct {
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	DocumentKeys []string `json:"documentKeys,omitempty"`
}

// RentalItem is one leased unit (bike or accessory) on a contract.
// Price fields are snapshots — captured from the catalog at intake time.
// All billing uses these snapshots, not live catalog prices. The original
// price fields keep the catalog value even after an operator override and
// are never mutated after first assignment.
type RentalItem struct {
	ID            int32    `json:"id"`
	ContractID    int32    `json:"contractId"`
	CatalogItemID int32    `json:"catalogItemId"`
	Kind          ItemKind `json:"kind"`
	Name          string   `json:"name"`
	Barcode       string   `json:"barcode,omitempty"`

	PriceHourly         float64 `json:"priceHourly"`
	PriceDaily          float64 `json:"priceDaily"`
	OriginalPriceHourly float64 `json:"originalPriceHourly"`
	OriginalPriceDaily  float64 `json:"originalPriceDaily"`

	Insurance     bool    `json:"insurance"`
	InsuranceFlat float64 `json:"insuranceFlat"`

	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}

// Contract is a rental agreement. EndAt absent means the rental is still
// running. FinalAmount is set once at payment closure; afterwards it is
// authoritative and billing never recomputes.
type Contract struct {
	ID            int32          `json:"id"`
	Number        string         `json:"number"`
	Customer      Customer       `json:"customer"`
	Items         []RentalItem   `json:"items"`
	Status        ContractStatus `json:"status"`
	IsReservation bool           `json:"isReservation"`
	StartAt       time.Time      `json:"startAt"`
	EndAt         *time.Time     `json:"endAt,omitempty"`
	InsuranceFlat float64        `json:"insuranceFlat"`
	FinalAmount   *float64       `json:"finalAmount,omitempty"`
	Notes         string         `json:"notes"`
	CreatedOn     time.Time      `json:"createdOn"`
	UpdatedOn     time.Time      `json:"updatedOn"`
}

// Open reports whether the contract can still take items or returns.
func (c *Contract) Open() bool {
	return c.Status == ContractStatusReserved || c.Status == ContractStatusInUse
}

// ActiveItem returns the index of the not-yet-returned line carrying the
// given barcode, or -1.
func (c *Contract) ActiveItem(barcode string) int {
	for i, it := range c.Items {
		if it.Barcode == barcode && it.ReturnedAt == nil {
			return i
		}
	}
	return -1
}
