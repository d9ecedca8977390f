package domain

import "time"

type ItemKind string

const (
	ItemKindBike      ItemKind = "bike"
	ItemKindAccessory ItemKind = "accessory"
)

type CatalogStatus string

const (
	CatalogStatusAvailable CatalogStatus = "available"
	CatalogStatusRented    CatalogStatus = "rented"
	CatalogStatusRetired   CatalogStatus = "retired"
)

// CatalogItem is a rentable unit in the shop inventory. Barcode is the
// scan code read by the keyboard-wedge scanner at the counter; it is unique
// across the catalog. Either price may be zero when the unit is only
// offered on the other tariff.
type CatalogItem struct {
	ID          int32         `json:"id"`
	Kind        ItemKind      `json:"kind"`
	Name        string        `json:"name"`
	Barcode     string        `json:"barcode"`
	PriceHourly float64       `json:"priceHourly"`
	PriceDaily  float64       `json:"priceDaily"`
	Status      CatalogStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedOn   time.Time     `json:"createdOn"`
	UpdatedOn   time.Time     `json:"updatedOn"`
}
