// Package pricing computes billable amounts for rental contracts.
//
// Everything here is a pure computation over in-memory values: no I/O, no
// process state, no errors. Malformed-but-plausible input (missing dates,
// zero-priced items, empty item lists) degrades to sensible defaults so a
// counter flow is never blocked by the arithmetic.
package pricing

import (
	"math"
	"time"

	"cyclerent-backend/internal/domain"
)

// Tariff is the per-unit price basis applied to an item.
type Tariff string

const (
	TariffHourly Tariff = "hourly"
	TariffDaily  Tariff = "daily"
)

// Pricing-logic tags explain why a given rate applied. They travel through
// the API unchanged, so the values are part of the wire contract.
const (
	LogicReservationDailyLocked = "reservation_daily_locked"
	LogicNewContractDailyCapped = "new_contract_daily_capped"
	LogicNewContractHourly      = "new_contract_hourly"
	LogicFallbackDaily          = "fallback_daily"
)

// DefaultInsuranceFlat applies when an item opts into insurance without an
// explicit surcharge.
const DefaultInsuranceFlat = 5.00

// Duration is a rental window expressed in billing units. Both counts are
// rounded up to whole units and never fall below 1.
type Duration struct {
	Hours int `json:"hours"`
	Days  int `json:"days"`
}

// ItemPrice is the priced result for a single contract line. Amount is the
// tariff charge, Insurance the flat surcharge; the two are tracked apart and
// summed only at breakdown assembly.
type ItemPrice struct {
	Amount    float64
	Insurance float64
	Tariff    Tariff
	Logic     string
}

// Line is one breakdown row of a computed bill. Amounts are rounded to two
// decimals here, at the presentation boundary.
type Line struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"total"`
	Insurance float64 `json:"insurance"`
	Tariff    Tariff  `json:"tariff,omitempty"`
	Logic     string  `json:"pricingLogic,omitempty"`
}

// Bill is the full billing breakdown for a contract.
type Bill struct {
	Breakdown         []Line   `json:"breakdown"`
	Subtotal          float64  `json:"subtotal"`
	InsuranceTotal    float64  `json:"insurance"`
	ContractInsurance float64  `json:"contractInsurance"`
	FinalTotal        float64  `json:"total"`
	IsReservation     bool     `json:"isReservation"`
	Duration          Duration `json:"duration"`
	Finalized         bool     `json:"finalized"`
}

// Round2 rounds a currency amount to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ResolveDuration converts a rental window into billing units. A nil end
// means the rental is still running and now is the effective end. Elapsed
// time rounds up to the next whole hour, days to the next whole 24-hour
// block, each clamped to a minimum of 1. A zero start (caller bug) yields
// the minimum (1, 1) rather than a huge window.
func ResolveDuration(startAt time.Time, endAt *time.Time, now time.Time) Duration {
	if startAt.IsZero() {
		return Duration{Hours: 1, Days: 1}
	}
	end := now
	if endAt != nil {
		end = *endAt
	}
	hours := int(math.Ceil(end.Sub(startAt).Hours()))
	if hours < 1 {
		hours = 1
	}
	days := (hours + 23) / 24
	return Duration{Hours: hours, Days: days}
}

// PriceItem resolves the tariff for one line over the given duration.
//
// Reservations bill per full day, unconditionally, even when the hourly
// rate would come out cheaper. Active contracts accrue hourly until the
// accrued charge meets the flat daily rate, at which point the daily rate
// takes over — a customer is never charged more than the day price. Items
// without an hourly price fall back to the daily tariff, which may be zero.
func PriceItem(item domain.RentalItem, d Duration, isReservation bool) ItemPrice {
	hourlyTotal := item.PriceHourly * float64(d.Hours)
	dailyTotal := item.PriceDaily * float64(d.Days)

	var p ItemPrice
	switch {
	case isReservation:
		p.Amount = dailyTotal
		p.Tariff = TariffDaily
		p.Logic = LogicReservationDailyLocked
	case item.PriceDaily > 0 && hourlyTotal >= dailyTotal:
		p.Amount = dailyTotal
		p.Tariff = TariffDaily
		p.Logic = LogicNewContractDailyCapped
	case item.PriceHourly > 0:
		p.Amount = hourlyTotal
		p.Tariff = TariffHourly
		p.Logic = LogicNewContractHourly
	default:
		p.Amount = dailyTotal
		p.Tariff = TariffDaily
		p.Logic = LogicFallbackDaily
	}

	if item.Insurance {
		flat := item.InsuranceFlat
		if flat == 0 {
			flat = DefaultInsuranceFlat
		}
		p.Insurance = flat
	}
	return p
}

// CalculateBill prices a whole contract as of now.
//
// When FinalAmount is set a human already closed the price; the stored
// amount wins and is spread evenly across the lines for display, without
// recomputing tariffs. Otherwise every line present on the contract bills
// for the full window, returned or not.
func CalculateBill(c *domain.Contract, now time.Time) Bill {
	if c.FinalAmount != nil {
		return finalizedBill(c)
	}

	isReservation := c.Status == domain.ContractStatusReserved || c.IsReservation
	d := ResolveDuration(c.StartAt, c.EndAt, now)

	bill := Bill{IsReservation: isReservation, Duration: d}
	var subtotal, insurance float64
	for _, item := range c.Items {
		p := PriceItem(item, d, isReservation)
		subtotal += p.Amount
		insurance += p.Insurance
		bill.Breakdown = append(bill.Breakdown, Line{
			Name:      item.Name,
			Amount:    Round2(p.Amount),
			Insurance: Round2(p.Insurance),
			Tariff:    p.Tariff,
			Logic:     p.Logic,
		})
	}
	insurance += c.InsuranceFlat

	bill.Subtotal = Round2(subtotal)
	bill.ContractInsurance = Round2(c.InsuranceFlat)
	bill.InsuranceTotal = Round2(insurance)
	bill.FinalTotal = Round2(subtotal + insurance)
	return bill
}

func finalizedBill(c *domain.Contract) Bill {
	bill := Bill{
		FinalTotal:    Round2(*c.FinalAmount),
		IsReservation: c.Status == domain.ContractStatusReserved || c.IsReservation,
		Finalized:     true,
	}
	if len(c.Items) == 0 {
		return bill
	}
	perItem := Round2(*c.FinalAmount / float64(len(c.Items)))
	for _, item := range c.Items {
		bill.Breakdown = append(bill.Breakdown, Line{Name: item.Name, Amount: perItem})
	}
	return bill
}

// PriceField selects which snapshot price an override targets.
type PriceField string

const (
	PriceFieldHourly PriceField = "priceHourly"
	PriceFieldDaily  PriceField = "priceDaily"
)

// ApplyItemPriceOverride returns a copy of items with one line's effective
// price replaced. The original price fields are backfilled from the current
// value if they were never captured, then left untouched, so the catalog
// price stays available for "was X, now Y" display. Out-of-range indexes
// and unknown fields leave the items unchanged. Applying the same override
// twice is a no-op the second time.
func ApplyItemPriceOverride(items []domain.RentalItem, index int, field PriceField, value float64) []domain.RentalItem {
	if index < 0 || index >= len(items) {
		return items
	}
	out := make([]domain.RentalItem, len(items))
	copy(out, items)

	item := &out[index]
	switch field {
	case PriceFieldHourly:
		if item.OriginalPriceHourly == 0 {
			item.OriginalPriceHourly = item.PriceHourly
		}
		item.PriceHourly = value
	case PriceFieldDaily:
		if item.OriginalPriceDaily == 0 {
			item.OriginalPriceDaily = item.PriceDaily
		}
		item.PriceDaily = value
	}
	return out
}
