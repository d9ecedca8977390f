package pricing

import (
	"testing"
	"time"

	"cyclerent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func at(hours float64) *time.Time {
	t := now.Add(time.Duration(hours * float64(time.Hour)))
	return &t
}

func TestResolveDuration(t *testing.T) {
	t.Run("Zero elapsed floors to one hour one day", func(t *testing.T) {
		d := ResolveDuration(now, at(0), now)
		assert.Equal(t, Duration{Hours: 1, Days: 1}, d)
	})

	t.Run("End before start clamps to minimum", func(t *testing.T) {
		d := ResolveDuration(now, at(-5), now)
		assert.Equal(t, Duration{Hours: 1, Days: 1}, d)
	})

	t.Run("Partial hour rounds up", func(t *testing.T) {
		d := ResolveDuration(now, at(3.2), now)
		assert.Equal(t, 4, d.Hours)
		assert.Equal(t, 1, d.Days)
	})

	t.Run("Exactly 24 hours is one day", func(t *testing.T) {
		d := ResolveDuration(now, at(24), now)
		assert.Equal(t, 24, d.Hours)
		assert.Equal(t, 1, d.Days)
	})

	t.Run("25 hours rolls into second day", func(t *testing.T) {
		d := ResolveDuration(now, at(25), now)
		assert.Equal(t, 25, d.Hours)
		assert.Equal(t, 2, d.Days)
	})

	t.Run("Open rental uses now as effective end", func(t *testing.T) {
		d := ResolveDuration(now.Add(-7*time.Hour), nil, now)
		assert.Equal(t, 7, d.Hours)
		assert.Equal(t, 1, d.Days)
	})

	t.Run("Zero start yields minimum duration", func(t *testing.T) {
		d := ResolveDuration(time.Time{}, nil, now)
		assert.Equal(t, Duration{Hours: 1, Days: 1}, d)
	})
}

func TestPriceItem_ActiveContract(t *testing.T) {
	bike := domain.RentalItem{
		Kind:        domain.ItemKindBike,
		Name:        "City Bike",
		PriceHourly: 5,
		PriceDaily:  30,
	}

	t.Run("Short rental bills hourly", func(t *testing.T) {
		p := PriceItem(bike, Duration{Hours: 4, Days: 1}, false)
		assert.Equal(t, 20.0, p.Amount)
		assert.Equal(t, TariffHourly, p.Tariff)
		assert.Equal(t, LogicNewContractHourly, p.Logic)
	})

	t.Run("Accrued hourly charge caps at the daily rate", func(t *testing.T) {
		// 7h * 5 = 35 >= 30, daily takes over.
		p := PriceItem(bike, Duration{Hours: 7, Days: 1}, false)
		assert.Equal(t, 30.0, p.Amount)
		assert.Equal(t, TariffDaily, p.Tariff)
		assert.Equal(t, LogicNewContractDailyCapped, p.Logic)
	})

	t.Run("Exact crossover point applies daily", func(t *testing.T) {
		// 6h * 5 = 30 == 30, tie goes to daily.
		p := PriceItem(bike, Duration{Hours: 6, Days: 1}, false)
		assert.Equal(t, 30.0, p.Amount)
		assert.Equal(t, TariffDaily, p.Tariff)
	})

	t.Run("No hourly price falls back to daily", func(t *testing.T) {
		helmet := domain.RentalItem{Kind: domain.ItemKindAccessory, PriceDaily: 10}
		p := PriceItem(helmet, Duration{Hours: 3, Days: 1}, false)
		assert.Equal(t, 10.0, p.Amount)
		assert.Equal(t, TariffDaily, p.Tariff)
		assert.Equal(t, LogicFallbackDaily, p.Logic)
	})

	t.Run("Unpriced item resolves to zero without panicking", func(t *testing.T) {
		p := PriceItem(domain.RentalItem{}, Duration{Hours: 5, Days: 1}, false)
		assert.Equal(t, 0.0, p.Amount)
		assert.Equal(t, LogicFallbackDaily, p.Logic)
	})
}

func TestPriceItem_ReservationLock(t *testing.T) {
	bike := domain.RentalItem{PriceHourly: 5, PriceDaily: 30}

	t.Run("Reservation bills per full day", func(t *testing.T) {
		p := PriceItem(bike, Duration{Hours: 48, Days: 2}, true)
		assert.Equal(t, 60.0, p.Amount)
		assert.Equal(t, TariffDaily, p.Tariff)
		assert.Equal(t, LogicReservationDailyLocked, p.Logic)
	})

	t.Run("Lock holds even when hourly would be cheaper", func(t *testing.T) {
		// 1 hour at 5 would be cheaper than a 30 day rate.
		p := PriceItem(bike, Duration{Hours: 1, Days: 1}, true)
		assert.Equal(t, 30.0, p.Amount)
		assert.Equal(t, LogicReservationDailyLocked, p.Logic)
	})
}

func TestPriceItem_CrossoverMonotonicity(t *testing.T) {
	// Within a day bucket, once the tariff switches to daily it must not
	// switch back as hours keep increasing.
	item := domain.RentalItem{PriceHourly: 4, PriceDaily: 25}

	switched := false
	for hours := 1; hours <= 24; hours++ {
		p := PriceItem(item, Duration{Hours: hours, Days: 1}, false)
		if p.Tariff == TariffDaily {
			switched = true
		}
		if switched {
			assert.Equal(t, TariffDaily, p.Tariff, "tariff flipped back to hourly at %d hours", hours)
			assert.Equal(t, 25.0, p.Amount)
		}
	}
	assert.True(t, switched)
}

func TestPriceItem_Insurance(t *testing.T) {
	item := domain.RentalItem{PriceHourly: 5, PriceDaily: 30}

	t.Run("Insurance adds the flat surcharge", func(t *testing.T) {
		insured := item
		insured.Insurance = true
		insured.InsuranceFlat = 5
		p := PriceItem(insured, Duration{Hours: 4, Days: 1}, false)
		assert.Equal(t, 20.0, p.Amount)
		assert.Equal(t, 5.0, p.Insurance)
	})

	t.Run("Unset surcharge defaults", func(t *testing.T) {
		insured := item
		insured.Insurance = true
		p := PriceItem(insured, Duration{Hours: 4, Days: 1}, false)
		assert.Equal(t, DefaultInsuranceFlat, p.Insurance)
	})

	t.Run("No insurance no surcharge", func(t *testing.T) {
		p := PriceItem(item, Duration{Hours: 4, Days: 1}, false)
		assert.Equal(t, 0.0, p.Insurance)
	})
}

func TestCalculateBill(t *testing.T) {
	bike := domain.RentalItem{Name: "City Bike", PriceHourly: 5, PriceDaily: 30}
	helmet := domain.RentalItem{Name: "Helmet", PriceDaily: 10}

	t.Run("Active contract sums lines and insurance", func(t *testing.T) {
		insuredBike := bike
		insuredBike.Insurance = true
		insuredBike.InsuranceFlat = 5
		c := &domain.Contract{
			Status:  domain.ContractStatusInUse,
			Items:   []domain.RentalItem{insuredBike, helmet},
			StartAt: now,
			EndAt:   at(4),
		}
		bill := CalculateBill(c, now)
		assert.Equal(t, 30.0, bill.Subtotal) // 20 bike + 10 helmet
		assert.Equal(t, 5.0, bill.InsuranceTotal)
		assert.Equal(t, 35.0, bill.FinalTotal)
		assert.False(t, bill.IsReservation)
		assert.Len(t, bill.Breakdown, 2)
		assert.Equal(t, LogicNewContractHourly, bill.Breakdown[0].Logic)
		assert.Equal(t, LogicFallbackDaily, bill.Breakdown[1].Logic)
	})

	t.Run("Contract-level insurance joins the total", func(t *testing.T) {
		c := &domain.Contract{
			Status:        domain.ContractStatusInUse,
			Items:         []domain.RentalItem{bike},
			StartAt:       now,
			EndAt:         at(4),
			InsuranceFlat: 3.5,
		}
		bill := CalculateBill(c, now)
		assert.Equal(t, 20.0, bill.Subtotal)
		assert.Equal(t, 3.5, bill.ContractInsurance)
		assert.Equal(t, 3.5, bill.InsuranceTotal)
		assert.Equal(t, 23.5, bill.FinalTotal)
	})

	t.Run("Reserved status forces the reservation lock", func(t *testing.T) {
		c := &domain.Contract{
			Status:  domain.ContractStatusReserved,
			Items:   []domain.RentalItem{bike},
			StartAt: now,
			EndAt:   at(2),
		}
		bill := CalculateBill(c, now)
		assert.True(t, bill.IsReservation)
		assert.Equal(t, 30.0, bill.FinalTotal)
		assert.Equal(t, LogicReservationDailyLocked, bill.Breakdown[0].Logic)
	})

	t.Run("IsReservation flag works as status alias", func(t *testing.T) {
		c := &domain.Contract{
			Status:        domain.ContractStatusInUse,
			IsReservation: true,
			Items:         []domain.RentalItem{bike},
			StartAt:       now,
			EndAt:         at(2),
		}
		bill := CalculateBill(c, now)
		assert.True(t, bill.IsReservation)
		assert.Equal(t, LogicReservationDailyLocked, bill.Breakdown[0].Logic)
	})

	t.Run("Returned items still bill for the full window", func(t *testing.T) {
		returned := helmet
		ret := now.Add(time.Hour)
		returned.ReturnedAt = &ret
		c := &domain.Contract{
			Status:  domain.ContractStatusInUse,
			Items:   []domain.RentalItem{bike, returned},
			StartAt: now,
			EndAt:   at(4),
		}
		bill := CalculateBill(c, now)
		assert.Len(t, bill.Breakdown, 2)
		assert.Equal(t, 30.0, bill.Subtotal)
	})

	t.Run("Empty contract totals zero", func(t *testing.T) {
		c := &domain.Contract{Status: domain.ContractStatusInUse, StartAt: now}
		bill := CalculateBill(c, now)
		assert.Equal(t, 0.0, bill.FinalTotal)
		assert.Empty(t, bill.Breakdown)
	})

	t.Run("Missing start prices best effort", func(t *testing.T) {
		c := &domain.Contract{
			Status: domain.ContractStatusInUse,
			Items:  []domain.RentalItem{bike},
		}
		bill := CalculateBill(c, now)
		assert.Equal(t, Duration{Hours: 1, Days: 1}, bill.Duration)
		assert.Equal(t, 5.0, bill.FinalTotal)
	})
}

func TestCalculateBill_FinalAmount(t *testing.T) {
	final := 45.50
	c := &domain.Contract{
		Status: domain.ContractStatusCompleted,
		Items: []domain.RentalItem{
			{Name: "City Bike", PriceHourly: 5, PriceDaily: 30},
			{Name: "Helmet", PriceDaily: 10},
		},
		StartAt:     now,
		FinalAmount: &final,
	}

	t.Run("Stored amount wins and spreads evenly", func(t *testing.T) {
		bill := CalculateBill(c, now)
		assert.True(t, bill.Finalized)
		assert.Equal(t, 45.50, bill.FinalTotal)
		assert.Len(t, bill.Breakdown, 2)
		assert.Equal(t, 22.75, bill.Breakdown[0].Amount)
		assert.Equal(t, 22.75, bill.Breakdown[1].Amount)
	})

	t.Run("Repeat calls ignore window mutation", func(t *testing.T) {
		first := CalculateBill(c, now)
		mutated := *c
		mutated.StartAt = now.Add(-100 * time.Hour)
		end := now.Add(50 * time.Hour)
		mutated.EndAt = &end
		second := CalculateBill(&mutated, now)
		assert.Equal(t, first.FinalTotal, second.FinalTotal)
	})
}

func TestCalculateBill_ExampleScenarios(t *testing.T) {
	bike := domain.RentalItem{Name: "City Bike", PriceHourly: 5, PriceDaily: 30}

	t.Run("Four hours bills hourly", func(t *testing.T) {
		c := &domain.Contract{Status: domain.ContractStatusInUse, Items: []domain.RentalItem{bike}, StartAt: now, EndAt: at(4)}
		bill := CalculateBill(c, now)
		assert.Equal(t, 20.0, bill.FinalTotal)
		assert.Equal(t, TariffHourly, bill.Breakdown[0].Tariff)
	})

	t.Run("Seven hours caps at the day rate", func(t *testing.T) {
		c := &domain.Contract{Status: domain.ContractStatusInUse, Items: []domain.RentalItem{bike}, StartAt: now, EndAt: at(7)}
		bill := CalculateBill(c, now)
		assert.Equal(t, 30.0, bill.FinalTotal)
		assert.Equal(t, LogicNewContractDailyCapped, bill.Breakdown[0].Logic)
	})

	t.Run("Two-day reservation locks to daily", func(t *testing.T) {
		c := &domain.Contract{Status: domain.ContractStatusReserved, Items: []domain.RentalItem{bike}, StartAt: now, EndAt: at(48)}
		bill := CalculateBill(c, now)
		assert.Equal(t, 60.0, bill.FinalTotal)
		assert.Equal(t, LogicReservationDailyLocked, bill.Breakdown[0].Logic)
	})
}

func TestApplyItemPriceOverride(t *testing.T) {
	items := []domain.RentalItem{
		{Name: "City Bike", PriceHourly: 5, PriceDaily: 30, OriginalPriceHourly: 5, OriginalPriceDaily: 30},
		{Name: "Helmet", PriceDaily: 10, OriginalPriceDaily: 10},
	}

	t.Run("Override keeps the original price", func(t *testing.T) {
		out := ApplyItemPriceOverride(items, 0, PriceFieldDaily, 25)
		assert.Equal(t, 25.0, out[0].PriceDaily)
		assert.Equal(t, 30.0, out[0].OriginalPriceDaily)
		// Untouched fields and neighbours stay put.
		assert.Equal(t, 5.0, out[0].PriceHourly)
		assert.Equal(t, 10.0, out[1].PriceDaily)
	})

	t.Run("Input slice is not mutated", func(t *testing.T) {
		_ = ApplyItemPriceOverride(items, 0, PriceFieldHourly, 1)
		assert.Equal(t, 5.0, items[0].PriceHourly)
	})

	t.Run("Second application is a no-op", func(t *testing.T) {
		once := ApplyItemPriceOverride(items, 0, PriceFieldDaily, 25)
		twice := ApplyItemPriceOverride(once, 0, PriceFieldDaily, 25)
		assert.Equal(t, once, twice)
	})

	t.Run("Backfills originals captured as zero", func(t *testing.T) {
		bare := []domain.RentalItem{{Name: "Lock", PriceDaily: 8}}
		out := ApplyItemPriceOverride(bare, 0, PriceFieldDaily, 6)
		assert.Equal(t, 6.0, out[0].PriceDaily)
		assert.Equal(t, 8.0, out[0].OriginalPriceDaily)
	})

	t.Run("Out-of-range index is ignored", func(t *testing.T) {
		out := ApplyItemPriceOverride(items, 5, PriceFieldDaily, 1)
		assert.Equal(t, items, out)
		out = ApplyItemPriceOverride(items, -1, PriceFieldDaily, 1)
		assert.Equal(t, items, out)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.556))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 12.5, Round2(12.5))
	assert.Equal(t, 0.0, Round2(0))
}
