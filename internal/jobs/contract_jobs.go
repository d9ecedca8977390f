package jobs

import (
	"context"
	"time"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/logger"
)

// reservationGraceHours is how long past its start a reservation may sit
// unactivated before it is considered abandoned.
const reservationGraceHours = 24

// ExpireStaleReservations cancels reservations whose start instant lies
// more than a day in the past without the customer having shown up, and
// frees their catalog items.
func (jr *JobRunner) ExpireStaleReservations() {
	jr.runWithRecovery("ExpireStaleReservations", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-reservationGraceHours * time.Hour)

		stale, err := jr.store.Contracts.ListStaleReservations(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale reservations", "error", err)
			return
		}

		count := 0
		for i := range stale {
			c := &stale[i]
			c.Status = domain.ContractStatusCancelled
			if err := jr.store.Contracts.Update(ctx, c); err != nil {
				logger.Error("Failed to cancel stale reservation", "contract_id", c.ID, "error", err)
				continue
			}
			for _, it := range c.Items {
				if it.ReturnedAt != nil {
					continue
				}
				if err := jr.store.Catalog.SetStatus(ctx, it.CatalogItemID, domain.CatalogStatusAvailable); err != nil {
					logger.Error("Failed to free catalog item", "catalog_item_id", it.CatalogItemID, "error", err)
				}
			}
			count++
			logger.Debug("Cancelled stale reservation",
				"contract_id", c.ID, "number", c.Number, "start_at", c.StartAt)
		}

		logger.Info("Expired stale reservations", "count", count)
	})
}

// MarkOverdueContracts flags in-use contracts that have been open longer
// than the configured number of days. The flag is advisory: billing keeps
// accruing on the open window either way, this just surfaces bikes that
// probably are not coming back on their own.
func (jr *JobRunner) MarkOverdueContracts() {
	jr.runWithRecovery("MarkOverdueContracts", func() {
		ctx := context.Background()
		days := jr.config.Scheduler.OverdueAfterDays
		cutoff := time.Now().AddDate(0, 0, -days)

		overdue, err := jr.store.Contracts.ListOpenSince(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list overdue contracts", "error", err)
			return
		}

		for _, c := range overdue {
			logger.Warn("Contract overdue",
				"contract_id", c.ID,
				"number", c.Number,
				"customer", c.Customer.Name,
				"phone", c.Customer.Phone,
				"start_at", c.StartAt,
				"open_days", int(time.Since(c.StartAt).Hours()/24))
		}

		logger.Info("Checked overdue contracts", "count", len(overdue), "threshold_days", days)
	})
}
