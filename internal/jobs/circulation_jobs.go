package jobs

import (
	"context"
	"time"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/logger"
)

// ReportOverdueLoans logs every active loan past its due date. Loans stay
// ISSUED until they are physically returned; this job only reports.
func (jr *JobRunner) ReportOverdueLoans() {
	jr.runWithRecovery("ReportOverdueLoans", func() {
		ctx := context.Background()

		loans, err := jr.loanRepo.List(ctx, domain.LoanFilter{Status: domain.LoanStatusIssued})
		if err != nil {
			logger.Error("Failed to list active loans", "error", err)
			return
		}

		now := time.Now().UTC()
		count := 0
		for _, loan := range loans {
			if loan.DueDate.Before(now) {
				count++
				logger.Warn("Loan overdue",
					"loan_id", loan.ID,
					"item_id", loan.ItemID,
					"holder_id", loan.HolderID,
					"due_date", loan.DueDate.Format("2006-01-02"),
					"days_overdue", int(now.Sub(loan.DueDate).Hours()/24))
			}
		}
		logger.Info("Overdue loan report finished", "active_loans", len(loans), "overdue", count)
	})
}

// ReconcileItemAvailability sweeps items whose cached status reads ISSUED
// and resets any that have no active loan in the ledger. Each repair is
// logged by the circulation service as an inconsistency event.
func (jr *JobRunner) ReconcileItemAvailability() {
	jr.runWithRecovery("ReconcileItemAvailability", func() {
		ctx := context.Background()

		items, err := jr.itemRepo.List(ctx, domain.ItemStatusIssued)
		if err != nil {
			logger.Error("Failed to list issued items", "error", err)
			return
		}

		repairs := 0
		for _, item := range items {
			repaired, err := jr.circulation.RepairItemAvailability(ctx, item.ID)
			if err != nil {
				logger.Error("Failed to reconcile item availability", "item_id", item.ID, "error", err)
				continue
			}
			if repaired {
				repairs++
			}
		}
		logger.Info("Availability reconcile finished", "issued_items", len(items), "repaired", repairs)
	})
}
