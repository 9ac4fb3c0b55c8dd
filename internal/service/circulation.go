package service

import (
	"context"
	"fmt"
	"time"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/logger"
	"schoolhub-backend/internal/repository"
)

type circulationService struct {
	itemRepo repository.ItemRepository
	loanRepo repository.LoanRepository
	atomic   repository.Atomic
}

func NewCirculationService(itemRepo repository.ItemRepository, loanRepo repository.LoanRepository, atomic repository.Atomic) CirculationService {
	return &circulationService{
		itemRepo: itemRepo,
		loanRepo: loanRepo,
		atomic:   atomic,
	}
}

// IssueItem creates an active loan for the item and flips the catalog
// projection to ISSUED. The cached-status check is a fast path only; the
// loser of a concurrent race is rejected by the ledger's constrained
// insert, and the rejected attempt leaves no catalog mutation behind.
func (s *circulationService) IssueItem(ctx context.Context, itemID, holderID string, dueDate time.Time) (*domain.Loan, error) {
	if itemID == "" {
		return nil, &domain.ValidationError{Field: "item_id", Reason: "required"}
	}
	if holderID == "" {
		return nil, &domain.ValidationError{Field: "holder_id", Reason: "required"}
	}
	if dueDate.IsZero() {
		return nil, &domain.ValidationError{Field: "due_date", Reason: "required"}
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == domain.ItemStatusIssued {
		return nil, domain.ErrAlreadyIssued
	}

	loan := &domain.Loan{
		ItemID:   itemID,
		HolderID: holderID,
		DueDate:  dueDate,
	}

	err = s.atomic.WithinTx(ctx, func(r repository.Repositories) error {
		if err := r.Loans.Create(ctx, loan); err != nil {
			return err
		}
		return r.Items.UpdateAvailability(ctx, itemID, domain.ItemStatusIssued, &holderID, &dueDate)
	})
	if err != nil {
		if domain.IsConflict(err) {
			// A concurrent caller won the race between the fast-path
			// check and the ledger insert.
			logger.InfoContext(ctx, "Issue rejected by active-loan constraint", "item_id", itemID, "holder_id", holderID)
			return nil, err
		}
		logger.ErrorContext(ctx, "Issue failed", "item_id", itemID, "holder_id", holderID, "error", err)
		return nil, fmt.Errorf("failed to issue item %s: %w", itemID, err)
	}

	logger.InfoContext(ctx, "Item issued", "item_id", itemID, "holder_id", holderID, "loan_id", loan.ID, "due_date", dueDate)
	return loan, nil
}

// ReturnItem closes a loan and clears the catalog projection. A second
// return of the same loan fails with a conflict and changes nothing.
func (s *circulationService) ReturnItem(ctx context.Context, loanID string) (*domain.Loan, error) {
	if loanID == "" {
		return nil, &domain.ValidationError{Field: "loan_id", Reason: "required"}
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status == domain.LoanStatusReturned {
		return nil, domain.ErrAlreadyReturned
	}

	var returned *domain.Loan
	err = s.atomic.WithinTx(ctx, func(r repository.Repositories) error {
		returned, err = r.Loans.MarkReturned(ctx, loanID, time.Now().UTC())
		if err != nil {
			return err
		}
		return r.Items.UpdateAvailability(ctx, loan.ItemID, domain.ItemStatusAvailable, nil, nil)
	})
	if err != nil {
		if domain.IsConflict(err) || domain.IsNotFound(err) {
			return nil, err
		}
		logger.ErrorContext(ctx, "Return failed", "loan_id", loanID, "item_id", loan.ItemID, "error", err)
		return nil, fmt.Errorf("failed to return loan %s: %w", loanID, err)
	}

	logger.InfoContext(ctx, "Item returned", "loan_id", loanID, "item_id", loan.ItemID, "holder_id", loan.HolderID)
	return returned, nil
}

// RepairItemAvailability resets an item whose cached status reads ISSUED
// even though the ledger holds no active loan for it. The ledger check and
// the reset run inside one transaction, so an issue committing concurrently
// cannot slip in between them and have its projection wiped. A repair is
// logged loudly, never absorbed silently. Returns whether a repair happened.
func (s *circulationService) RepairItemAvailability(ctx context.Context, itemID string) (bool, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item.Status != domain.ItemStatusIssued {
		return false, nil
	}

	repaired := false
	err = s.atomic.WithinTx(ctx, func(r repository.Repositories) error {
		_, err := r.Loans.FindActiveByItem(ctx, itemID)
		if err == nil {
			// Projection and ledger agree; nothing to repair.
			return nil
		}
		if !domain.IsNotFound(err) {
			return err
		}
		if err := r.Items.UpdateAvailability(ctx, itemID, domain.ItemStatusAvailable, nil, nil); err != nil {
			return err
		}
		repaired = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if repaired {
		logger.WarnContext(ctx, "Repaired inconsistent item projection: item read ISSUED with no active loan",
			"item_id", itemID, "previous_holder_id", item.HolderID)
	}
	return repaired, nil
}
