package service

import (
	"context"
	"time"

	"schoolhub-backend/internal/domain"
)

// CatalogService manages item records. Availability fields are off limits
// here; only the circulation service moves them.
type CatalogService interface {
	AddItem(ctx context.Context, title, author string) (*domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	UpdateItem(ctx context.Context, id string, title, author *string) (*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error)
}

// CirculationService enforces the issue/return lifecycle: at most one
// active loan per item, and the catalog projection kept in step with the
// ledger.
type CirculationService interface {
	IssueItem(ctx context.Context, itemID, holderID string, dueDate time.Time) (*domain.Loan, error)
	ReturnItem(ctx context.Context, loanID string) (*domain.Loan, error)
	RepairItemAvailability(ctx context.Context, itemID string) (bool, error)
}

// QueryService is the read-only composition over both stores. It serves
// committed data for display and never mutates state.
type QueryService interface {
	ListAvailableItems(ctx context.Context) ([]domain.Item, error)
	ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	GetLoan(ctx context.Context, id string) (*domain.Loan, error)
}
