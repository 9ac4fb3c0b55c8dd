package repository

import (
	"context"
	"time"

	"schoolhub-backend/internal/domain"
)

// ItemRepository is the catalog store. UpdateAvailability is the only
// mutation path for the availability projection; Update covers descriptive
// fields only.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id string) error
	UpdateAvailability(ctx context.Context, id string, status domain.ItemStatus, holderID *string, dueDate *time.Time) error
}

// LoanRepository is the circulation ledger. Create must fail with
// domain.ErrAlreadyIssued when an active loan already exists for the item;
// that check-and-insert is atomic at the storage layer, not in application
// code.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	MarkReturned(ctx context.Context, id string, returnedOn time.Time) (*domain.Loan, error)
	FindActiveByItem(ctx context.Context, itemID string) (*domain.Loan, error)
	List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
}

// Repositories bundles the stores handed to a transactional closure.
type Repositories struct {
	Items ItemRepository
	Loans LoanRepository
}

// Atomic runs fn with repositories bound to a single database transaction.
// fn returning an error rolls everything back.
type Atomic interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}
