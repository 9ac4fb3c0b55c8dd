package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type loanRepository struct {
	db dbtx
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, item_id, holder_id, issued_on, due_date, returned_on, status, created_on, updated_on`

// Create appends an ISSUED loan to the ledger. The single-active-loan rule
// is enforced by the loans_one_active_per_item partial unique index, so two
// racing callers cannot both commit; the loser gets ErrAlreadyIssued.
func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	if loan.ID == "" {
		loan.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if loan.IssuedOn.IsZero() {
		loan.IssuedOn = now
	}
	loan.Status = domain.LoanStatusIssued
	loan.CreatedOn = now
	loan.UpdatedOn = now

	query := `INSERT INTO loans (id, item_id, holder_id, issued_on, due_date, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, loan.ID, loan.ItemID, loan.HolderID, loan.IssuedOn, loan.DueDate, loan.Status, loan.CreatedOn, loan.UpdatedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyIssued
		}
		return &domain.StorageError{Op: "create loan", Err: err}
	}
	return nil
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	loan := &domain.Loan{}
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&loan.ID, &loan.ItemID, &loan.HolderID, &loan.IssuedOn, &loan.DueDate, &loan.ReturnedOn, &loan.Status, &loan.CreatedOn, &loan.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "loan", ID: id}
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get loan", Err: err}
	}
	return loan, nil
}

// MarkReturned flips an ISSUED loan to RETURNED. The status guard in the
// WHERE clause makes a second return a no-op, which is then reported as
// ErrAlreadyReturned rather than NotFound when the loan row exists.
func (r *loanRepository) MarkReturned(ctx context.Context, id string, returnedOn time.Time) (*domain.Loan, error) {
	query := `UPDATE loans
	          SET status = $1, returned_on = $2, updated_on = $3
	          WHERE id = $4 AND status = $5
	          RETURNING ` + loanColumns
	loan := &domain.Loan{}
	err := r.db.QueryRowContext(ctx, query, domain.LoanStatusReturned, returnedOn, time.Now().UTC(), id, domain.LoanStatusIssued).Scan(
		&loan.ID, &loan.ItemID, &loan.HolderID, &loan.IssuedOn, &loan.DueDate, &loan.ReturnedOn, &loan.Status, &loan.CreatedOn, &loan.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the loan is gone or it was already returned.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, domain.ErrAlreadyReturned
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "mark loan returned", Err: err}
	}
	return loan, nil
}

func (r *loanRepository) FindActiveByItem(ctx context.Context, itemID string) (*domain.Loan, error) {
	loan := &domain.Loan{}
	query := `SELECT ` + loanColumns + ` FROM loans WHERE item_id = $1 AND status = $2`
	err := r.db.QueryRowContext(ctx, query, itemID, domain.LoanStatusIssued).Scan(
		&loan.ID, &loan.ItemID, &loan.HolderID, &loan.IssuedOn, &loan.DueDate, &loan.ReturnedOn, &loan.Status, &loan.CreatedOn, &loan.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "loan", ID: "active:" + itemID}
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "find active loan", Err: err}
	}
	return loan, nil
}

func (r *loanRepository) List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE 1=1`
	args := []interface{}{}
	idx := 1
	if filter.HolderID != "" {
		query += ` AND holder_id = $` + strconv.Itoa(idx)
		args = append(args, filter.HolderID)
		idx++
	}
	if filter.ItemID != "" {
		query += ` AND item_id = $` + strconv.Itoa(idx)
		args = append(args, filter.ItemID)
		idx++
	}
	if filter.Status != "" {
		query += ` AND status = $` + strconv.Itoa(idx)
		args = append(args, filter.Status)
		idx++
	}
	query += ` ORDER BY issued_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "list loans", Err: err}
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var loan domain.Loan
		if err := rows.Scan(&loan.ID, &loan.ItemID, &loan.HolderID, &loan.IssuedOn, &loan.DueDate, &loan.ReturnedOn, &loan.Status, &loan.CreatedOn, &loan.UpdatedOn); err != nil {
			return nil, &domain.StorageError{Op: "scan loan", Err: err}
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list loans", Err: err}
	}
	return loans, nil
}
