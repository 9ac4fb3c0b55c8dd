package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type itemRepository struct {
	db dbtx
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, title, author, status, holder_id, due_date, created_on, updated_on`

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = domain.ItemStatusAvailable
	}
	now := time.Now().UTC()
	item.CreatedOn = now
	item.UpdatedOn = now

	query := `INSERT INTO items (id, title, author, status, holder_id, due_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, item.ID, item.Title, item.Author, item.Status, item.HolderID, item.DueDate, item.CreatedOn, item.UpdatedOn)
	if err != nil {
		return &domain.StorageError{Op: "create item", Err: err}
	}
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	item := &domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Author, &item.Status, &item.HolderID, &item.DueDate, &item.CreatedOn, &item.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "item", ID: id}
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get item", Err: err}
	}
	return item, nil
}

func (r *itemRepository) List(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "list items", Err: err}
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Author, &item.Status, &item.HolderID, &item.DueDate, &item.CreatedOn, &item.UpdatedOn); err != nil {
			return nil, &domain.StorageError{Op: "scan item", Err: err}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list items", Err: err}
	}
	return items, nil
}

// Update touches descriptive fields only. Availability fields go through
// UpdateAvailability.
func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `UPDATE items SET title = $1, author = $2, updated_on = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, item.Title, item.Author, time.Now().UTC(), item.ID)
	if err != nil {
		return &domain.StorageError{Op: "update item", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update item", Err: err}
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "item", ID: item.ID}
	}
	return nil
}

// Delete removes an item from the catalog. Loans are never deleted, so an
// item referenced by any loan row, even purely RETURNED history, is rejected
// by the ledger's foreign key and reported as a conflict.
func (r *itemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return &domain.ConflictError{Reason: "item has loan history and cannot be deleted"}
		}
		return &domain.StorageError{Op: "delete item", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "delete item", Err: err}
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "item", ID: id}
	}
	return nil
}

// UpdateAvailability is the single mutation path for the availability
// projection. It rejects field combinations that would break the
// status/holder/due-date consistency rule before touching storage.
func (r *itemRepository) UpdateAvailability(ctx context.Context, id string, status domain.ItemStatus, holderID *string, dueDate *time.Time) error {
	switch status {
	case domain.ItemStatusIssued:
		if holderID == nil || dueDate == nil {
			return &domain.ValidationError{Field: "availability", Reason: "issued items require a holder and a due date"}
		}
	case domain.ItemStatusAvailable:
		if holderID != nil || dueDate != nil {
			return &domain.ValidationError{Field: "availability", Reason: "available items cannot carry a holder or a due date"}
		}
	default:
		return &domain.ValidationError{Field: "status", Reason: "must be AVAILABLE or ISSUED"}
	}

	query := `UPDATE items SET status = $1, holder_id = $2, due_date = $3, updated_on = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, status, holderID, dueDate, time.Now().UTC(), id)
	if err != nil {
		return &domain.StorageError{Op: "update item availability", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update item availability", Err: err}
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "item", ID: id}
	}
	return nil
}
