package domain

import "time"

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "AVAILABLE"
	ItemStatusIssued    ItemStatus = "ISSUED"
)

// Item is a loanable resource in the catalog. Its availability fields
// (Status, HolderID, DueDate) are a denormalized projection of the single
// active loan for the item, if any; the loans table is the source of truth.
type Item struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Status    ItemStatus `json:"status"`
	HolderID  *string    `json:"holder_id,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
}
