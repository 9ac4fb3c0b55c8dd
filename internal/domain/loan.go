package domain

import "time"

type LoanStatus string

const (
	LoanStatusIssued   LoanStatus = "ISSUED"
	LoanStatusReturned LoanStatus = "RETURNED"
)

// Loan is one entry in the circulation ledger. Loans are never deleted:
// a loan is created as ISSUED and transitions exactly once to RETURNED.
type Loan struct {
	ID         string     `json:"id"`
	ItemID     string     `json:"item_id"`
	HolderID   string     `json:"holder_id"`
	IssuedOn   time.Time  `json:"issued_on"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedOn *time.Time `json:"returned_on,omitempty"`
	Status     LoanStatus `json:"status"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  time.Time  `json:"updated_on"`
}

// LoanFilter narrows ledger listings. Zero values mean "no filter".
type LoanFilter struct {
	HolderID string
	ItemID   string
	Status   LoanStatus
}
