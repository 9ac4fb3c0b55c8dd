package http

import (
	"time"

	"schoolhub-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Request payloads are typed and validated before any domain logic runs,
// so malformed input never reaches the circulation service.

var validate = validator.New()

type CreateItemRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author"`
}

type UpdateItemRequest struct {
	Title  *string `json:"title" validate:"omitempty,min=1"`
	Author *string `json:"author"`
}

type IssueLoanRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid4"`
	HolderID string `json:"holder_id" validate:"required"`
	DueDate  string `json:"due_date" validate:"required"`
}

type UpdateLoanRequest struct {
	Status string `json:"status" validate:"required"`
}

func checkRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &domain.ValidationError{Field: errs[0].Field(), Reason: "failed " + errs[0].Tag() + " validation"}
		}
		return &domain.ValidationError{Field: "request", Reason: err.Error()}
	}
	return nil
}

// parseDueDate accepts a plain date or a full RFC 3339 timestamp.
func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "due_date", Reason: "must be YYYY-MM-DD or RFC 3339"}
	}
	return t, nil
}
