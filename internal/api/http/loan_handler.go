package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/service"

	"github.com/gorilla/mux"
)

type LoanHandler struct {
	circulation service.CirculationService
	query       service.QueryService
}

func NewLoanHandler(circulation service.CirculationService, query service.QueryService) *LoanHandler {
	return &LoanHandler{
		circulation: circulation,
		query:       query,
	}
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.LoanFilter{
		HolderID: q.Get("holder_id"),
		ItemID:   q.Get("item_id"),
		Status:   domain.LoanStatus(strings.ToUpper(q.Get("status"))),
	}
	loans, err := h.query.ListLoans(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if loans == nil {
		loans = []domain.Loan{}
	}
	writeJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	loan, err := h.query.GetLoan(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// Create issues an item to a holder.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req IssueLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := checkRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	loan, err := h.circulation.IssueItem(r.Context(), req.ItemID, req.HolderID, dueDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

// Update supports exactly one transition: status to RETURNED.
func (h *LoanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req UpdateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := checkRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}
	if !strings.EqualFold(req.Status, string(domain.LoanStatusReturned)) {
		writeJSON(w, http.StatusBadRequest, errorBody{errorDetail{
			Code:    "UNSUPPORTED_TRANSITION",
			Message: "loans can only transition to RETURNED",
		}})
		return
	}

	loan, err := h.circulation.ReturnItem(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}
