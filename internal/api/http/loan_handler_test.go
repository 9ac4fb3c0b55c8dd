package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/logger"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testAPIKey = "test-secret"

func init() {
	logger.Initialize("error", "text")
}

type testEnv struct {
	catalog     *MockCatalogService
	circulation *MockCirculationService
	query       *MockQueryService
	router      *mux.Router
}

func newTestEnv() *testEnv {
	catalog := new(MockCatalogService)
	circulation := new(MockCirculationService)
	query := new(MockQueryService)
	items := NewItemHandler(catalog, circulation, query)
	loans := NewLoanHandler(circulation, query)
	return &testEnv{
		catalog:     catalog,
		circulation: circulation,
		query:       query,
		router:      NewRouter(items, loans, okPinger{}, testAPIKey),
	}
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("X-API-Key", testAPIKey)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not an error envelope: %s", rec.Body.String())
	}
	return body.Error.Code
}

const testItemID = "3f2c8a34-6f1d-4f7e-9b15-0d3f8a2c1e77"

func TestLoanHandler_Create(t *testing.T) {
	dueDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	t.Run("Issues Item", func(t *testing.T) {
		env := newTestEnv()
		loan := &domain.Loan{ID: "loan-1", ItemID: testItemID, HolderID: "S1", Status: domain.LoanStatusIssued}
		env.circulation.On("IssueItem", mock.Anything, testItemID, "S1", dueDate).Return(loan, nil)

		rec := env.do(http.MethodPost, "/api/v1/loans", map[string]string{
			"item_id":   testItemID,
			"holder_id": "S1",
			"due_date":  "2026-09-14",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got domain.Loan
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "loan-1", got.ID)
		env.circulation.AssertExpectations(t)
	})

	t.Run("Rejects Missing Holder", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodPost, "/api/v1/loans", map[string]string{
			"item_id":  testItemID,
			"due_date": "2026-09-14",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(t, rec))
		env.circulation.AssertNotCalled(t, "IssueItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects Bad Due Date", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodPost, "/api/v1/loans", map[string]string{
			"item_id":   testItemID,
			"holder_id": "S1",
			"due_date":  "next week",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(t, rec))
	})

	t.Run("Rejects Malformed JSON", func(t *testing.T) {
		env := newTestEnv()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", bytes.NewBufferString("{not json"))
		req.Header.Set("X-API-Key", testAPIKey)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(t, rec))
	})

	t.Run("Item Not Found", func(t *testing.T) {
		env := newTestEnv()
		env.circulation.On("IssueItem", mock.Anything, testItemID, "S1", dueDate).
			Return(nil, &domain.NotFoundError{Resource: "item", ID: testItemID})

		rec := env.do(http.MethodPost, "/api/v1/loans", map[string]string{
			"item_id":   testItemID,
			"holder_id": "S1",
			"due_date":  "2026-09-14",
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
	})

	t.Run("Item Already Issued", func(t *testing.T) {
		env := newTestEnv()
		env.circulation.On("IssueItem", mock.Anything, testItemID, "S1", dueDate).
			Return(nil, domain.ErrAlreadyIssued)

		rec := env.do(http.MethodPost, "/api/v1/loans", map[string]string{
			"item_id":   testItemID,
			"holder_id": "S1",
			"due_date":  "2026-09-14",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "ALREADY_ISSUED", errorCode(t, rec))
	})
}

func TestLoanHandler_Update(t *testing.T) {
	t.Run("Returns Loan", func(t *testing.T) {
		env := newTestEnv()
		returned := time.Now().UTC()
		loan := &domain.Loan{ID: "loan-1", ItemID: testItemID, HolderID: "S1", Status: domain.LoanStatusReturned, ReturnedOn: &returned}
		env.circulation.On("ReturnItem", mock.Anything, "loan-1").Return(loan, nil)

		rec := env.do(http.MethodPut, "/api/v1/loans/loan-1", map[string]string{"status": "RETURNED"})

		assert.Equal(t, http.StatusOK, rec.Code)
		var got domain.Loan
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.LoanStatusReturned, got.Status)
		env.circulation.AssertExpectations(t)
	})

	t.Run("Accepts Lowercase Status", func(t *testing.T) {
		env := newTestEnv()
		loan := &domain.Loan{ID: "loan-1", Status: domain.LoanStatusReturned}
		env.circulation.On("ReturnItem", mock.Anything, "loan-1").Return(loan, nil)

		rec := env.do(http.MethodPut, "/api/v1/loans/loan-1", map[string]string{"status": "returned"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Rejects Other Transitions", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodPut, "/api/v1/loans/loan-1", map[string]string{"status": "ISSUED"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "UNSUPPORTED_TRANSITION", errorCode(t, rec))
		env.circulation.AssertNotCalled(t, "ReturnItem", mock.Anything, mock.Anything)
	})

	t.Run("Already Returned", func(t *testing.T) {
		env := newTestEnv()
		env.circulation.On("ReturnItem", mock.Anything, "loan-1").Return(nil, domain.ErrAlreadyReturned)

		rec := env.do(http.MethodPut, "/api/v1/loans/loan-1", map[string]string{"status": "RETURNED"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "ALREADY_RETURNED", errorCode(t, rec))
	})

	t.Run("Loan Not Found", func(t *testing.T) {
		env := newTestEnv()
		env.circulation.On("ReturnItem", mock.Anything, "missing").
			Return(nil, &domain.NotFoundError{Resource: "loan", ID: "missing"})

		rec := env.do(http.MethodPut, "/api/v1/loans/missing", map[string]string{"status": "RETURNED"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLoanHandler_List(t *testing.T) {
	t.Run("Passes Filters Through", func(t *testing.T) {
		env := newTestEnv()
		loans := []domain.Loan{{ID: "loan-1", HolderID: "S1", Status: domain.LoanStatusIssued}}
		env.query.On("ListLoans", mock.Anything, domain.LoanFilter{
			HolderID: "S1",
			Status:   domain.LoanStatusIssued,
		}).Return(loans, nil)

		rec := env.do(http.MethodGet, "/api/v1/loans?holder_id=S1&status=issued", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got []domain.Loan
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 1)
		env.query.AssertExpectations(t)
	})

	t.Run("Empty Result Is An Empty Array", func(t *testing.T) {
		env := newTestEnv()
		env.query.On("ListLoans", mock.Anything, domain.LoanFilter{}).Return([]domain.Loan(nil), nil)

		rec := env.do(http.MethodGet, "/api/v1/loans", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("Invalid Status Filter", func(t *testing.T) {
		env := newTestEnv()
		env.query.On("ListLoans", mock.Anything, domain.LoanFilter{Status: "OVERDUE"}).
			Return(nil, &domain.ValidationError{Field: "status", Reason: "must be ISSUED or RETURNED"})

		rec := env.do(http.MethodGet, "/api/v1/loans?status=overdue", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(t, rec))
	})
}

func TestLoanHandler_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		env := newTestEnv()
		loan := &domain.Loan{ID: "loan-1", ItemID: testItemID, HolderID: "S1", Status: domain.LoanStatusIssued}
		env.query.On("GetLoan", mock.Anything, "loan-1").Return(loan, nil)

		rec := env.do(http.MethodGet, "/api/v1/loans/loan-1", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		env := newTestEnv()
		env.query.On("GetLoan", mock.Anything, "missing").
			Return(nil, &domain.NotFoundError{Resource: "loan", ID: "missing"})

		rec := env.do(http.MethodGet, "/api/v1/loans/missing", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
	})
}
