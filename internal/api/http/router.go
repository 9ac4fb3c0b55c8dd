package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter assembles the HTTP surface. Every /api/v1 route sits behind
// the shared-secret check; /healthz does not.
func NewRouter(items *ItemHandler, loans *LoanHandler, db Pinger, apiKey string) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(APIKeyMiddleware(apiKey))

	api.HandleFunc("/items", items.List).Methods(http.MethodGet)
	api.HandleFunc("/items", items.Create).Methods(http.MethodPost)
	api.HandleFunc("/items/available", items.ListAvailable).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", items.Get).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", items.Update).Methods(http.MethodPut)
	api.HandleFunc("/items/{id}", items.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/items/{id}/repair", items.Repair).Methods(http.MethodPost)

	api.HandleFunc("/loans", loans.List).Methods(http.MethodGet)
	api.HandleFunc("/loans", loans.Create).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}", loans.Get).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", loans.Update).Methods(http.MethodPut)

	return r
}
