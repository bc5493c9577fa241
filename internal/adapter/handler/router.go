package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// HealthCheck reports one dependency; a non-nil error marks the service unhealthy.
type HealthCheck func(ctx context.Context) error

type RouterConfig struct {
	CORSOrigin     string
	Tokens         TokenParser
	Payments       *PaymentHandler
	Tickets        *TicketHandler
	Staff          *StaffHandler
	Metrics        http.Handler
	HealthChecks   map[string]HealthCheck
	PaymentSandbox http.HandlerFunc
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	r.HandleFunc("/health", healthHandler(cfg.HealthChecks)).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/create-order", cfg.Payments.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/verify", cfg.Payments.Verify).Methods(http.MethodPost)
	if cfg.PaymentSandbox != nil {
		api.HandleFunc("/test/sign", cfg.PaymentSandbox).Methods(http.MethodPost)
	}

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/login", cfg.Staff.Login).Methods(http.MethodPost)

	protected := admin.NewRoute().Subrouter()
	protected.Use(Authenticate(cfg.Tokens))

	protected.HandleFunc("/staff", cfg.Staff.List).Methods(http.MethodGet)
	protected.HandleFunc("/tickets", cfg.Tickets.List).Methods(http.MethodGet)
	protected.HandleFunc("/tickets/count", cfg.Tickets.Count).Methods(http.MethodGet)
	protected.HandleFunc("/tickets/redeem/{id}", cfg.Tickets.Redeem).Methods(http.MethodPut)
	protected.HandleFunc("/tickets/{id}", cfg.Tickets.Get).Methods(http.MethodGet)
	protected.HandleFunc("/tickets/{id}", cfg.Tickets.UpdateContact).Methods(http.MethodPut)

	adminOnly := protected.NewRoute().Subrouter()
	adminOnly.Use(RequireAdmin)

	adminOnly.HandleFunc("/register", cfg.Staff.Register).Methods(http.MethodPost)
	adminOnly.HandleFunc("/update/{id}", cfg.Staff.Update).Methods(http.MethodPut)
	adminOnly.HandleFunc("/delete/{id}", cfg.Staff.Delete).Methods(http.MethodDelete)
	adminOnly.HandleFunc("/tickets/{id}", cfg.Tickets.Delete).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Message: "route not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Success: false, Message: "method not allowed"})
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.CORSOrigin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(cors(r))
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failures := map[string]string{}
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				failures[name] = err.Error()
			}
		}

		if len(failures) > 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unhealthy", "errors": failures})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
