// Package api exposes the ledger over HTTP for inspection and operation.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bankledger/pkg/ledger"
	"bankledger/pkg/logging"
	"bankledger/pkg/metrics"
)

// Server provides HTTP endpoints for ledger operations and monitoring.
type Server struct {
	ledger  *ledger.Ledger
	metrics metrics.Collector
	logger  *logging.Logger
	server  *http.Server
	config  ServerConfig
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	// Address to listen on (e.g., ":8080")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration
}

// DefaultServerConfig returns a default configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// NewServer creates an API server over the given ledger.
func NewServer(l *ledger.Ledger, collector metrics.Collector, logger *logging.Logger, config ServerConfig) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}

	s := &Server{
		ledger:  l,
		metrics: collector,
		logger:  logger.Named("api"),
		config:  config,
	}

	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/metrics/json", s.handleMetricsJSON).Methods(http.MethodGet)

	// Accounts
	r.HandleFunc("/accounts", s.handleCreateAccount).Methods(http.MethodPost)
	r.HandleFunc("/accounts", s.handleListAccounts).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}", s.handleGetAccount).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/deposit", s.handleDeposit).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/withdraw", s.handleWithdraw).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/balance", s.handleBalance).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/transactions", s.handleTransactions).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/activate", s.handleActivate).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/deactivate", s.handleDeactivate).Methods(http.MethodPost)

	// Transfers
	r.HandleFunc("/transfer", s.handleTransfer).Methods(http.MethodPost)

	s.server = &http.Server{
		Addr:         config.Address,
		Handler:      r,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Start runs the HTTP server and blocks until Stop is called or the
// listener fails.
func (s *Server) Start() error {
	s.logger.Info("api server listening", zap.String("address", s.config.Address))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("api server stopping")
	return s.server.Shutdown(ctx)
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

type createAccountRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

type transferRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// handleHealth returns a simple health check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleMetrics returns metrics in Prometheus text format when the
// collector supports it.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if pm, ok := s.metrics.(interface{ Handler() http.Handler }); ok {
		pm.Handler().ServeHTTP(w, r)
		return
	}
	http.Error(w, "metrics collector does not support Prometheus format", http.StatusNotImplemented)
}

// handleMetricsJSON returns a JSON snapshot when the collector supports it.
func (s *Server) handleMetricsJSON(w http.ResponseWriter, r *http.Request) {
	if mc, ok := s.metrics.(interface{ SnapshotJSON() interface{} }); ok {
		writeJSON(w, http.StatusOK, mc.SnapshotJSON())
		return
	}
	writeError(w, http.StatusNotImplemented, "metrics collector does not support JSON snapshot")
}

// handleCreateAccount creates a new account.
func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "account id is required")
		return
	}

	accountType, err := ledger.ParseAccountType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, "account type must be checking, savings, or credit")
		return
	}

	if err := s.ledger.CreateAccount(req.ID, accountType); err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":   req.ID,
		"type": accountType.String(),
	})
}

// handleListAccounts returns all account identifiers.
func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": s.ledger.Accounts(),
	})
}

// handleGetAccount returns an account summary.
func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	balance, err := s.ledger.Balance(id)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	accountType, err := s.ledger.AccountType(id)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	active, err := s.ledger.Active(id)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"type":    accountType.String(),
		"balance": balance,
		"active":  active,
	})
}

// handleDeposit adds funds to an account.
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := s.ledger.Deposit(id, req.Amount); err != nil {
		s.writeLedgerError(w, err)
		return
	}
	s.writeBalance(w, id)
}

// handleWithdraw removes funds from an account.
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := s.ledger.Withdraw(id, req.Amount); err != nil {
		s.writeLedgerError(w, err)
		return
	}
	s.writeBalance(w, id)
}

// handleBalance returns the account balance.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	s.writeBalance(w, mux.Vars(r)["id"])
}

// handleTransactions returns the account history in insertion order.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	transactions, err := s.ledger.Transactions(id)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":           id,
		"transactions": transactions,
	})
}

// handleActivate enables deposits and withdrawals on an account.
func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.ledger.Activate(id); err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "active": true})
}

// handleDeactivate disables deposits and withdrawals on an account.
func (s *Server) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.ledger.Deactivate(id); err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "active": false})
}

// handleTransfer moves funds between two accounts.
func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.From == "" || req.To == "" {
		writeError(w, http.StatusBadRequest, "from and to account ids are required")
		return
	}

	if err := s.ledger.Transfer(req.From, req.To, req.Amount); err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"from":   req.From,
		"to":     req.To,
		"amount": req.Amount,
	})
}

// writeBalance writes the current balance of id, or the mapped error.
func (s *Server) writeBalance(w http.ResponseWriter, id string) {
	balance, err := s.ledger.Balance(id)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"balance": balance,
	})
}

// writeLedgerError maps domain errors onto HTTP status codes.
func (s *Server) writeLedgerError(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), err.Error())
}

// statusForError maps ledger errors to HTTP status codes: missing accounts
// are 404, business-rule conflicts are 409, bad input is 400.
func statusForError(err error) int {
	switch {
	case ledger.IsNotFound(err):
		return http.StatusNotFound
	case ledger.IsInactive(err), ledger.IsInsufficientFunds(err):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrAccountExists), errors.Is(err, ledger.ErrSameAccount):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidAccountType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}
