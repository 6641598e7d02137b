package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bankledger/pkg/ledger"
	memorymetrics "bankledger/pkg/metrics/memory"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	collector := memorymetrics.NewCollector()
	l, err := ledger.New(ledger.Config{Metrics: collector})
	if err != nil {
		t.Fatalf("Failed to create ledger: %v", err)
	}

	return NewServer(l, collector, nil, DefaultServerConfig())
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response
}

func TestServer_Health(t *testing.T) {
	s := setupTestServer(t)

	w := do(t, s, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	response := decode(t, w)
	if response["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", response["status"])
	}
}

func TestServer_CreateAccount(t *testing.T) {
	s := setupTestServer(t)

	w := do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "A1", "type": "checking"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}

	response := decode(t, w)
	if response["id"] != "A1" || response["type"] != "checking" {
		t.Errorf("Unexpected response: %v", response)
	}
}

func TestServer_CreateAccountBadRequests(t *testing.T) {
	s := setupTestServer(t)

	w := do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "", "type": "checking"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Empty id: expected 400, got %d", w.Code)
	}

	w = do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "A1", "type": "offshore"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Bad type: expected 400, got %d", w.Code)
	}
}

func TestServer_DepositWithdrawBalance(t *testing.T) {
	s := setupTestServer(t)

	do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "A1", "type": "checking"})

	w := do(t, s, http.MethodPost, "/accounts/A1/deposit", map[string]float64{"amount": 100})
	if w.Code != http.StatusOK {
		t.Fatalf("Deposit: expected 200, got %d", w.Code)
	}
	if response := decode(t, w); response["balance"].(float64) != 100 {
		t.Errorf("Expected balance 100, got %v", response["balance"])
	}

	// Insufficient funds maps to 409
	w = do(t, s, http.MethodPost, "/accounts/A1/withdraw", map[string]float64{"amount": 150})
	if w.Code != http.StatusConflict {
		t.Errorf("Overdraw: expected 409, got %d", w.Code)
	}

	w = do(t, s, http.MethodPost, "/accounts/A1/withdraw", map[string]float64{"amount": 50})
	if w.Code != http.StatusOK {
		t.Fatalf("Withdraw: expected 200, got %d", w.Code)
	}

	w = do(t, s, http.MethodGet, "/accounts/A1/balance", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Balance: expected 200, got %d", w.Code)
	}
	if response := decode(t, w); response["balance"].(float64) != 50 {
		t.Errorf("Expected balance 50, got %v", response["balance"])
	}
}

func TestServer_MissingAccountIs404(t *testing.T) {
	s := setupTestServer(t)

	paths := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/accounts/ghost", nil},
		{http.MethodGet, "/accounts/ghost/balance", nil},
		{http.MethodGet, "/accounts/ghost/transactions", nil},
		{http.MethodPost, "/accounts/ghost/deposit", map[string]float64{"amount": 1}},
		{http.MethodPost, "/accounts/ghost/withdraw", map[string]float64{"amount": 1}},
		{http.MethodPost, "/accounts/ghost/activate", nil},
		{http.MethodPost, "/accounts/ghost/deactivate", nil},
	}

	for _, p := range paths {
		w := do(t, s, p.method, p.path, p.body)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s: expected 404, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestServer_Transfer(t *testing.T) {
	s := setupTestServer(t)

	do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "A1", "type": "savings"})
	do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "A2", "type": "savings"})
	do(t, s, http.MethodPost, "/accounts/A1/deposit", map[string]float64{"amount": 100})

	w := do(t, s, http.MethodPost, "/transfer", map[string]interface{}{
		"from": "A1", "to": "A2", "amount": 30,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Transfer: expected 200, got %d", w.Code)
	}

	w = do(t, s, http.MethodGet, "/accounts/A2/balance", nil)
	if response := decode(t, w); response["balance"].(float64) != 30 {
		t.Errorf("Expected destination balance 30, got %v", response["balance"])
	}

	// Missing source fails without touching anything
	w = do(t, s, http.MethodPost, "/transfer", map[string]interface{}{
		"from": "ghost", "to": "A2", "amount": 5,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Missing source: expected 404, got %d", w.Code)
	}
}

func TestServer_ActivateDeactivate(t *testing.T) {
	s := setupTestServer(t)

	do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "A1", "type": "credit"})

	w := do(t, s, http.MethodPost, "/accounts/A1/deactivate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Deactivate: expected 200, got %d", w.Code)
	}

	// Withdraw on an inactive account maps to 409
	do(t, s, http.MethodPost, "/accounts/A1/deposit", map[string]float64{"amount": 10})
	w = do(t, s, http.MethodPost, "/accounts/A1/withdraw", map[string]float64{"amount": 1})
	if w.Code != http.StatusConflict {
		t.Errorf("Inactive withdraw: expected 409, got %d", w.Code)
	}

	w = do(t, s, http.MethodGet, "/accounts/A1", nil)
	if response := decode(t, w); response["active"] != false {
		t.Errorf("Expected account inactive, got %v", response["active"])
	}

	w = do(t, s, http.MethodPost, "/accounts/A1/activate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Activate: expected 200, got %d", w.Code)
	}
}

func TestServer_ListAccountsAndTransactions(t *testing.T) {
	s := setupTestServer(t)

	do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "B1", "type": "checking"})
	do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "A1", "type": "checking"})
	do(t, s, http.MethodPost, "/accounts/A1/deposit", map[string]float64{"amount": 42})

	w := do(t, s, http.MethodGet, "/accounts", nil)
	response := decode(t, w)
	accounts := response["accounts"].([]interface{})
	if len(accounts) != 2 || accounts[0] != "A1" || accounts[1] != "B1" {
		t.Errorf("Expected sorted [A1 B1], got %v", accounts)
	}

	w = do(t, s, http.MethodGet, "/accounts/A1/transactions", nil)
	response = decode(t, w)
	transactions := response["transactions"].([]interface{})
	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	record := transactions[0].(map[string]interface{})
	if record["kind"] != "deposit" || record["amount"].(float64) != 42 {
		t.Errorf("Unexpected transaction record: %v", record)
	}
}

func TestServer_MetricsJSON(t *testing.T) {
	s := setupTestServer(t)

	do(t, s, http.MethodPost, "/accounts", map[string]string{"id": "A1", "type": "checking"})

	w := do(t, s, http.MethodGet, "/metrics/json", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	response := decode(t, w)
	operations, ok := response["operations"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected operations map, got %v", response)
	}
	if _, ok := operations["create_account"]; !ok {
		t.Errorf("Expected create_account metrics, got %v", operations)
	}
}
