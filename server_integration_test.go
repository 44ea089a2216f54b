package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func envelopeData(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad envelope: %v body=%s", err, resp.Body.String())
	}
	if !body.Success {
		t.Fatalf("success=false: %s", body.Message)
	}
	return body.Data
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("integration-test-secret")
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Login as the seeded admin
	loginBody, _ := json.Marshal(map[string]string{"username": "admin", "password": "admin123"})
	resp := performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(loginBody), "")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	token, _ := envelopeData(t, resp)["token"].(string)
	if token == "" {
		t.Fatal("empty token in login response")
	}

	// 2. Create an order
	orderBody, _ := json.Marshal(map[string]string{
		"orderNo":   fmt.Sprintf("ORD-IT-%d", os.Getpid()),
		"partyName": "Integration Traders",
		"quality":   "2/17 RFD",
	})
	resp = performRequest(r, http.MethodPost, "/api/orders", bytes.NewBuffer(orderBody), token)
	if resp.Code != 200 {
		t.Fatalf("create order failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	order, _ := envelopeData(t, resp)["order"].(map[string]any)
	orderID := int(order["id"].(float64))

	// 3. Two mill inputs sharing one mill+chalan key
	for _, mtr := range []string{"100", "50"} {
		inBody, _ := json.Marshal(map[string]any{
			"orderId":  orderID,
			"mill":     "Shree Balaji Mills",
			"chalanNo": "C100",
			"date":     "2026-01-05",
			"greyMtr":  mtr,
			"quality":  "2/17 RFD",
		})
		resp = performRequest(r, http.MethodPost, "/api/mill-inputs", bytes.NewBuffer(inBody), token)
		if resp.Code != 200 {
			t.Fatalf("create mill input failed status=%d body=%s", resp.Code, resp.Body.String())
		}
	}

	// 4. List them back
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/api/mill-inputs?orderId=%d", orderID), nil, token)
	if resp.Code != 200 {
		t.Fatalf("list mill inputs failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	inputs, _ := envelopeData(t, resp)["millInputs"].([]any)
	if len(inputs) != 2 {
		t.Fatalf("expected 2 mill inputs got %d", len(inputs))
	}

	// 5. Delete one and list again
	firstID := int(inputs[0].(map[string]any)["id"].(float64))
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/mill-inputs/%d", firstID), nil, token)
	if resp.Code != 200 {
		t.Fatalf("delete mill input failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/api/mill-inputs?orderId=%d", orderID), nil, token)
	inputs, _ = envelopeData(t, resp)["millInputs"].([]any)
	if len(inputs) != 1 {
		t.Fatalf("expected 1 mill input after delete got %d", len(inputs))
	}

	// 6. Lookup endpoints respond
	resp = performRequest(r, http.MethodGet, "/api/qualities", nil, token)
	if resp.Code != 200 {
		t.Fatalf("list qualities failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/mills", nil, token)
	if resp.Code != 200 {
		t.Fatalf("list mills failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 7. Unauthorized access to protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/api/orders", nil, "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized list orders got %d", unauth.Code)
	}

	// 8. Cleanup: deleting the order removes its remaining records
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/orders/%d", orderID), nil, token)
	if resp.Code != 200 {
		t.Fatalf("delete order failed status=%d body=%s", resp.Code, resp.Body.String())
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}
