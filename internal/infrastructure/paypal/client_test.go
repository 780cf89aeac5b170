package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func testServer(t *testing.T, orderHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	mux.HandleFunc("/v2/checkout/orders", orderHandler)
	mux.HandleFunc("/v2/checkout/orders/", orderHandler)
	return httptest.NewServer(mux)
}

func TestCreateOrder(t *testing.T) {
	var gotBody map[string]any
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			http.Error(w, "no token", http.StatusUnauthorized)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "PP-123",
			"status": "CREATED",
			"links": []map[string]string{
				{"rel": "approve", "href": "https://paypal.test/approve"},
			},
		})
	})
	defer srv.Close()

	c := New("client", "secret", srv.URL)
	res, err := c.CreateOrder(context.Background(), 42, decimal.RequireFromString("45.5"), "USD")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if res.ProviderPaymentID != "PP-123" || res.Status != "CREATED" {
		t.Errorf("result = %+v", res)
	}
	if len(res.Links) != 1 || res.Links[0].Rel != "approve" {
		t.Errorf("links = %+v", res.Links)
	}

	units := gotBody["purchase_units"].([]any)
	amount := units[0].(map[string]any)["amount"].(map[string]any)
	if amount["value"] != "45.50" {
		t.Errorf("amount value = %v, want 45.50 (two decimal places)", amount["value"])
	}
	if amount["currency_code"] != "USD" {
		t.Errorf("currency = %v", amount["currency_code"])
	}
}

func TestCaptureOrderStatusFallback(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]string{"status": "COMPLETED"},
		})
	})
	defer srv.Close()

	c := New("client", "secret", srv.URL)
	res, err := c.CaptureOrder(context.Background(), "PP-123")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if res.Status != "COMPLETED" {
		t.Errorf("status = %q, want COMPLETED (nested fallback)", res.Status)
	}
}

func TestErrorsSurfaceBody(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"name":"UNPROCESSABLE_ENTITY"}`, http.StatusUnprocessableEntity)
	})
	defer srv.Close()

	c := New("client", "secret", srv.URL)
	if _, err := c.CreateOrder(context.Background(), 1, decimal.RequireFromString("1"), "USD"); err == nil {
		t.Fatal("non-2xx response did not error")
	}
}
