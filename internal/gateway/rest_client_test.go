package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payflow/internal/infra"
)

func newTestClient(handler http.HandlerFunc) (SettlementClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewRESTClient(infra.GatewayConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
	return client, srv
}

func TestRESTClient_PurchaseSendsPayloadAndAuth(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(Result{Success: true, GatewayRef: "gw-9"})
	})
	defer srv.Close()

	result, err := client.Purchase(context.Background(), PaymentRequest{
		AmountMinor:     2500,
		Currency:        "USD",
		InstrumentToken: "tok_1",
		OrderRef:        "order-9",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "gw-9", result.GatewayRef)
	assert.NotEmpty(t, result.RawPayload)

	assert.Equal(t, "/v1/purchases", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, float64(2500), gotBody["amount"])
	assert.Equal(t, "order-9", gotBody["order_ref"])
}

func TestRESTClient_DeclineComesBackAsResult(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{Success: false, Message: "insufficient_funds"})
	})
	defer srv.Close()

	result, err := client.Purchase(context.Background(), PaymentRequest{AmountMinor: 100})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "insufficient_funds", result.Message)
}

func TestRESTClient_NonSuccessStatusIsAnError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})
	defer srv.Close()

	result, err := client.Purchase(context.Background(), PaymentRequest{AmountMinor: 100})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestRESTClient_CreateMandateParsesRef(t *testing.T) {
	var gotBody map[string]any
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"mandate_ref": "mandate-77"})
	})
	defer srv.Close()

	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	ref, err := client.CreateRecurringMandate(context.Background(), MandateRequest{
		PlanName:        "pro_monthly",
		AmountMinor:     999,
		Currency:        "USD",
		Interval:        "monthly",
		IntervalCount:   1,
		InstrumentToken: "tok_1",
		StartDate:       start,
	})

	require.NoError(t, err)
	assert.Equal(t, "mandate-77", ref)
	assert.Equal(t, "2024-07-01T00:00:00Z", gotBody["start_date"])
}

func TestRESTClient_CreateMandateMissingRefIsAnError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	})
	defer srv.Close()

	_, err := client.CreateRecurringMandate(context.Background(), MandateRequest{PlanName: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mandate_ref")
}

func TestRESTClient_CancelMandateUsesDelete(t *testing.T) {
	var gotMethod, gotPath string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	err := client.CancelRecurringMandate(context.Background(), "mandate-77")

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/v1/mandates/mandate-77", gotPath)
}
