package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"payflow/internal/infra"
)

// restClient speaks the settlement provider's JSON API. No retries live here:
// replaying a charge without an idempotency scope risks double-charging, so
// retries belong to the ledger and the billing engine.
type restClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRESTClient(cfg infra.GatewayConfig) SettlementClient {
	return &restClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type paymentPayload struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Instrument  string `json:"instrument"`
	OrderRef    string `json:"order_ref"`
	Description string `json:"description,omitempty"`
}

type referencePayload struct {
	TransactionRef string `json:"transaction_ref"`
	Amount         int64  `json:"amount,omitempty"`
	Instrument     string `json:"instrument,omitempty"`
}

type mandatePayload struct {
	PlanName         string `json:"plan_name"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	Interval         string `json:"interval"`
	IntervalCount    int    `json:"interval_count"`
	Instrument       string `json:"instrument"`
	StartDate        string `json:"start_date"`
	TotalOccurrences *int   `json:"total_occurrences,omitempty"`
}

type mandateResponse struct {
	MandateRef string `json:"mandate_ref"`
}

func (c *restClient) Purchase(ctx context.Context, req PaymentRequest) (*Result, error) {
	return c.postPayment(ctx, "/v1/purchases", req)
}

func (c *restClient) Authorize(ctx context.Context, req PaymentRequest) (*Result, error) {
	return c.postPayment(ctx, "/v1/authorizations", req)
}

func (c *restClient) Capture(ctx context.Context, txnRef string, amountMinor int64) (*Result, error) {
	return c.postResult(ctx, "/v1/captures", referencePayload{
		TransactionRef: txnRef,
		Amount:         amountMinor,
	})
}

func (c *restClient) Refund(ctx context.Context, txnRef string, amountMinor int64, instrumentHint string) (*Result, error) {
	return c.postResult(ctx, "/v1/refunds", referencePayload{
		TransactionRef: txnRef,
		Amount:         amountMinor,
		Instrument:     instrumentHint,
	})
}

func (c *restClient) Void(ctx context.Context, txnRef string) (*Result, error) {
	return c.postResult(ctx, "/v1/voids", referencePayload{
		TransactionRef: txnRef,
	})
}

func (c *restClient) CreateRecurringMandate(ctx context.Context, req MandateRequest) (string, error) {
	body, err := c.post(ctx, "/v1/mandates", mandatePayload{
		PlanName:         req.PlanName,
		Amount:           req.AmountMinor,
		Currency:         req.Currency,
		Interval:         req.Interval,
		IntervalCount:    req.IntervalCount,
		Instrument:       req.InstrumentToken,
		StartDate:        req.StartDate.UTC().Format(time.RFC3339),
		TotalOccurrences: req.TotalOccurrences,
	})
	if err != nil {
		return "", err
	}

	var resp mandateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode mandate response: %w", err)
	}
	if resp.MandateRef == "" {
		return "", fmt.Errorf("mandate response missing mandate_ref")
	}
	return resp.MandateRef, nil
}

func (c *restClient) CancelRecurringMandate(ctx context.Context, mandateRef string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/v1/mandates/"+mandateRef, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cancel mandate %s: status %d: %s", mandateRef, resp.StatusCode, body)
	}
	return nil
}

func (c *restClient) postPayment(ctx context.Context, path string, req PaymentRequest) (*Result, error) {
	return c.postResult(ctx, path, paymentPayload{
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Instrument:  req.InstrumentToken,
		OrderRef:    req.OrderRef,
		Description: req.Description,
	})
}

func (c *restClient) postResult(ctx context.Context, path string, payload any) (*Result, error) {
	body, err := c.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	result.RawPayload = body
	return &result, nil
}

func (c *restClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Declines come back 200 with success=false; anything else is a provider fault.
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway %s: status %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}
