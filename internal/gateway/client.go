package gateway

import (
	"context"
	"encoding/json"
	"time"
)

// Result is the normalized outcome of one settlement-network call. A decline
// is a Result with Success=false, not an error; errors are reserved for
// transport/provider faults.
type Result struct {
	Success    bool            `json:"success"`
	GatewayRef string          `json:"gateway_ref,omitempty"`
	AuthCode   string          `json:"auth_code,omitempty"`
	Message    string          `json:"message,omitempty"`
	RawPayload json.RawMessage `json:"raw_payload,omitempty"`
}

// PaymentRequest carries everything the network needs for a purchase or an
// authorization hold.
type PaymentRequest struct {
	AmountMinor     int64
	Currency        string
	InstrumentToken string
	OrderRef        string
	Description     string
}

// MandateRequest registers a recurring-billing agreement on the gateway side.
type MandateRequest struct {
	PlanName         string
	AmountMinor      int64
	Currency         string
	Interval         string
	IntervalCount    int
	InstrumentToken  string
	StartDate        time.Time
	TotalOccurrences *int // nil = open-ended
}

// SettlementClient is the narrow contract of the external settlement network.
type SettlementClient interface {
	Purchase(ctx context.Context, req PaymentRequest) (*Result, error)
	Authorize(ctx context.Context, req PaymentRequest) (*Result, error)
	Capture(ctx context.Context, txnRef string, amountMinor int64) (*Result, error)
	Refund(ctx context.Context, txnRef string, amountMinor int64, instrumentHint string) (*Result, error)
	Void(ctx context.Context, txnRef string) (*Result, error)

	CreateRecurringMandate(ctx context.Context, req MandateRequest) (string, error)
	CancelRecurringMandate(ctx context.Context, mandateRef string) error
}
