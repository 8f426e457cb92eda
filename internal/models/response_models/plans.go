package response_models

import "github.com/google/uuid"

type SubscriptionPlanResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	AmountMinor      int64     `json:"amount_minor"`
	Currency         string    `json:"currency"`
	Interval         string    `json:"interval"`
	IntervalCount    int       `json:"interval_count"`
	TrialDays        int       `json:"trial_days"`
	MaxBillingCycles *int      `json:"max_billing_cycles,omitempty"`
	IsActive         bool      `json:"is_active"`
}

type PaymentInstrumentResponse struct {
	ID          uuid.UUID `json:"id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	Kind        string    `json:"kind"`
	LastFour    string    `json:"last_four,omitempty"`
	ExpiryMonth int       `json:"expiry_month,omitempty"`
	ExpiryYear  int       `json:"expiry_year,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsDefault   bool      `json:"is_default"`
}
