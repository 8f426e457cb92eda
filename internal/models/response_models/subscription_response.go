package response_models

import "github.com/google/uuid"

type SubscriptionResponse struct {
	ID                 uuid.UUID `json:"id"`
	CustomerID         uuid.UUID `json:"customer_id"`
	PlanID             uuid.UUID `json:"plan_id"`
	InstrumentID       uuid.UUID `json:"instrument_id"`
	Status             string    `json:"status"`
	GatewayMandateRef  string    `json:"gateway_mandate_ref"`
	CurrentPeriodStart int64     `json:"current_period_start"`
	CurrentPeriodEnd   int64     `json:"current_period_end"`
	NextBillingDate    int64     `json:"next_billing_date"`
	TrialStart         *int64    `json:"trial_start,omitempty"`
	TrialEnd           *int64    `json:"trial_end,omitempty"`
	CancelledAt        *int64    `json:"cancelled_at,omitempty"`
	EndedAt            *int64    `json:"ended_at,omitempty"`
	CancelAtPeriodEnd  bool      `json:"cancel_at_period_end"`
	BillingCycleCount  int       `json:"billing_cycle_count"`
	FailedPaymentCount int       `json:"failed_payment_count"`
	LastPaymentAt      *int64    `json:"last_payment_at,omitempty"`
	LastPaymentAmount  *int64    `json:"last_payment_amount,omitempty"`
}
