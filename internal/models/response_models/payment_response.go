package response_models

import "github.com/google/uuid"

// PaymentResponse is what every mutating ledger call returns: a description of
// success, decline, or duplicate replay. Declines are responses, not errors.
type PaymentResponse struct {
	TransactionID       uuid.UUID  `json:"transaction_id"`
	MerchantReference   string     `json:"merchant_reference"`
	GatewayReference    *string    `json:"gateway_reference,omitempty"`
	ParentTransactionID *uuid.UUID `json:"parent_transaction_id,omitempty"`
	Type                string     `json:"type"`
	Status              string     `json:"status"`
	AmountMinor         int64      `json:"amount_minor"`
	RefundedAmountMinor int64      `json:"refunded_amount_minor"`
	Currency            string     `json:"currency"`
	Success             bool       `json:"success"`
	Duplicate           bool       `json:"duplicate"` // echoed from a prior call with the same key
	Message             string     `json:"message,omitempty"`
	ProcessedAt         *int64     `json:"processed_at,omitempty"`
}
