package request_models

// CreatePaymentRequest starts a purchase or an authorization hold.
type CreatePaymentRequest struct {
	IdempotencyKey    string `json:"idempotency_key" binding:"required,max=128"`
	MerchantReference string `json:"merchant_reference" binding:"required,max=64"`
	AmountMinor       int64  `json:"amount_minor" binding:"required,gt=0"`
	Currency          string `json:"currency" binding:"required,len=3"`
	InstrumentToken   string `json:"instrument_token" binding:"required"`
	InstrumentKind    string `json:"instrument_kind" binding:"required,oneof=card bank_account wallet"`
	Description       string `json:"description"`
}

// CapturePaymentRequest settles a completed authorization. A nil amount
// captures the full authorized amount.
type CapturePaymentRequest struct {
	IdempotencyKey string `json:"idempotency_key" binding:"required,max=128"`
	AmountMinor    *int64 `json:"amount_minor" binding:"omitempty,gt=0"`
}

// RefundPaymentRequest returns funds from a purchase or capture. A nil amount
// refunds whatever remains.
type RefundPaymentRequest struct {
	IdempotencyKey string `json:"idempotency_key" binding:"required,max=128"`
	AmountMinor    *int64 `json:"amount_minor" binding:"omitempty,gt=0"`
}

// CancelPaymentRequest voids an uncaptured authorization.
type CancelPaymentRequest struct {
	IdempotencyKey string `json:"idempotency_key" binding:"required,max=128"`
}
