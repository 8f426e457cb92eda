package db_models

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRetrying   PaymentStatus = "retrying"
)

// SubscriptionPayment records one billing attempt of one cycle. RETRYING always
// carries a NextRetryAt; a terminally FAILED payment has it cleared.
type SubscriptionPayment struct {
	BaseModel
	SubscriptionID uuid.UUID  `gorm:"index"`
	TransactionID  *uuid.UUID `gorm:"index"` // set once the ledger has been driven

	AmountMinor int64
	Currency    string `gorm:"size:3"`

	BillingDate int64 `gorm:"not null"` // scheduled due date, unix seconds
	CycleNumber int   `gorm:"not null"`

	Status           PaymentStatus `gorm:"type:payment_status;index"`
	RetryCount       int           `gorm:"default:0"`
	MaxRetryAttempts int           `gorm:"default:3"`
	NextRetryAt      *int64        `gorm:"index"`

	FailureReason *string
	ProcessedAt   *int64

	Subscription Subscription `gorm:"foreignKey:SubscriptionID"`
	Transaction  *Transaction `gorm:"foreignKey:TransactionID"`
}

// RetryBudgetLeft reports whether another attempt may be scheduled.
func (p *SubscriptionPayment) RetryBudgetLeft() bool {
	return p.RetryCount < p.MaxRetryAttempts
}
