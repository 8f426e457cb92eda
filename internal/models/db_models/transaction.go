package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionType string

const (
	TxnTypePurchase      TransactionType = "purchase"
	TxnTypeAuthorization TransactionType = "authorization"
	TxnTypeCapture       TransactionType = "capture"
	TxnTypeRefund        TransactionType = "refund"
	TxnTypeVoid          TransactionType = "void"
)

type TransactionStatus string

const (
	TxnStatusPending           TransactionStatus = "pending"
	TxnStatusProcessing        TransactionStatus = "processing"
	TxnStatusCompleted         TransactionStatus = "completed"
	TxnStatusFailed            TransactionStatus = "failed"
	TxnStatusPartiallyRefunded TransactionStatus = "partially_refunded"
	TxnStatusRefunded          TransactionStatus = "refunded"
	TxnStatusCancelled         TransactionStatus = "cancelled"
)

// IsTerminal reports whether the gateway outcome for this transaction is settled.
// PartiallyRefunded counts as settled for idempotency replay but still accepts
// further refunds up to the remaining balance.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TxnStatusCompleted, TxnStatusFailed, TxnStatusPartiallyRefunded,
		TxnStatusRefunded, TxnStatusCancelled:
		return true
	}
	return false
}

type InstrumentKind string

const (
	InstrumentCard        InstrumentKind = "card"
	InstrumentBankAccount InstrumentKind = "bank_account"
	InstrumentWallet      InstrumentKind = "wallet"
)

type Transaction struct {
	BaseModel
	MerchantReference   string            `gorm:"uniqueIndex;size:64"`
	GatewayReference    *string           `gorm:"index"`
	ParentTransactionID *uuid.UUID        `gorm:"index"` // capture/refund/void point at their source
	Type                TransactionType   `gorm:"type:transaction_type;index"`
	Status              TransactionStatus `gorm:"type:transaction_status;index"`
	InstrumentKind      InstrumentKind    `gorm:"type:instrument_kind"`

	AmountMinor         int64  // e.g., 10000 = $100.00
	RefundedAmountMinor int64  `gorm:"default:0"`
	CapturedAmountMinor int64  `gorm:"default:0"` // settled against this authorization
	Currency            string `gorm:"size:3"`    // ISO 4217

	// Unique at the store level so a read-then-write race on the same key
	// cannot produce two gateway calls.
	IdempotencyKey string `gorm:"uniqueIndex;size:128"`

	GatewayPayload datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	FailureReason  *string
	ProcessedAt    *int64

	Parent *Transaction `gorm:"foreignKey:ParentTransactionID"`
}

// RemainingRefundable is the amount a further refund may still claim.
func (t *Transaction) RemainingRefundable() int64 {
	return t.AmountMinor - t.RefundedAmountMinor
}
