package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusTrialing  SubscriptionStatus = "trialing"
	SubStatusActive    SubscriptionStatus = "active"
	SubStatusPastDue   SubscriptionStatus = "past_due"
	SubStatusCancelled SubscriptionStatus = "cancelled"
	SubStatusExpired   SubscriptionStatus = "expired"
)

type Subscription struct {
	BaseModel
	CustomerID   uuid.UUID `gorm:"index"`
	PlanID       uuid.UUID `gorm:"index"`
	InstrumentID uuid.UUID `gorm:"index"`

	Status SubscriptionStatus `gorm:"type:subscription_status;index"`

	// Recurring registration on the gateway side backing this subscription.
	GatewayMandateRef string `gorm:"uniqueIndex"`

	// Period boundaries and the due date, unix seconds. NextBillingDate is
	// never before CurrentPeriodStart.
	CurrentPeriodStart int64 `gorm:"not null"`
	CurrentPeriodEnd   int64 `gorm:"not null"`
	NextBillingDate    int64 `gorm:"not null;index"`

	TrialStart *int64
	TrialEnd   *int64

	CancelledAt       *int64
	EndedAt           *int64
	CancelAtPeriodEnd bool `gorm:"default:false"`

	BillingCycleCount  int `gorm:"default:0"`
	FailedPaymentCount int `gorm:"default:0"` // resets to 0 on a successful charge

	LastPaymentAt     *int64
	LastPaymentAmount *int64

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Plan       SubscriptionPlan  `gorm:"foreignKey:PlanID"`
	Instrument PaymentInstrument `gorm:"foreignKey:InstrumentID"`
}

// Billable reports whether the due sweep should pick this subscription up.
func (s *Subscription) Billable() bool {
	return s.Status == SubStatusActive || s.Status == SubStatusTrialing
}
