package db_models

import (
	"gorm.io/datatypes"
)

type BillingInterval string

const (
	IntervalDaily     BillingInterval = "daily"
	IntervalWeekly    BillingInterval = "weekly"
	IntervalMonthly   BillingInterval = "monthly"
	IntervalQuarterly BillingInterval = "quarterly"
	IntervalYearly    BillingInterval = "yearly"
)

// SubscriptionPlan is an immutable pricing/cadence definition. Price changes
// mean a new plan; existing subscriptions keep billing the plan they started on.
type SubscriptionPlan struct {
	BaseModel
	Name        string `gorm:"uniqueIndex"` // e.g., "pro_monthly"
	Description *string

	AmountMinor int64  // 999 = $9.99
	Currency    string `gorm:"size:3"` // "USD", "EUR"

	Interval      BillingInterval `gorm:"type:billing_interval"`
	IntervalCount int             `gorm:"default:1"` // e.g., every 2 weeks

	TrialDays        int  `gorm:"default:0"`
	MaxBillingCycles *int // nil = bill forever
	IsActive         bool `gorm:"default:true"`

	Features datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
