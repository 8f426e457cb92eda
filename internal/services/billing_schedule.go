package services

import (
	"time"

	"payflow/internal/models/db_models"
)

// NextBillingDate advances a billing anchor by interval x count using calendar
// rules: overflow rolls into the next month the way time.AddDate normalizes
// (Jan 31 + 1 month lands in early March when February is shorter, Feb 29 + 1
// year lands on Mar 1). All schedule math runs in UTC.
func NextBillingDate(from time.Time, interval db_models.BillingInterval, count int) time.Time {
	if count <= 0 {
		count = 1
	}

	from = from.UTC()
	switch interval {
	case db_models.IntervalDaily:
		return from.AddDate(0, 0, count)
	case db_models.IntervalWeekly:
		return from.AddDate(0, 0, 7*count)
	case db_models.IntervalMonthly:
		return from.AddDate(0, count, 0)
	case db_models.IntervalQuarterly:
		return from.AddDate(0, 3*count, 0)
	case db_models.IntervalYearly:
		return from.AddDate(count, 0, 0)
	default:
		return from.AddDate(0, count, 0)
	}
}

// periodBounds computes one billing period starting at a given anchor.
func periodBounds(start time.Time, plan *db_models.SubscriptionPlan) (int64, int64) {
	end := NextBillingDate(start, plan.Interval, plan.IntervalCount)
	return start.Unix(), end.Unix()
}
