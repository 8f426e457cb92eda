package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"payflow/internal/models/db_models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextBillingDate_SimpleIntervals(t *testing.T) {
	from := date(2024, time.January, 15)

	assert.Equal(t, date(2024, time.January, 16), NextBillingDate(from, db_models.IntervalDaily, 1))
	assert.Equal(t, date(2024, time.January, 22), NextBillingDate(from, db_models.IntervalWeekly, 1))
	assert.Equal(t, date(2024, time.February, 15), NextBillingDate(from, db_models.IntervalMonthly, 1))
	assert.Equal(t, date(2024, time.April, 15), NextBillingDate(from, db_models.IntervalQuarterly, 1))
	assert.Equal(t, date(2025, time.January, 15), NextBillingDate(from, db_models.IntervalYearly, 1))
}

func TestNextBillingDate_IntervalCountMultiplies(t *testing.T) {
	from := date(2024, time.January, 1)

	assert.Equal(t, date(2024, time.January, 15), NextBillingDate(from, db_models.IntervalWeekly, 2))
	assert.Equal(t, date(2024, time.July, 1), NextBillingDate(from, db_models.IntervalMonthly, 6))
}

func TestNextBillingDate_MonthEndRollsForward(t *testing.T) {
	// Jan 31 + 1 month normalizes past the end of February.
	got := NextBillingDate(date(2024, time.January, 31), db_models.IntervalMonthly, 1)
	assert.Equal(t, date(2024, time.March, 2), got)

	// Non-leap year: Feb has 28 days, so the overflow is one day larger.
	got = NextBillingDate(date(2023, time.January, 31), db_models.IntervalMonthly, 1)
	assert.Equal(t, date(2023, time.March, 3), got)
}

func TestNextBillingDate_LeapDayAnniversary(t *testing.T) {
	got := NextBillingDate(date(2024, time.February, 29), db_models.IntervalYearly, 1)
	assert.Equal(t, date(2025, time.March, 1), got)
}

func TestNextBillingDate_ZeroCountDefaultsToOne(t *testing.T) {
	from := date(2024, time.May, 10)
	assert.Equal(t, date(2024, time.June, 10), NextBillingDate(from, db_models.IntervalMonthly, 0))
}

func TestNextBillingDate_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	from := time.Date(2024, time.March, 1, 3, 30, 0, 0, loc)

	got := NextBillingDate(from, db_models.IntervalDaily, 1)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, from.UTC().AddDate(0, 0, 1), got)
}
