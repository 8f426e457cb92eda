package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryDelay_DoublesFromBase(t *testing.T) {
	assert.Equal(t, 30*time.Minute, RetryDelay(0))
	assert.Equal(t, 1*time.Hour, RetryDelay(1))
	assert.Equal(t, 2*time.Hour, RetryDelay(2))
	assert.Equal(t, 4*time.Hour, RetryDelay(3))
}

func TestRetryDelay_CapsAtOneDay(t *testing.T) {
	assert.Equal(t, 24*time.Hour, RetryDelay(6))
	assert.Equal(t, 24*time.Hour, RetryDelay(10))
}

func TestRetryDelay_SaturatesOnHugeAttempt(t *testing.T) {
	// Doubling 30min a thousand times would overflow int64; the loop must
	// stop at the cap instead.
	assert.Equal(t, 24*time.Hour, RetryDelay(1000))
}

func TestRetryDelay_NegativeAttemptTreatedAsFirst(t *testing.T) {
	assert.Equal(t, 30*time.Minute, RetryDelay(-5))
}

func TestNextRetryAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(30*time.Minute), NextRetryAt(now, 0))
	assert.Equal(t, now.Add(2*time.Hour), NextRetryAt(now, 2))
	assert.Equal(t, now.Add(24*time.Hour), NextRetryAt(now, 9))
}
