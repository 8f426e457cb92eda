package utils

import "time"

// Retry schedule for failed subscription charges: capped exponential backoff,
// delay(attempt) = min(base * 2^attempt, max).
const (
	baseRetryDelaySeconds int64 = 30 * 60      // 30 minutes
	maxRetryDelaySeconds  int64 = 24 * 60 * 60 // 24 hours
)

// RetryDelay returns the wait before the given attempt (0-based). Integer
// seconds with a saturating shift, so a huge attempt count cannot overflow
// past the cap.
func RetryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := baseRetryDelaySeconds
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= maxRetryDelaySeconds {
			delay = maxRetryDelaySeconds
			break
		}
	}
	return time.Duration(delay) * time.Second
}

// NextRetryAt is RetryDelay applied to a reference time, as stored on
// SubscriptionPayment.NextRetryAt.
func NextRetryAt(now time.Time, attempt int) time.Time {
	return now.Add(RetryDelay(attempt))
}
