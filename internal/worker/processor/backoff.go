package processor

import "time"

// maxBackoffShift caps the exponent so the delay can't overflow or grow
// past anything a human would call a retry window.
const maxBackoffShift = 10

// BackoffDelay returns base * 2^retryCount.
func BackoffDelay(base time.Duration, retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	if retryCount > maxBackoffShift {
		retryCount = maxBackoffShift
	}
	return base << uint(retryCount)
}
