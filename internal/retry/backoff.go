package retry

import "time"

// ExponentialBackoff returns the delay before the given retry attempt,
// doubling from base each time: base * 2^attempt.
func ExponentialBackoff(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return base * (1 << attempt)
}
