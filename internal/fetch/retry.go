package fetch

import "time"

// RetryPolicy controls how many times a request is attempted and how long to
// wait before each retry.
type RetryPolicy interface {
	MaxAttempts() int
	Delay(attempt int) time.Duration
}

// FlatRetry attempts a fixed number of times with no delay between attempts.
type FlatRetry struct {
	Attempts int
}

func (f FlatRetry) MaxAttempts() int {
	if f.Attempts < 1 {
		return 1
	}
	return f.Attempts
}

func (f FlatRetry) Delay(attempt int) time.Duration {
	return 0
}
