package output

import "time"

// RateLimiter interface - Output port
// Sliding-window admission control keyed by user id. Two independent
// instances exist: a generic per-message limiter and a review limiter.
// State is in-memory and resets on restart by design.
type RateLimiter interface {
	// Allow records and admits the action when the user is under the cap.
	// When denied, retry is the time until the oldest counted action falls
	// out of the window; it is zero when allowed.
	Allow(userID int64) (allowed bool, retry time.Duration)
}
