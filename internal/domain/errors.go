package domain

import (
	"errors"
	"fmt"
	"time"
)

// Core error taxonomy. Callers match with errors.Is; everything except
// ErrPersistence is recoverable and mapped to a user-facing reply.

var (
	// ErrCardNotFound indicates an operation on a card id absent from the store
	ErrCardNotFound = errors.New("card not found")

	// ErrDuplicateReview indicates the user already reviewed this card
	ErrDuplicateReview = errors.New("user has already reviewed this card")

	// ErrInvalidRating indicates a review rating outside the 1..5 range
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidCategory indicates a category outside the closed set
	ErrInvalidCategory = errors.New("invalid category")

	// ErrRateLimited indicates the user exhausted a rate-limit window
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrPersistence indicates the catalog file could not be written.
	// The triggering mutation is rolled back; the process keeps serving.
	ErrPersistence = errors.New("catalog persistence failed")

	// ErrSessionExpired indicates the admin workflow session timed out
	ErrSessionExpired = errors.New("workflow session expired")

	// ErrNoActiveSession indicates workflow input arrived with no session open
	ErrNoActiveSession = errors.New("no active workflow session")
)

// RateLimitError struct - Carries the computed retry delay alongside
// ErrRateLimited so callers can tell the user when to come back
type RateLimitError struct {
	RetryAfter time.Duration
}

// Error func
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.RetryAfter)
}

// Unwrap func - matches errors.Is(err, ErrRateLimited)
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
