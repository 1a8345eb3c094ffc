package input

import "cardshop-bot/internal/domain"

// CatalogService interface - Input port (use case)
// Browsing and reviewing the card catalog
type CatalogService interface {
	// ListCards returns summaries for a category, ascending by id
	ListCards(category domain.Category) ([]domain.CardSummary, error)

	// GetCard returns one card with its reviews
	GetCard(id int) (*domain.Card, error)

	// LeaveReview records one rating/comment per (card, user) pair.
	// Fails with *domain.RateLimitError (wraps ErrRateLimited and carries
	// the retry delay), ErrDuplicateReview, ErrInvalidRating or
	// ErrCardNotFound.
	LeaveReview(cardID int, userID int64, rating int, comment string) error

	// HasReviewed reports whether the user already reviewed the card
	HasReviewed(cardID int, userID int64) (bool, error)
}
