package output

import "cardshop-bot/internal/domain"

// CardRepository interface - Output port
// Defines what the application needs from catalog persistence.
// Implementations own card/review lifetime and are the only writer of the
// persisted file. All mutating calls run read-modify-persist as one critical
// section, trigger a backup snapshot before returning success, and roll back
// in-memory state when persistence fails (domain.ErrPersistence).
type CardRepository interface {
	// CreateCard sanitizes title/description, assigns the next unused id
	// and returns it. Ids are never reused within one run.
	CreateCard(category domain.Category, title, description, videoID string) (int, error)

	// GetCards returns summaries of all cards in a category, ascending by id.
	GetCards(category domain.Category) ([]domain.CardSummary, error)

	// GetCard returns one card by id, or domain.ErrCardNotFound.
	GetCard(id int) (*domain.Card, error)

	// GetAllCards returns every card, ascending by id. Lock-free read.
	GetAllCards() ([]domain.Card, error)

	// UpdateCardVideo replaces the video reference of an existing card.
	UpdateCardVideo(id int, videoID string) error

	// UpdateCardTitle replaces the title (sanitized) of an existing card.
	UpdateCardTitle(id int, title string) error

	// UpdateCardDescription replaces the description (sanitized).
	UpdateCardDescription(id int, description string) error

	// DeleteCard removes a card and all its reviews atomically.
	DeleteCard(id int) error

	// AddReview appends a review. Fails with domain.ErrCardNotFound,
	// domain.ErrDuplicateReview or domain.ErrInvalidRating.
	AddReview(cardID int, userID int64, rating int, comment string) error

	// HasReviewed reports whether the user already reviewed the card.
	HasReviewed(cardID int, userID int64) (bool, error)
}
