package domain

import "time"

// Category type - closed set of catalog categories
type Category string

const (
	// CategoryYugioh const
	CategoryYugioh Category = "yugioh"
	// CategoryPokemon const
	CategoryPokemon Category = "pokemon"
	// CategoryMagic Const
	CategoryMagic Category = "magic"
	// CategoryAltro const
	CategoryAltro Category = "altro"
)

// ValidCategories returns the closed set of catalog categories
func ValidCategories() []Category {
	return []Category{CategoryYugioh, CategoryPokemon, CategoryMagic, CategoryAltro}
}

// IsValid reports whether the category belongs to the closed set
func (c Category) IsValid() bool {
	switch c {
	case CategoryYugioh, CategoryPokemon, CategoryMagic, CategoryAltro:
		return true
	}
	return false
}

// Text length caps enforced before anything reaches the store
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxCommentLength     = 200
)

// Review struct - A single user review on a card.
// Reviews are append-only; at most one per (card, user) pair.
type Review struct {
	UserID    int64
	Rating    int
	Comment   string
	Timestamp time.Time
}

// Card struct - Core domain entity: one catalog listing
type Card struct {
	ID          int
	Category    Category
	Title       string
	Description string
	VideoID     string // opaque handle owned by the transport layer
	Reviews     []Review
}

// HasReviewFrom reports whether the given user already reviewed this card
func (c *Card) HasReviewFrom(userID int64) bool {
	for _, r := range c.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// AverageRating returns the mean rating, or 0 when there are no reviews
func (c *Card) AverageRating() float64 {
	if len(c.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range c.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(c.Reviews))
}

// CardSummary struct - Domain DTO for category listings
type CardSummary struct {
	ID    int
	Title string
}
