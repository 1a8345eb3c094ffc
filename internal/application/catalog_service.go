package application

import (
	"errors"
	"fmt"

	"cardshop-bot/internal/domain"
	"cardshop-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// CatalogService struct - Application service implementing browse/review
// use cases. Review submissions pass the review-specific rate limiter
// before touching the store; blocked or duplicate attempts go to the audit
// log as security events.
type CatalogService struct {
	repo          output.CardRepository
	reviewLimiter output.RateLimiter
	audit         output.AuditLogger
}

// NewCatalogService func - Creates new catalog service
func NewCatalogService(repo output.CardRepository, reviewLimiter output.RateLimiter, audit output.AuditLogger) *CatalogService {
	return &CatalogService{
		repo:          repo,
		reviewLimiter: reviewLimiter,
		audit:         audit,
	}
}

// ListCards func - Use case: Browse a category
func (s *CatalogService) ListCards(category domain.Category) ([]domain.CardSummary, error) {
	if !category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	return s.repo.GetCards(category)
}

// GetCard func - Use case: View one card with its reviews
func (s *CatalogService) GetCard(id int) (*domain.Card, error) {
	return s.repo.GetCard(id)
}

// LeaveReview func - Use case: Leave one rating/comment on a card.
// A review action consumes capacity only from the review limiter; the
// generic limiter has already been charged at the routing boundary.
func (s *CatalogService) LeaveReview(cardID int, userID int64, rating int, comment string) error {
	allowed, retry := s.reviewLimiter.Allow(userID)
	if !allowed {
		s.audit.RateLimitBlocked(userID, fmt.Sprintf("review blocked, card_id=%d, retry_in=%s", cardID, retry))
		return &domain.RateLimitError{RetryAfter: retry}
	}

	if err := s.repo.AddReview(cardID, userID, rating, comment); err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			s.audit.DuplicateReviewBlocked(userID, cardID)
		}
		return err
	}

	logrus.Infof("Review saved: card=%d user=%d rating=%d", cardID, userID, rating)
	return nil
}

// HasReviewed func - Use case: Check for an existing review
func (s *CatalogService) HasReviewed(cardID int, userID int64) (bool, error) {
	return s.repo.HasReviewed(cardID, userID)
}
