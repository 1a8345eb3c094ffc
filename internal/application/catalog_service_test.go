package application

import (
	"errors"
	"testing"
	"time"

	"cardshop-bot/internal/adapters/output/memory"
	"cardshop-bot/internal/domain"
)

// TestLeaveReviewBlockedByReviewLimiter tests that the review-specific
// limiter denies above cap with a retry hint and writes a security event
func TestLeaveReviewBlockedByReviewLimiter(t *testing.T) {
	repo := newTestRepo(t)
	audit := &fakeAudit{}
	service := NewCatalogService(repo, memory.NewSlidingWindowLimiter(time.Hour, 1), audit)

	first, err := repo.CreateCard(domain.CategoryMagic, "one", "d", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.CreateCard(domain.CategoryMagic, "two", "d", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := service.LeaveReview(first, 7, 5, "great"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	err = service.LeaveReview(second, 7, 4, "also great")
	var rateErr *domain.RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rateErr.RetryAfter <= 0 {
		t.Errorf("expected positive retry hint, got %v", rateErr.RetryAfter)
	}
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Error("RateLimitError must unwrap to ErrRateLimited")
	}
	if !audit.has("SECURITY_RATE_LIMIT:7") {
		t.Errorf("expected a rate-limit audit event, got %v", audit.events)
	}

	// The blocked review never reached the store
	card, err := repo.GetCard(second)
	if err != nil {
		t.Fatal(err)
	}
	if len(card.Reviews) != 0 {
		t.Errorf("blocked review must not be stored, got %+v", card.Reviews)
	}
}

// TestLeaveReviewDuplicateIsAudited tests that a second review by the same
// user is rejected and recorded as a security event
func TestLeaveReviewDuplicateIsAudited(t *testing.T) {
	repo := newTestRepo(t)
	audit := &fakeAudit{}
	service := NewCatalogService(repo, memory.NewSlidingWindowLimiter(time.Hour, 10), audit)

	id, err := repo.CreateCard(domain.CategoryPokemon, "pikachu", "d", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := service.LeaveReview(id, 7, 5, "first"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if err := service.LeaveReview(id, 7, 1, "changed my mind"); !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
	if !audit.has("SECURITY_DUPLICATE_REVIEW:1") {
		t.Errorf("expected a duplicate-review audit event, got %v", audit.events)
	}

	reviewed, err := service.HasReviewed(id, 7)
	if err != nil || !reviewed {
		t.Errorf("expected HasReviewed true, got %t, %v", reviewed, err)
	}
}

// TestLeaveReviewInvalidRatingIsNotASecurityEvent tests that a bad rating
// fails validation without touching the audit trail
func TestLeaveReviewInvalidRatingIsNotASecurityEvent(t *testing.T) {
	repo := newTestRepo(t)
	audit := &fakeAudit{}
	service := NewCatalogService(repo, memory.NewSlidingWindowLimiter(time.Hour, 10), audit)

	id, err := repo.CreateCard(domain.CategoryAltro, "title", "d", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := service.LeaveReview(id, 7, 9, "off the scale"); !errors.Is(err, domain.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if len(audit.events) != 0 {
		t.Errorf("validation failures must not be audited, got %v", audit.events)
	}
}

// TestListCardsRejectsUnknownCategory tests category validation on browse
func TestListCardsRejectsUnknownCategory(t *testing.T) {
	service := NewCatalogService(newTestRepo(t), memory.NewSlidingWindowLimiter(time.Hour, 10), &fakeAudit{})

	_, err := service.ListCards(domain.Category("stickers"))
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}
