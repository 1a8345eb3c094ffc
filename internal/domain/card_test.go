package domain

import "testing"

// TestCategoryIsValid tests the closed category set
func TestCategoryIsValid(t *testing.T) {
	for _, c := range ValidCategories() {
		if !c.IsValid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	for _, c := range []Category{"stickers", "MAGIC", ""} {
		if c.IsValid() {
			t.Errorf("category %q should be invalid", c)
		}
	}
}

// TestAverageRating tests the mean including the empty case
func TestAverageRating(t *testing.T) {
	card := Card{}
	if got := card.AverageRating(); got != 0 {
		t.Errorf("expected 0 for no reviews, got %f", got)
	}

	card.Reviews = []Review{
		{UserID: 1, Rating: 5},
		{UserID: 2, Rating: 4},
		{UserID: 3, Rating: 3},
	}
	if got := card.AverageRating(); got != 4 {
		t.Errorf("expected 4.0, got %f", got)
	}
}

// TestHasReviewFrom tests the per-user review lookup
func TestHasReviewFrom(t *testing.T) {
	card := Card{Reviews: []Review{{UserID: 7, Rating: 5}}}
	if !card.HasReviewFrom(7) {
		t.Error("expected a review from user 7")
	}
	if card.HasReviewFrom(8) {
		t.Error("expected no review from user 8")
	}
}
