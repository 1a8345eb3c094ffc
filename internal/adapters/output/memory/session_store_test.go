package memory

import (
	"errors"
	"testing"
	"time"

	"cardshop-bot/internal/domain"
)

// TestGetSessionReturnsNilWhenAbsent tests the no-session case
func TestGetSessionReturnsNilWhenAbsent(t *testing.T) {
	store := NewSessionStore(5 * time.Minute)

	session, err := store.GetSession(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil session, got %+v", session)
	}
}

// TestPutAndGetSessionRoundTrip tests basic storage and retrieval
func TestPutAndGetSessionRoundTrip(t *testing.T) {
	store := NewSessionStore(5 * time.Minute)

	session := domain.NewAdminSession(42, domain.WorkflowCreate, 0, store.Timeout())
	if err := store.PutSession(session); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := store.GetSession(42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.State != domain.StateAwaitingCategory {
		t.Errorf("unexpected session: %+v", got)
	}
}

// TestExpiredSessionIsDiscardedOnAccess tests lazy expiry: the stale session
// is removed, reported as expired once, then reads as absent
func TestExpiredSessionIsDiscardedOnAccess(t *testing.T) {
	store := NewSessionStore(5 * time.Minute)

	session := domain.NewAdminSession(42, domain.WorkflowCreate, 0, store.Timeout())
	if err := store.PutSession(session); err != nil {
		t.Fatal(err)
	}
	session.LastActivity = time.Now().Add(-6 * time.Minute)

	_, err := store.GetSession(42)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	got, err := store.GetSession(42)
	if err != nil || got != nil {
		t.Errorf("expected absent session after discard, got %+v, %v", got, err)
	}
}

// TestSessionJustUnderTimeoutSurvives tests the expiry boundary
func TestSessionJustUnderTimeoutSurvives(t *testing.T) {
	store := NewSessionStore(5 * time.Minute)

	session := domain.NewAdminSession(42, domain.WorkflowCreate, 0, store.Timeout())
	if err := store.PutSession(session); err != nil {
		t.Fatal(err)
	}
	session.LastActivity = time.Now().Add(-5*time.Minute + time.Second)

	got, err := store.GetSession(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Error("session just under the timeout must survive")
	}
}

// TestGetSessionDoesNotRefreshActivity tests that a read leaves the expiry
// clock running
func TestGetSessionDoesNotRefreshActivity(t *testing.T) {
	store := NewSessionStore(5 * time.Minute)

	session := domain.NewAdminSession(42, domain.WorkflowCreate, 0, store.Timeout())
	if err := store.PutSession(session); err != nil {
		t.Fatal(err)
	}
	stamp := time.Now().Add(-4 * time.Minute)
	session.LastActivity = stamp

	got, err := store.GetSession(42)
	if err != nil || got == nil {
		t.Fatalf("unexpected result: %+v, %v", got, err)
	}
	if !got.LastActivity.Equal(stamp) {
		t.Error("a read must not refresh the activity stamp")
	}
}

// TestPutSessionReplacesExistingWorkflow tests that one admin has at most
// one live session
func TestPutSessionReplacesExistingWorkflow(t *testing.T) {
	store := NewSessionStore(5 * time.Minute)

	if err := store.PutSession(domain.NewAdminSession(42, domain.WorkflowCreate, 0, store.Timeout())); err != nil {
		t.Fatal(err)
	}
	if err := store.PutSession(domain.NewAdminSession(42, domain.WorkflowEditVideo, 7, store.Timeout())); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetSession(42)
	if err != nil {
		t.Fatal(err)
	}
	if got.Workflow != domain.WorkflowEditVideo || got.CardID != 7 {
		t.Errorf("expected the replacement session, got %+v", got)
	}
}

// TestDeleteSessionIsIdempotent tests deletion of present and absent sessions
func TestDeleteSessionIsIdempotent(t *testing.T) {
	store := NewSessionStore(5 * time.Minute)

	if err := store.PutSession(domain.NewAdminSession(42, domain.WorkflowCreate, 0, store.Timeout())); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteSession(42); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.DeleteSession(42); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}

	got, err := store.GetSession(42)
	if err != nil || got != nil {
		t.Errorf("expected absent session after delete, got %+v, %v", got, err)
	}
}
