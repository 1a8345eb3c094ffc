package application

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"cardshop-bot/internal/adapters/output/yamlstore"
	"cardshop-bot/internal/domain"
)

// fakeAudit records event codes in call order
type fakeAudit struct {
	events []string
}

func (f *fakeAudit) CardAdded(adminID int64, cardID int, title, category string) {
	f.events = append(f.events, fmt.Sprintf("CARD_ADD:%d", cardID))
}

func (f *fakeAudit) CardDeleted(adminID int64, cardID int, title string) {
	f.events = append(f.events, fmt.Sprintf("CARD_DELETE:%d", cardID))
}

func (f *fakeAudit) VideoUpdated(adminID int64, cardID int, title string) {
	f.events = append(f.events, fmt.Sprintf("VIDEO_UPDATE:%d", cardID))
}

func (f *fakeAudit) TitleUpdated(adminID int64, cardID int, oldTitle, newTitle string) {
	f.events = append(f.events, fmt.Sprintf("TITLE_UPDATE:%d", cardID))
}

func (f *fakeAudit) DescriptionUpdated(adminID int64, cardID int, title string) {
	f.events = append(f.events, fmt.Sprintf("DESCRIPTION_UPDATE:%d", cardID))
}

func (f *fakeAudit) RateLimitBlocked(userID int64, details string) {
	f.events = append(f.events, fmt.Sprintf("SECURITY_RATE_LIMIT:%d", userID))
}

func (f *fakeAudit) DuplicateReviewBlocked(userID int64, cardID int) {
	f.events = append(f.events, fmt.Sprintf("SECURITY_DUPLICATE_REVIEW:%d", cardID))
}

func (f *fakeAudit) has(event string) bool {
	for _, e := range f.events {
		if e == event {
			return true
		}
	}
	return false
}

// fakeBotClient captures outbound replies
type fakeBotClient struct {
	replies []domain.Reply
}

func (f *fakeBotClient) SendMessage(reply domain.Reply) error {
	f.replies = append(f.replies, reply)
	return nil
}

func (f *fakeBotClient) last() string {
	if len(f.replies) == 0 {
		return ""
	}
	return f.replies[len(f.replies)-1].Text
}

func newTestRepo(t *testing.T) *yamlstore.CardRepository {
	t.Helper()
	dir := t.TempDir()
	rotator, err := yamlstore.NewBackupRotator(filepath.Join(dir, "backups"), 5)
	if err != nil {
		t.Fatalf("creating rotator: %v", err)
	}
	repo, err := yamlstore.NewCardRepository(filepath.Join(dir, "cards.yaml"), rotator)
	if err != nil {
		t.Fatalf("creating repository: %v", err)
	}
	return repo
}

func textMessage(userID int64, text string) *domain.IncomingMessage {
	return &domain.IncomingMessage{
		MessageID: 1,
		From:      domain.UserRef{ID: userID},
		ChatID:    userID,
		Text:      text,
	}
}

func videoMessage(userID int64, fileID, fileName string) *domain.IncomingMessage {
	return &domain.IncomingMessage{
		MessageID: 1,
		From:      domain.UserRef{ID: userID},
		ChatID:    userID,
		Video:     &domain.VideoRef{FileID: fileID, FileName: fileName},
	}
}

const testTimeout = 5 * time.Minute
