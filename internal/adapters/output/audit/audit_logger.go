// Package audit writes the append-only record of administrative and
// security-relevant events. The audit file rotates on its own policy,
// independent of the application log.
package audit

import (
	"fmt"
	"io"
	"time"

	"cardshop-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Compile-time check to ensure Logger implements the output port
var _ output.AuditLogger = (*Logger)(nil)

// Action codes - the closed set of auditable events
const (
	actionCardAdd           = "CARD_ADD"
	actionCardDelete        = "CARD_DELETE"
	actionVideoUpdate       = "VIDEO_UPDATE"
	actionTitleUpdate       = "TITLE_UPDATE"
	actionDescriptionUpdate = "DESCRIPTION_UPDATE"
	actionRateLimit         = "SECURITY_RATE_LIMIT"
	actionDuplicateReview   = "SECURITY_DUPLICATE_REVIEW"
)

// Logger struct - Output adapter appending one line per event:
// ISO-8601 timestamp | acting user id | action code | details
type Logger struct {
	out io.Writer
}

// Config struct - Rotation policy for the audit file
type Config struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// New creates an audit logger rotating by size via lumberjack
func New(cfg Config) *Logger {
	return &Logger{
		out: &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		},
	}
}

// NewWithWriter creates an audit logger writing to the given sink.
// Used by tests and anywhere rotation is not wanted.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{out: w}
}

// record appends one event line. Audit failures are logged and swallowed -
// the primary action an event accompanies must never fail on its account.
func (l *Logger) record(userID int64, action, details string) {
	line := fmt.Sprintf("%s | user_id=%d | action=%s | details=%s\n",
		time.Now().UTC().Format(time.RFC3339), userID, action, details)
	if _, err := io.WriteString(l.out, line); err != nil {
		logrus.Errorf("Audit write failed: %v", err)
	}
}

// CardAdded func
func (l *Logger) CardAdded(adminID int64, cardID int, title, category string) {
	l.record(adminID, actionCardAdd,
		fmt.Sprintf("card_id=%d | title=%s | category=%s", cardID, clip(title, 50), category))
}

// CardDeleted func
func (l *Logger) CardDeleted(adminID int64, cardID int, title string) {
	l.record(adminID, actionCardDelete,
		fmt.Sprintf("card_id=%d | title=%s", cardID, clip(title, 50)))
}

// VideoUpdated func
func (l *Logger) VideoUpdated(adminID int64, cardID int, title string) {
	l.record(adminID, actionVideoUpdate,
		fmt.Sprintf("card_id=%d | title=%s", cardID, clip(title, 50)))
}

// TitleUpdated func
func (l *Logger) TitleUpdated(adminID int64, cardID int, oldTitle, newTitle string) {
	l.record(adminID, actionTitleUpdate,
		fmt.Sprintf("card_id=%d | old_title=%s | new_title=%s", cardID, clip(oldTitle, 40), clip(newTitle, 40)))
}

// DescriptionUpdated func
func (l *Logger) DescriptionUpdated(adminID int64, cardID int, title string) {
	l.record(adminID, actionDescriptionUpdate,
		fmt.Sprintf("card_id=%d | title=%s", cardID, clip(title, 50)))
}

// RateLimitBlocked func
func (l *Logger) RateLimitBlocked(userID int64, details string) {
	l.record(userID, actionRateLimit, details)
}

// DuplicateReviewBlocked func
func (l *Logger) DuplicateReviewBlocked(userID int64, cardID int) {
	l.record(userID, actionDuplicateReview, fmt.Sprintf("card_id=%d", cardID))
}

func clip(s string, n int) string {
	if runes := []rune(s); len(runes) > n {
		return string(runes[:n])
	}
	return s
}
