package output

// AuditLogger interface - Output port
// Append-only record of administrative and security-relevant events,
// written after every mutating catalog call or blocked attempt.
// Implementations must never fail the primary action they accompany.
type AuditLogger interface {
	CardAdded(adminID int64, cardID int, title, category string)
	CardDeleted(adminID int64, cardID int, title string)
	VideoUpdated(adminID int64, cardID int, title string)
	TitleUpdated(adminID int64, cardID int, oldTitle, newTitle string)
	DescriptionUpdated(adminID int64, cardID int, title string)
	RateLimitBlocked(userID int64, details string)
	DuplicateReviewBlocked(userID int64, cardID int)
}
