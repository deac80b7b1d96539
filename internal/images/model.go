package images

import "time"

// UpscaledImage is one before/after pair in a user's gallery. Records are
// immutable after creation and removed only by the compound delete.
type UpscaledImage struct {
	ID          string
	UserID      string
	OriginalURL string
	UpscaledURL string
	Method      string
	Strategy    string
	Fallback    bool
	CreatedAt   time.Time
}
