package images

import "context"

// Repo persists gallery records.
type Repo interface {
	// Create inserts the record and returns it with the server-assigned
	// creation timestamp.
	Create(ctx context.Context, img UpscaledImage) (UpscaledImage, error)
	// ListByUser returns the user's records newest-first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]UpscaledImage, error)
	// Delete removes a record scoped by user and returns the deleted row so
	// callers can clean up the blobs it referenced.
	Delete(ctx context.Context, userID, imageID string) (UpscaledImage, error)
}
