package images

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]UpscaledImage // userId -> records
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]UpscaledImage),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, img UpscaledImage) (UpscaledImage, error) {
	if err := ctx.Err(); err != nil {
		return UpscaledImage{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC()
	}
	r.data[img.UserID] = append(r.data[img.UserID], img)
	return img, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]UpscaledImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	userImages := r.data[userID]
	r.mu.RUnlock()

	if len(userImages) == 0 || offset >= len(userImages) {
		return []UpscaledImage{}, nil
	}

	// Copy and sort newest-first by CreatedAt.
	out := make([]UpscaledImage, len(userImages))
	copy(out, userImages)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return out[offset:end], nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, imageID string) (UpscaledImage, error) {
	if err := ctx.Err(); err != nil {
		return UpscaledImage{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	records := r.data[userID]
	for i := range records {
		if records[i].ID == imageID {
			deleted := records[i]
			r.data[userID] = append(records[:i], records[i+1:]...)
			return deleted, nil
		}
	}
	return UpscaledImage{}, ErrNotFound
}
