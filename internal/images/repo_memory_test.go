package images

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoListIsScopedAndNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, UpscaledImage{
			ID:        "a" + string(rune('0'+i)),
			UserID:    "user-a",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, UpscaledImage{ID: "b0", UserID: "user-b", CreatedAt: base}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := repo.ListByUser(ctx, "user-a", 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	for _, img := range list {
		if img.UserID != "user-a" {
			t.Fatalf("leaked record for %s", img.UserID)
		}
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatalf("records not newest-first at index %d", i)
		}
	}
}

func TestMemoryRepoListPagination(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		_, _ = repo.Create(ctx, UpscaledImage{
			ID:        "img-" + string(rune('0'+i)),
			UserID:    "user-a",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	page, err := repo.ListByUser(ctx, "user-a", 2, 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page))
	}
	if page[0].ID != "img-3" || page[1].ID != "img-2" {
		t.Fatalf("unexpected page: %s, %s", page[0].ID, page[1].ID)
	}
}

func TestMemoryRepoDeleteScopedByUser(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	_, _ = repo.Create(ctx, UpscaledImage{ID: "img-1", UserID: "user-a", OriginalURL: "o", UpscaledURL: "u"})

	if _, err := repo.Delete(ctx, "user-b", "img-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong user, got %v", err)
	}

	deleted, err := repo.Delete(ctx, "user-a", "img-1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.OriginalURL != "o" || deleted.UpscaledURL != "u" {
		t.Fatalf("deleted row missing URLs: %+v", deleted)
	}

	if _, err := repo.Delete(ctx, "user-a", "img-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
