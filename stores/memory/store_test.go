package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/KhadeerBasha1232/letter-backend/core"
)

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, err := store.Create(ctx, &core.Letter{OwnerID: "owner-1", Title: "Hello", Content: "hi"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if id == "" {
		t.Fatal("Create() returned empty ID")
	}

	letter, err := store.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID() failed: %v", err)
	}
	if letter.Status != core.StatusDraft {
		t.Errorf("expected new letter to default to draft, got %q", letter.Status)
	}
	if letter.CreatedAt.IsZero() || letter.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestFindByIDNotFound(t *testing.T) {
	store := NewStore()
	if _, err := store.FindByID(context.Background(), "missing"); !errors.Is(err, core.ErrLetterNotFound) {
		t.Errorf("expected ErrLetterNotFound, got %v", err)
	}
}

func TestUpdateContentLeavesOtherFieldsAlone(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, err := store.Create(ctx, &core.Letter{
		OwnerID:    "owner-1",
		Title:      "Hello",
		Content:    "hi",
		Status:     core.StatusArchived,
		ArchiveRef: "https://archive.local/d/abc/view",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := store.UpdateContent(ctx, id, "updated"); err != nil {
		t.Fatalf("UpdateContent() failed: %v", err)
	}

	letter, err := store.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID() failed: %v", err)
	}
	if letter.Content != "updated" {
		t.Errorf("expected updated content, got %q", letter.Content)
	}
	if letter.Status != core.StatusArchived || letter.ArchiveRef == "" {
		t.Errorf("expected status and archive reference to be untouched, got %+v", letter)
	}
	if letter.Title != "Hello" {
		t.Errorf("expected title to be untouched, got %q", letter.Title)
	}
}

func TestUpdateContentMissingLetter(t *testing.T) {
	store := NewStore()
	if err := store.UpdateContent(context.Background(), "missing", "x"); !errors.Is(err, core.ErrLetterNotFound) {
		t.Errorf("expected ErrLetterNotFound, got %v", err)
	}
}

func TestFindByIDReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, _ := store.Create(ctx, &core.Letter{OwnerID: "owner-1", Title: "Hello", Content: "hi"})

	letter, _ := store.FindByID(ctx, id)
	letter.Content = "mutated by caller"

	again, _ := store.FindByID(ctx, id)
	if again.Content != "hi" {
		t.Errorf("expected stored letter to be unaffected by caller mutation, got %q", again.Content)
	}
}

func TestDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, _ := store.Create(ctx, &core.Letter{OwnerID: "owner-1", Title: "Hello"})
	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.FindByID(ctx, id); !errors.Is(err, core.ErrLetterNotFound) {
		t.Errorf("expected letter to be gone, got %v", err)
	}
	if err := store.Delete(ctx, id); !errors.Is(err, core.ErrLetterNotFound) {
		t.Errorf("expected second delete to report not found, got %v", err)
	}
}

func TestListByOwner(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	store.Create(ctx, &core.Letter{OwnerID: "owner-1", Title: "One"})
	store.Create(ctx, &core.Letter{OwnerID: "owner-1", Title: "Two"})
	store.Create(ctx, &core.Letter{OwnerID: "owner-2", Title: "Other"})

	letters, err := store.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner() failed: %v", err)
	}
	if len(letters) != 2 {
		t.Errorf("expected 2 letters for owner-1, got %d", len(letters))
	}

	empty, err := store.ListByOwner(ctx, "owner-3")
	if err != nil {
		t.Fatalf("ListByOwner() failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no letters for owner-3, got %d", len(empty))
	}
}
