package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KhadeerBasha1232/letter-backend/core"
)

func TestNewStoreCreatesDirectory(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), "nested", "letters")
	store := NewStore(basePath)

	if store == nil {
		t.Fatal("NewStore() returned nil")
	}
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		t.Error("NewStore() did not create base directory")
	}
}

func TestCreateAndFindByID(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	id, err := store.Create(ctx, &core.Letter{OwnerID: "owner-1", Title: "Hello", Content: "hi"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	letter, err := store.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID() failed: %v", err)
	}
	if letter.Content != "hi" || letter.Title != "Hello" || letter.Status != core.StatusDraft {
		t.Errorf("unexpected letter: %+v", letter)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.FindByID(context.Background(), "missing"); !errors.Is(err, core.ErrLetterNotFound) {
		t.Errorf("expected ErrLetterNotFound, got %v", err)
	}
}

func TestFindByIDRejectsPathTraversal(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.FindByID(context.Background(), "../outside"); !errors.Is(err, core.ErrLetterNotFound) {
		t.Errorf("expected ErrLetterNotFound for path-like id, got %v", err)
	}
}

func TestUpdateContentSurvivesReopen(t *testing.T) {
	basePath := t.TempDir()
	ctx := context.Background()

	store := NewStore(basePath)
	id, err := store.Create(ctx, &core.Letter{OwnerID: "owner-1", Title: "Hello", Content: "hi"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := store.UpdateContent(ctx, id, "updated"); err != nil {
		t.Fatalf("UpdateContent() failed: %v", err)
	}

	reopened := NewStore(basePath)
	letter, err := reopened.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID() after reopen failed: %v", err)
	}
	if letter.Content != "updated" {
		t.Errorf("expected persisted content, got %q", letter.Content)
	}
}

func TestUpdateReplacesLifecycleFields(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	id, _ := store.Create(ctx, &core.Letter{OwnerID: "owner-1", Title: "Hello", Content: "hi"})
	letter, _ := store.FindByID(ctx, id)

	letter.Status = core.StatusArchived
	letter.ArchiveRef = "https://archive.local/d/abc/view"
	if err := store.Update(ctx, letter); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	stored, _ := store.FindByID(ctx, id)
	if stored.Status != core.StatusArchived || stored.ArchiveRef != letter.ArchiveRef {
		t.Errorf("expected lifecycle fields to persist, got %+v", stored)
	}
}

func TestDelete(t *testing.T) {
	store := NewStore(t.TempDir())
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
	store := NewStore(t.TempDir())
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
}
