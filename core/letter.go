package core

import (
	"context"
	"time"
)

// LetterStatus tracks whether a letter is a live draft or has been
// archived to the external store.
type LetterStatus string

const (
	StatusDraft    LetterStatus = "draft"
	StatusArchived LetterStatus = "archived"
)

type (
	// Letter is the authoritative copy of one collaboratively edited document.
	Letter struct {
		ID      string       `json:"id"`
		OwnerID string       `json:"-"` // Not exposed in JSON responses, used internally.
		Title   string       `json:"title"`
		Content string       `json:"content"`
		Status  LetterStatus `json:"status"`
		// ArchiveRef is the external share link. Non-empty iff Status is archived.
		ArchiveRef string    `json:"archiveRef,omitempty"`
		CreatedAt  time.Time `json:"createdAt"`
		UpdatedAt  time.Time `json:"updatedAt"`
	}

	// LetterStore defines the persistence layer for letters.
	LetterStore interface {
		// FindByID returns a letter or ErrLetterNotFound.
		FindByID(ctx context.Context, id string) (*Letter, error)

		// Create assigns an id to the letter, stores it and returns the id.
		Create(ctx context.Context, letter *Letter) (string, error)

		// UpdateContent replaces only the content field. Status and archive
		// fields are left untouched.
		UpdateContent(ctx context.Context, id, content string) error

		// Update replaces the mutable fields (title, content, status,
		// archive reference) of an existing letter.
		Update(ctx context.Context, letter *Letter) error

		// Delete removes a letter.
		Delete(ctx context.Context, id string) error

		// ListByOwner returns all letters owned by a user.
		ListByOwner(ctx context.Context, ownerID string) ([]*Letter, error)
	}
)
