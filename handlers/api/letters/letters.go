package letters

import (
	"errors"
	"net/http"

	"github.com/KhadeerBasha1232/letter-backend/archive"
	"github.com/KhadeerBasha1232/letter-backend/core"
	"github.com/KhadeerBasha1232/letter-backend/handlers/auth"
	"github.com/KhadeerBasha1232/letter-backend/middleware"
	"github.com/KhadeerBasha1232/letter-backend/realtime"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type letterRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func claimsFrom(r *http.Request) (*auth.AppClaims, bool) {
	claims, ok := r.Context().Value(middleware.ClaimsContextKey).(*auth.AppClaims)
	return claims, ok
}

// findOwned loads a letter and checks the requester owns it. Ownership is
// enforced here at the HTTP boundary; the realtime core never looks at it.
func findOwned(w http.ResponseWriter, r *http.Request, store core.LetterStore) (*core.Letter, bool) {
	claims, ok := claimsFrom(r)
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]string{"error": "User claims not found"})
		return nil, false
	}

	letterID := chi.URLParam(r, "letterID")
	letter, err := store.FindByID(r.Context(), letterID)
	if err != nil {
		if errors.Is(err, core.ErrLetterNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Letter not found"})
			return nil, false
		}
		logrus.WithFields(logrus.Fields{"error": err, "letterID": letterID}).Error("Failed to fetch letter")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Failed to fetch letter"})
		return nil, false
	}

	if letter.OwnerID != claims.Subject {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, map[string]string{"error": "You are not the owner of this letter"})
		return nil, false
	}
	return letter, true
}

// HandleCreate saves a new draft owned by the authenticated user.
func HandleCreate(store core.LetterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r)
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"error": "User claims not found"})
			return
		}

		var req letterRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil || req.Title == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Title is required"})
			return
		}

		letter := &core.Letter{
			OwnerID: claims.Subject,
			Title:   req.Title,
			Content: req.Content,
			Status:  core.StatusDraft,
		}
		id, err := store.Create(r.Context(), letter)
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err, "userID": claims.Subject}).Error("Failed to create letter")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to create letter"})
			return
		}
		letter.ID = id

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, letter)
	}
}

// HandleGetLive returns a letter without an ownership check so that invited
// viewers can load it before joining the realtime room.
func HandleGetLive(store core.LetterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		letterID := chi.URLParam(r, "letterID")
		letter, err := store.FindByID(r.Context(), letterID)
		if err != nil {
			if errors.Is(err, core.ErrLetterNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, map[string]string{"error": "Letter not found"})
				return
			}
			logrus.WithFields(logrus.Fields{"error": err, "letterID": letterID}).Error("Failed to fetch letter")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to fetch letter"})
			return
		}
		render.JSON(w, r, letter)
	}
}

// HandleGet returns a letter to its owner only.
func HandleGet(store core.LetterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		letter, ok := findOwned(w, r, store)
		if !ok {
			return
		}
		render.JSON(w, r, letter)
	}
}

// HandleList returns all letters owned by the authenticated user.
func HandleList(store core.LetterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r)
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"error": "User claims not found"})
			return
		}

		letters, err := store.ListByOwner(r.Context(), claims.Subject)
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err, "userID": claims.Subject}).Error("Failed to list letters")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to list letters"})
			return
		}
		if letters == nil {
			letters = []*core.Letter{}
		}
		render.JSON(w, r, letters)
	}
}

// HandleEdit replaces the title and content of an owned letter. The
// read-modify-write runs on the letter's sequencer queue so a concurrent
// lifecycle change can never be overwritten by a stale snapshot.
func HandleEdit(store core.LetterStore, seq *realtime.Sequencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		letter, ok := findOwned(w, r, store)
		if !ok {
			return
		}

		var req letterRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil || req.Title == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Title is required"})
			return
		}

		var updated *core.Letter
		var err error
		seq.Do(letter.ID, func() {
			updated, err = store.FindByID(r.Context(), letter.ID)
			if err != nil {
				return
			}
			updated.Title = req.Title
			updated.Content = req.Content
			err = store.Update(r.Context(), updated)
		})
		if err != nil {
			if errors.Is(err, core.ErrLetterNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, map[string]string{"error": "Letter not found"})
				return
			}
			logrus.WithFields(logrus.Fields{"error": err, "letterID": letter.ID}).Error("Failed to update letter")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to update letter"})
			return
		}
		render.JSON(w, r, updated)
	}
}

// HandleDelete removes an owned letter, cleaning up its archived copy first
// when one exists.
func HandleDelete(store core.LetterStore, manager *archive.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		letter, ok := findOwned(w, r, store)
		if !ok {
			return
		}

		if err := manager.Delete(r.Context(), letter.ID); err != nil {
			logrus.WithFields(logrus.Fields{"error": err, "letterID": letter.ID}).Error("Failed to delete letter")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to delete letter"})
			return
		}
		render.JSON(w, r, map[string]string{"message": "Letter deleted successfully"})
	}
}

// HandleArchive uploads an owned letter to the external archive. Archiving
// an already-archived letter reports success without re-uploading.
func HandleArchive(store core.LetterStore, manager *archive.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		letter, ok := findOwned(w, r, store)
		if !ok {
			return
		}

		archived, err := manager.Archive(r.Context(), letter.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err, "letterID": letter.ID}).Error("Failed to archive letter")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to archive letter"})
			return
		}
		render.JSON(w, r, archived)
	}
}

// HandleUnarchive removes the external copy of an owned letter and reverts
// it to a draft.
func HandleUnarchive(store core.LetterStore, manager *archive.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		letter, ok := findOwned(w, r, store)
		if !ok {
			return
		}

		unarchived, err := manager.Unarchive(r.Context(), letter.ID)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrNotArchived):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, map[string]string{"error": "Letter is not archived"})
			case errors.Is(err, core.ErrMalformedReference):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]string{"error": "Invalid archive reference"})
			default:
				logrus.WithFields(logrus.Fields{"error": err, "letterID": letter.ID}).Error("Failed to unarchive letter")
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"error": "Failed to unarchive letter"})
			}
			return
		}
		render.JSON(w, r, unarchived)
	}
}
