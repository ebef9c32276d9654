package archive

import (
	"context"
	"fmt"

	"github.com/KhadeerBasha1232/letter-backend/core"
	"github.com/KhadeerBasha1232/letter-backend/realtime"
	"github.com/sirupsen/logrus"
)

// Manager is the document lifecycle adapter: it moves letters between the
// draft and archived states and keeps the invariant that a letter carries an
// archive reference exactly when its status is archived.
//
// It runs every operation through the same per-letter sequencer as the
// realtime coordinator, so a lifecycle change cannot race a concurrent
// content update for the same letter.
type Manager struct {
	store    core.LetterStore
	uploader Uploader
	seq      *realtime.Sequencer
}

func NewManager(store core.LetterStore, uploader Uploader, seq *realtime.Sequencer) *Manager {
	return &Manager{store: store, uploader: uploader, seq: seq}
}

// Archive uploads the letter to the external store and records the returned
// reference. Archiving an already-archived letter succeeds without touching
// the stored reference, since the desired end state already holds.
func (m *Manager) Archive(ctx context.Context, letterID string) (*core.Letter, error) {
	var letter *core.Letter
	var err error
	m.seq.Do(letterID, func() {
		letter, err = m.archive(ctx, letterID)
	})
	return letter, err
}

func (m *Manager) archive(ctx context.Context, letterID string) (*core.Letter, error) {
	letter, err := m.store.FindByID(ctx, letterID)
	if err != nil {
		return nil, err
	}
	if letter.ArchiveRef != "" {
		return letter, nil
	}

	ref, err := m.uploader.Upload(ctx, letter.Title, letter.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrArchiveUpload, err)
	}

	letter.Status = core.StatusArchived
	letter.ArchiveRef = ref
	if err := m.store.Update(ctx, letter); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"letter_id": letter.ID, "reference": ref}).Info("Letter archived")
	return letter, nil
}

// Unarchive deletes the external file and reverts the letter to a draft.
// A letter that holds no reference fails with core.ErrNotArchived and is
// left unchanged.
func (m *Manager) Unarchive(ctx context.Context, letterID string) (*core.Letter, error) {
	var letter *core.Letter
	var err error
	m.seq.Do(letterID, func() {
		letter, err = m.unarchive(ctx, letterID)
	})
	return letter, err
}

func (m *Manager) unarchive(ctx context.Context, letterID string) (*core.Letter, error) {
	letter, err := m.store.FindByID(ctx, letterID)
	if err != nil {
		return nil, err
	}
	if letter.ArchiveRef == "" {
		return nil, core.ErrNotArchived
	}

	fileID, err := ParseReference(letter.ArchiveRef)
	if err != nil {
		return nil, err
	}
	if err := m.uploader.Remove(ctx, fileID); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrArchiveDelete, err)
	}

	letter.Status = core.StatusDraft
	letter.ArchiveRef = ""
	if err := m.store.Update(ctx, letter); err != nil {
		return nil, err
	}
	logrus.WithField("letter_id", letter.ID).Info("Letter unarchived")
	return letter, nil
}

// Delete removes the letter, cleaning up the external file first when one
// exists. A reference that cannot be parsed is logged and skipped rather
// than blocking the deletion: the external file is unreachable by id anyway,
// and the letter must stay deletable.
func (m *Manager) Delete(ctx context.Context, letterID string) error {
	var err error
	m.seq.Do(letterID, func() {
		err = m.delete(ctx, letterID)
	})
	return err
}

func (m *Manager) delete(ctx context.Context, letterID string) error {
	letter, err := m.store.FindByID(ctx, letterID)
	if err != nil {
		return err
	}

	if letter.ArchiveRef != "" {
		fileID, err := ParseReference(letter.ArchiveRef)
		if err != nil {
			logrus.WithFields(logrus.Fields{"letter_id": letterID, "reference": letter.ArchiveRef}).
				Warn("Skipping external cleanup for unparseable archive reference")
		} else if err := m.uploader.Remove(ctx, fileID); err != nil {
			return fmt.Errorf("%w: %v", core.ErrArchiveDelete, err)
		}
	}

	return m.store.Delete(ctx, letterID)
}
