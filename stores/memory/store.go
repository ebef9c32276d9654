package memory

import (
	"context"
	"sync"
	"time"

	"github.com/KhadeerBasha1232/letter-backend/core"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// memStore keeps letters in a process-local map. Default backend for local
// development and tests.
type memStore struct {
	mu      sync.RWMutex
	letters map[string]*core.Letter
}

// NewStore creates a new in-memory store.
func NewStore() *memStore {
	return &memStore{letters: make(map[string]*core.Letter)}
}

func (s *memStore) FindByID(ctx context.Context, id string) (*core.Letter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	letter, ok := s.letters[id]
	if !ok {
		logrus.WithField("letter_id", id).Warn("Letter with specified ID not found")
		return nil, core.ErrLetterNotFound
	}
	copied := *letter
	return &copied, nil
}

func (s *memStore) Create(ctx context.Context, letter *core.Letter) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := ulid.Make().String()
	now := time.Now()

	copied := *letter
	copied.ID = id
	copied.CreatedAt = now
	copied.UpdatedAt = now
	if copied.Status == "" {
		copied.Status = core.StatusDraft
	}
	s.letters[id] = &copied

	logrus.WithFields(logrus.Fields{
		"letter_id":      id,
		"content_length": len(letter.Content),
	}).Info("Letter created successfully")
	return id, nil
}

func (s *memStore) UpdateContent(ctx context.Context, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	letter, ok := s.letters[id]
	if !ok {
		return core.ErrLetterNotFound
	}
	letter.Content = content
	letter.UpdatedAt = time.Now()
	return nil
}

func (s *memStore) Update(ctx context.Context, letter *core.Letter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.letters[letter.ID]
	if !ok {
		return core.ErrLetterNotFound
	}
	existing.Title = letter.Title
	existing.Content = letter.Content
	existing.Status = letter.Status
	existing.ArchiveRef = letter.ArchiveRef
	existing.UpdatedAt = time.Now()
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.letters[id]; !ok {
		return core.ErrLetterNotFound
	}
	delete(s.letters, id)
	logrus.WithField("letter_id", id).Info("Letter deleted successfully")
	return nil
}

func (s *memStore) ListByOwner(ctx context.Context, ownerID string) ([]*core.Letter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	letters := make([]*core.Letter, 0)
	for _, letter := range s.letters {
		if letter.OwnerID != ownerID {
			continue
		}
		copied := *letter
		letters = append(letters, &copied)
	}
	logrus.WithField("owner_id", ownerID).Infof("Listed %d letters", len(letters))
	return letters, nil
}
