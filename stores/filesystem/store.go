package filesystem

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KhadeerBasha1232/letter-backend/core"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// fsStore persists each letter as one JSON file under basePath.
type fsStore struct {
	basePath string
}

// NewStore creates a new filesystem-based store.
func NewStore(basePath string) *fsStore {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		log.Fatalf("failed to create base directory: %v", err)
	}
	return &fsStore{basePath: basePath}
}

func (s *fsStore) letterPath(id string) (string, bool) {
	// An id must be a simple name, never a path.
	if id == "" || filepath.Base(id) != id {
		return "", false
	}
	return filepath.Join(s.basePath, id+".json"), true
}

func (s *fsStore) read(filePath string) (*core.Letter, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrLetterNotFound
		}
		return nil, err
	}
	var letter core.Letter
	if err := json.Unmarshal(data, &letter); err != nil {
		return nil, err
	}
	return &letter, nil
}

func (s *fsStore) write(filePath string, letter *core.Letter) error {
	data, err := json.Marshal(letter)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

func (s *fsStore) FindByID(ctx context.Context, id string) (*core.Letter, error) {
	filePath, ok := s.letterPath(id)
	if !ok {
		return nil, core.ErrLetterNotFound
	}
	log := logrus.WithFields(logrus.Fields{"letter_id": id, "file_path": filePath})

	letter, err := s.read(filePath)
	if err != nil {
		if err == core.ErrLetterNotFound {
			log.Warn("Letter with specified ID not found")
		} else {
			log.WithError(err).Error("Failed to retrieve letter")
		}
		return nil, err
	}
	return letter, nil
}

func (s *fsStore) Create(ctx context.Context, letter *core.Letter) (string, error) {
	id := ulid.Make().String()
	filePath := filepath.Join(s.basePath, id+".json")
	log := logrus.WithFields(logrus.Fields{"letter_id": id, "file_path": filePath})

	now := time.Now()
	copied := *letter
	copied.ID = id
	copied.CreatedAt = now
	copied.UpdatedAt = now
	if copied.Status == "" {
		copied.Status = core.StatusDraft
	}

	if err := s.write(filePath, &copied); err != nil {
		log.WithError(err).Error("Failed to create letter")
		return "", err
	}
	log.Info("Letter created successfully")
	return id, nil
}

func (s *fsStore) UpdateContent(ctx context.Context, id, content string) error {
	filePath, ok := s.letterPath(id)
	if !ok {
		return core.ErrLetterNotFound
	}

	letter, err := s.read(filePath)
	if err != nil {
		return err
	}
	letter.Content = content
	letter.UpdatedAt = time.Now()
	return s.write(filePath, letter)
}

func (s *fsStore) Update(ctx context.Context, letter *core.Letter) error {
	filePath, ok := s.letterPath(letter.ID)
	if !ok {
		return core.ErrLetterNotFound
	}

	existing, err := s.read(filePath)
	if err != nil {
		return err
	}
	existing.Title = letter.Title
	existing.Content = letter.Content
	existing.Status = letter.Status
	existing.ArchiveRef = letter.ArchiveRef
	existing.UpdatedAt = time.Now()
	return s.write(filePath, existing)
}

func (s *fsStore) Delete(ctx context.Context, id string) error {
	filePath, ok := s.letterPath(id)
	if !ok {
		return core.ErrLetterNotFound
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return core.ErrLetterNotFound
		}
		logrus.WithField("letter_id", id).WithError(err).Error("Failed to delete letter file")
		return err
	}
	return nil
}

func (s *fsStore) ListByOwner(ctx context.Context, ownerID string) ([]*core.Letter, error) {
	files, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, err
	}

	log := logrus.WithField("owner_id", ownerID)
	letters := make([]*core.Letter, 0)
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		letter, err := s.read(filepath.Join(s.basePath, file.Name()))
		if err != nil {
			log.WithError(err).Warnf("Failed to read letter file %s, skipping", file.Name())
			continue
		}
		if letter.OwnerID != ownerID {
			continue
		}
		letters = append(letters, letter)
	}

	log.Infof("Listed %d letters", len(letters))
	return letters, nil
}
