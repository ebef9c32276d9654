package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
)

type archivedFile struct {
	Title   string
	Content string
}

// memUploader keeps archived letters in memory. Default backend for local
// development and tests.
type memUploader struct {
	mu    sync.RWMutex
	files map[string]archivedFile
}

func NewUploader() *memUploader {
	return &memUploader{files: make(map[string]archivedFile)}
}

func (u *memUploader) Upload(ctx context.Context, title, content string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	fileID := ulid.Make().String()
	u.files[fileID] = archivedFile{Title: title, Content: content}
	return fmt.Sprintf("https://archive.local/d/%s/view", fileID), nil
}

func (u *memUploader) Remove(ctx context.Context, fileID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.files[fileID]; !ok {
		return fmt.Errorf("archived file %s not found", fileID)
	}
	delete(u.files, fileID)
	return nil
}

// Len reports the number of stored files.
func (u *memUploader) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.files)
}
