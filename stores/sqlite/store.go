package sqlite

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/KhadeerBasha1232/letter-backend/core"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db *sql.DB
}

// NewStore creates a new SQLite-based store.
func NewStore(dataSourceName string) *sqliteStore {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}

	letterTableStmt := `
	CREATE TABLE IF NOT EXISTS letters (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		archive_ref TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME
	);`
	if _, err = db.Exec(letterTableStmt); err != nil {
		log.Fatalf("failed to create letters table: %v", err)
	}

	return &sqliteStore{db}
}

func (s *sqliteStore) FindByID(ctx context.Context, id string) (*core.Letter, error) {
	log := logrus.WithField("letter_id", id)
	log.Debug("Retrieving letter by ID")

	letter := core.Letter{ID: id}
	err := s.db.QueryRowContext(ctx,
		"SELECT owner_id, title, content, status, archive_ref, created_at, updated_at FROM letters WHERE id = ?", id).
		Scan(&letter.OwnerID, &letter.Title, &letter.Content, &letter.Status, &letter.ArchiveRef, &letter.CreatedAt, &letter.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Warn("Letter with specified ID not found")
			return nil, core.ErrLetterNotFound
		}
		log.WithError(err).Error("Failed to retrieve letter")
		return nil, err
	}
	return &letter, nil
}

func (s *sqliteStore) Create(ctx context.Context, letter *core.Letter) (string, error) {
	id := ulid.Make().String()
	now := time.Now()
	status := letter.Status
	if status == "" {
		status = core.StatusDraft
	}
	log := logrus.WithFields(logrus.Fields{
		"letter_id":      id,
		"content_length": len(letter.Content),
	})

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO letters (id, owner_id, title, content, status, archive_ref, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, letter.OwnerID, letter.Title, letter.Content, status, letter.ArchiveRef, now, now)
	if err != nil {
		log.WithError(err).Error("Failed to create letter")
		return "", err
	}
	log.Info("Letter created successfully")
	return id, nil
}

func (s *sqliteStore) UpdateContent(ctx context.Context, id, content string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE letters SET content = ?, updated_at = ? WHERE id = ?", content, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrLetterNotFound
	}
	return nil
}

func (s *sqliteStore) Update(ctx context.Context, letter *core.Letter) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE letters SET title = ?, content = ?, status = ?, archive_ref = ?, updated_at = ? WHERE id = ?",
		letter.Title, letter.Content, letter.Status, letter.ArchiveRef, time.Now(), letter.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrLetterNotFound
	}
	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM letters WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrLetterNotFound
	}
	return nil
}

func (s *sqliteStore) ListByOwner(ctx context.Context, ownerID string) ([]*core.Letter, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, content, status, archive_ref, created_at, updated_at FROM letters WHERE owner_id = ?", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	letters := make([]*core.Letter, 0)
	for rows.Next() {
		letter := core.Letter{OwnerID: ownerID}
		if err := rows.Scan(&letter.ID, &letter.Title, &letter.Content, &letter.Status, &letter.ArchiveRef, &letter.CreatedAt, &letter.UpdatedAt); err != nil {
			return nil, err
		}
		letters = append(letters, &letter)
	}
	return letters, rows.Err()
}
