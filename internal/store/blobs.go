package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/halvard/folio/internal/models"
)

// InsertBlob records metadata for an uploaded asset. The id comes from the
// blob store, which names the file on disk with it.
func (db *DB) InsertBlob(b models.Blob) error {
	_, err := db.conn.Exec(
		`INSERT INTO blobs (id, content_type, size, sha256, created_at) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.ContentType, b.Size, b.SHA256, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: insert blob: %w", err)
	}
	return nil
}

// GetBlob returns metadata for one blob reference.
func (db *DB) GetBlob(id string) (*models.Blob, error) {
	var b models.Blob
	err := db.conn.QueryRow(
		`SELECT id, content_type, size, sha256, created_at FROM blobs WHERE id = ?`, id).
		Scan(&b.ID, &b.ContentType, &b.Size, &b.SHA256, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("blobs", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get blob: %w", err)
	}
	return &b, nil
}

// DeleteBlob removes a blob metadata row.
func (db *DB) DeleteBlob(id string) error {
	return db.deleteRow("blobs", id)
}
