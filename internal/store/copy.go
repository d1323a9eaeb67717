package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halvard/folio/internal/models"
)

// Singleton-like collections: header, introduction and per-section copy all
// follow the same convention — the most recently created record wins, and
// latest-reads surface it.

// CreateHeader appends a header record and returns its id.
func (db *DB) CreateHeader(name, description string) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO headers (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
		id, name, description, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("store: insert header: %w", err)
	}
	return id, nil
}

// LatestHeader returns the most recently created header.
func (db *DB) LatestHeader() (*models.Header, error) {
	var h models.Header
	err := db.conn.QueryRow(
		`SELECT id, name, description, created_at FROM headers ORDER BY created_at DESC, id DESC LIMIT 1`).
		Scan(&h.ID, &h.Name, &h.Description, &h.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("headers", "latest")
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest header: %w", err)
	}
	return &h, nil
}

// ListHeaders returns every header, newest first.
func (db *DB) ListHeaders() ([]models.Header, error) {
	rows, err := db.conn.Query(
		`SELECT id, name, description, created_at FROM headers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list headers: %w", err)
	}
	defer rows.Close()

	var out []models.Header
	for rows.Next() {
		var h models.Header
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// HeaderPatch is a partial update for a header record.
type HeaderPatch struct {
	Name        *string
	Description *string
}

// UpdateHeader applies a partial patch to a header.
func (db *DB) UpdateHeader(id string, p HeaderPatch) error {
	var sets []set
	if p.Name != nil {
		sets = append(sets, set{"name", *p.Name})
	}
	if p.Description != nil {
		sets = append(sets, set{"description", *p.Description})
	}
	return db.patch("headers", id, sets)
}

// DeleteHeader removes a header record.
func (db *DB) DeleteHeader(id string) error {
	return db.deleteRow("headers", id)
}

// CreateIntroduction appends an introduction record and returns its id.
func (db *DB) CreateIntroduction(title, header, description string) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO introductions (id, title, header, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, title, header, description, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("store: insert introduction: %w", err)
	}
	return id, nil
}

// LatestIntroduction returns the most recently created introduction.
func (db *DB) LatestIntroduction() (*models.Introduction, error) {
	var in models.Introduction
	err := db.conn.QueryRow(
		`SELECT id, title, header, description, created_at FROM introductions ORDER BY created_at DESC, id DESC LIMIT 1`).
		Scan(&in.ID, &in.Title, &in.Header, &in.Description, &in.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("introductions", "latest")
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest introduction: %w", err)
	}
	return &in, nil
}

// IntroductionPatch is a partial update for an introduction record.
type IntroductionPatch struct {
	Title       *string
	Header      *string
	Description *string
}

// UpdateIntroduction applies a partial patch to an introduction.
func (db *DB) UpdateIntroduction(id string, p IntroductionPatch) error {
	var sets []set
	if p.Title != nil {
		sets = append(sets, set{"title", *p.Title})
	}
	if p.Header != nil {
		sets = append(sets, set{"header", *p.Header})
	}
	if p.Description != nil {
		sets = append(sets, set{"description", *p.Description})
	}
	return db.patch("introductions", id, sets)
}

// DeleteIntroduction removes an introduction record.
func (db *DB) DeleteIntroduction(id string) error {
	return db.deleteRow("introductions", id)
}

// CreateSectionCopy appends a section copy record and returns its id.
func (db *DB) CreateSectionCopy(key models.SectionKey, title, header, description string) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO section_copies (id, section_key, title, header, description, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(key), title, header, description, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("store: insert section copy: %w", err)
	}
	return id, nil
}

// LatestSectionCopy returns the most recent copy record for a section key.
func (db *DB) LatestSectionCopy(key models.SectionKey) (*models.SectionCopy, error) {
	var sc models.SectionCopy
	err := db.conn.QueryRow(
		`SELECT id, section_key, title, header, description, created_at
		 FROM section_copies WHERE section_key = ? ORDER BY created_at DESC, id DESC LIMIT 1`, string(key)).
		Scan(&sc.ID, &sc.SectionKey, &sc.Title, &sc.Header, &sc.Description, &sc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("section_copies", string(key))
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest section copy: %w", err)
	}
	return &sc, nil
}

// ListSectionCopies returns every copy record, newest first.
func (db *DB) ListSectionCopies() ([]models.SectionCopy, error) {
	rows, err := db.conn.Query(
		`SELECT id, section_key, title, header, description, created_at
		 FROM section_copies ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list section copies: %w", err)
	}
	defer rows.Close()

	var out []models.SectionCopy
	for rows.Next() {
		var sc models.SectionCopy
		if err := rows.Scan(&sc.ID, &sc.SectionKey, &sc.Title, &sc.Header, &sc.Description, &sc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// SectionCopyPatch is a partial update for a section copy record.
type SectionCopyPatch struct {
	Title       *string
	Header      *string
	Description *string
}

// UpdateSectionCopy applies a partial patch to a section copy record.
func (db *DB) UpdateSectionCopy(id string, p SectionCopyPatch) error {
	var sets []set
	if p.Title != nil {
		sets = append(sets, set{"title", *p.Title})
	}
	if p.Header != nil {
		sets = append(sets, set{"header", *p.Header})
	}
	if p.Description != nil {
		sets = append(sets, set{"description", *p.Description})
	}
	return db.patch("section_copies", id, sets)
}

// DeleteSectionCopy removes a section copy record.
func (db *DB) DeleteSectionCopy(id string) error {
	return db.deleteRow("section_copies", id)
}
