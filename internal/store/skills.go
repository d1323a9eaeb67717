package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halvard/folio/internal/models"
)

// CreateSkill appends a skill record and returns its id. Exactly-one-icon
// enforcement happens upstream; the store persists what it is given.
func (db *DB) CreateSkill(s models.Skill) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO skills (id, title, description, link, icon_url, icon_ref, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, s.Title, s.Description, s.Link, s.IconURL, s.IconRef, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("store: insert skill: %w", err)
	}
	return id, nil
}

// GetSkill returns one skill by id.
func (db *DB) GetSkill(id string) (*models.Skill, error) {
	var s models.Skill
	err := db.conn.QueryRow(
		`SELECT id, title, description, link, icon_url, icon_ref, created_at FROM skills WHERE id = ?`, id).
		Scan(&s.ID, &s.Title, &s.Description, &s.Link, &s.IconURL, &s.IconRef, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("skills", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get skill: %w", err)
	}
	return &s, nil
}

// SkillByTitle returns the skill with the given title, used by the seed
// importer for natural-key upserts.
func (db *DB) SkillByTitle(title string) (*models.Skill, error) {
	var s models.Skill
	err := db.conn.QueryRow(
		`SELECT id, title, description, link, icon_url, icon_ref, created_at FROM skills WHERE title = ? LIMIT 1`, title).
		Scan(&s.ID, &s.Title, &s.Description, &s.Link, &s.IconURL, &s.IconRef, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("skills", title)
	}
	if err != nil {
		return nil, fmt.Errorf("store: skill by title: %w", err)
	}
	return &s, nil
}

// ListSkills returns every skill, oldest first.
func (db *DB) ListSkills() ([]models.Skill, error) {
	rows, err := db.conn.Query(
		`SELECT id, title, description, link, icon_url, icon_ref, created_at FROM skills ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("store: list skills: %w", err)
	}
	defer rows.Close()

	var out []models.Skill
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Link, &s.IconURL, &s.IconRef, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SkillPatch is a partial update for a skill record.
type SkillPatch struct {
	Title       *string
	Description *string
	Link        *string
	IconURL     *string
	IconRef     *string
}

// UpdateSkill applies a partial patch to a skill.
func (db *DB) UpdateSkill(id string, p SkillPatch) error {
	var sets []set
	if p.Title != nil {
		sets = append(sets, set{"title", *p.Title})
	}
	if p.Description != nil {
		sets = append(sets, set{"description", *p.Description})
	}
	if p.Link != nil {
		sets = append(sets, set{"link", *p.Link})
	}
	if p.IconURL != nil {
		sets = append(sets, set{"icon_url", *p.IconURL})
	}
	if p.IconRef != nil {
		sets = append(sets, set{"icon_ref", *p.IconRef})
	}
	return db.patch("skills", id, sets)
}

// DeleteSkill removes a skill record.
func (db *DB) DeleteSkill(id string) error {
	return db.deleteRow("skills", id)
}
