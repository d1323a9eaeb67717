package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halvard/folio/internal/models"
)

const technologyCols = `id, name, icon, is_visible, ord, created_at`

// CreateTechnology appends a technology record and returns its id.
func (db *DB) CreateTechnology(t models.Technology) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO technologies (id, name, icon, is_visible, ord, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, t.Name, t.Icon, boolToInt(t.IsVisible), t.Ord, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("store: insert technology: %w", err)
	}
	return id, nil
}

// GetTechnology returns one technology by id.
func (db *DB) GetTechnology(id string) (*models.Technology, error) {
	row := db.conn.QueryRow(`SELECT `+technologyCols+` FROM technologies WHERE id = ?`, id)
	t, err := scanTechnology(row)
	if err == sql.ErrNoRows {
		return nil, notFound("technologies", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get technology: %w", err)
	}
	return t, nil
}

// TechnologyByName returns the technology with the given name, used by the
// seed importer for natural-key upserts.
func (db *DB) TechnologyByName(name string) (*models.Technology, error) {
	row := db.conn.QueryRow(`SELECT `+technologyCols+` FROM technologies WHERE name = ? LIMIT 1`, name)
	t, err := scanTechnology(row)
	if err == sql.ErrNoRows {
		return nil, notFound("technologies", name)
	}
	if err != nil {
		return nil, fmt.Errorf("store: technology by name: %w", err)
	}
	return t, nil
}

// ListTechnologies returns technologies ordered by ord ascending with
// missing ord treated as 0; visibleOnly narrows to is_visible records.
func (db *DB) ListTechnologies(visibleOnly bool) ([]models.Technology, error) {
	where := ""
	if visibleOnly {
		where = ` WHERE is_visible = 1`
	}
	rows, err := db.conn.Query(
		`SELECT ` + technologyCols + ` FROM technologies` + where + ` ORDER BY COALESCE(ord, 0) ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("store: list technologies: %w", err)
	}
	defer rows.Close()

	var out []models.Technology
	for rows.Next() {
		t, err := scanTechnology(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// TechnologyPatch is a partial update for a technology record.
type TechnologyPatch struct {
	Name      *string
	Icon      *string
	IsVisible *bool
	Ord       *int
}

// UpdateTechnology applies a partial patch to a technology.
func (db *DB) UpdateTechnology(id string, p TechnologyPatch) error {
	var sets []set
	if p.Name != nil {
		sets = append(sets, set{"name", *p.Name})
	}
	if p.Icon != nil {
		sets = append(sets, set{"icon", *p.Icon})
	}
	if p.IsVisible != nil {
		sets = append(sets, set{"is_visible", boolToInt(*p.IsVisible)})
	}
	if p.Ord != nil {
		sets = append(sets, set{"ord", *p.Ord})
	}
	return db.patch("technologies", id, sets)
}

// DeleteTechnology removes a technology record.
func (db *DB) DeleteTechnology(id string) error {
	return db.deleteRow("technologies", id)
}

func scanTechnology(r rowScanner) (*models.Technology, error) {
	var t models.Technology
	var visible int
	var ord sql.NullInt64
	err := r.Scan(&t.ID, &t.Name, &t.Icon, &visible, &ord, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.IsVisible = visible != 0
	if ord.Valid {
		v := int(ord.Int64)
		t.Ord = &v
	}
	return &t, nil
}
