package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halvard/folio/internal/models"
)

const experienceCols = `id, icon_ref, workplace, work_title, description, start_date, end_date, is_current, created_at`

// CreateExperience appends a work-history record and returns its id.
func (db *DB) CreateExperience(e models.Experience) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO experiences (id, icon_ref, workplace, work_title, description, start_date, end_date, is_current, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, e.IconRef, e.Workplace, e.WorkTitle, e.Description, e.StartDate, e.EndDate,
		boolToInt(e.IsCurrentJob), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("store: insert experience: %w", err)
	}
	return id, nil
}

// GetExperience returns one experience by id.
func (db *DB) GetExperience(id string) (*models.Experience, error) {
	row := db.conn.QueryRow(`SELECT `+experienceCols+` FROM experiences WHERE id = ?`, id)
	e, err := scanExperience(row)
	if err == sql.ErrNoRows {
		return nil, notFound("experiences", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get experience: %w", err)
	}
	return e, nil
}

// LatestExperience returns the most recently created record. An empty
// collection is an explicit failure, not a silent no-op, so the
// update-latest path can report it.
func (db *DB) LatestExperience() (*models.Experience, error) {
	row := db.conn.QueryRow(`SELECT ` + experienceCols + ` FROM experiences ORDER BY created_at DESC, id DESC LIMIT 1`)
	e, err := scanExperience(row)
	if err == sql.ErrNoRows {
		return nil, notFound("experiences", "latest")
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest experience: %w", err)
	}
	return e, nil
}

// ListExperiences returns experiences newest-start first.
func (db *DB) ListExperiences() ([]models.Experience, error) {
	rows, err := db.conn.Query(`SELECT ` + experienceCols + ` FROM experiences ORDER BY start_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list experiences: %w", err)
	}
	defer rows.Close()

	var out []models.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// ExperiencePatch is a partial update for an experience record.
// ClearEndDate nulls end_date, used when a job becomes current.
type ExperiencePatch struct {
	IconRef      *string
	Workplace    *string
	WorkTitle    *string
	Description  *string
	StartDate    *int64
	EndDate      *int64
	ClearEndDate bool
	IsCurrentJob *bool
}

// UpdateExperience applies a partial patch to an experience.
func (db *DB) UpdateExperience(id string, p ExperiencePatch) error {
	var sets []set
	if p.IconRef != nil {
		sets = append(sets, set{"icon_ref", *p.IconRef})
	}
	if p.Workplace != nil {
		sets = append(sets, set{"workplace", *p.Workplace})
	}
	if p.WorkTitle != nil {
		sets = append(sets, set{"work_title", *p.WorkTitle})
	}
	if p.Description != nil {
		sets = append(sets, set{"description", *p.Description})
	}
	if p.StartDate != nil {
		sets = append(sets, set{"start_date", *p.StartDate})
	}
	if p.ClearEndDate {
		sets = append(sets, set{"end_date", nil})
	} else if p.EndDate != nil {
		sets = append(sets, set{"end_date", *p.EndDate})
	}
	if p.IsCurrentJob != nil {
		sets = append(sets, set{"is_current", boolToInt(*p.IsCurrentJob)})
	}
	return db.patch("experiences", id, sets)
}

// DeleteExperience removes an experience record. Blob cleanup is the
// content layer's compound operation.
func (db *DB) DeleteExperience(id string) error {
	return db.deleteRow("experiences", id)
}

func scanExperience(r rowScanner) (*models.Experience, error) {
	var e models.Experience
	var end sql.NullInt64
	var current int
	err := r.Scan(&e.ID, &e.IconRef, &e.Workplace, &e.WorkTitle, &e.Description,
		&e.StartDate, &end, &current, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if end.Valid {
		v := end.Int64
		e.EndDate = &v
	}
	e.IsCurrentJob = current != 0
	return &e, nil
}
