package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halvard/folio/internal/models"
)

const projectCols = `id, image_ref, card_title, card_description, tag, github_link, website_link, created_at, updated_at`

// ProjectQuery narrows and pages a project listing. Substring matches
// against card title and description. Offset doubles as the pagination
// cursor; zero Limit means no cap.
type ProjectQuery struct {
	Substring string
	Limit     int
	Offset    int
}

// CreateProject appends a project record and returns its id.
func (db *DB) CreateProject(p models.Project) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO projects (id, image_ref, card_title, card_description, tag, github_link, website_link, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.ImageRef, p.CardTitle, p.CardDescription, p.Tag, p.GithubLink, p.WebsiteLink, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("store: insert project: %w", err)
	}
	return id, nil
}

// GetProject returns one project by id.
func (db *DB) GetProject(id string) (*models.Project, error) {
	row := db.conn.QueryRow(`SELECT `+projectCols+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, notFound("projects", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get project: %w", err)
	}
	return p, nil
}

// ListProjects returns projects newest first, with optional substring
// filter and pagination. The second return value is the total match count
// before the window is applied.
func (db *DB) ListProjects(q ProjectQuery) ([]models.Project, int, error) {
	where := ""
	args := []any{}
	if q.Substring != "" {
		where = ` WHERE card_title LIKE ? OR card_description LIKE ?`
		pat := "%" + q.Substring + "%"
		args = append(args, pat, pat)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM projects`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count projects: %w", err)
	}

	query := `SELECT ` + projectCols + ` FROM projects` + where + ` ORDER BY created_at DESC, id DESC`
	if q.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, q.Limit, q.Offset)
	} else if q.Offset > 0 {
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, q.Offset)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list projects: %w", err)
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

// ProjectPatch is a partial update for a project record.
type ProjectPatch struct {
	ImageRef        *string
	CardTitle       *string
	CardDescription *string
	Tag             *string
	GithubLink      *string
	WebsiteLink     *string
}

// UpdateProject applies a partial patch and stamps updated_at
// unconditionally.
func (db *DB) UpdateProject(id string, p ProjectPatch) error {
	sets := []set{{"updated_at", time.Now().UTC()}}
	if p.ImageRef != nil {
		sets = append(sets, set{"image_ref", *p.ImageRef})
	}
	if p.CardTitle != nil {
		sets = append(sets, set{"card_title", *p.CardTitle})
	}
	if p.CardDescription != nil {
		sets = append(sets, set{"card_description", *p.CardDescription})
	}
	if p.Tag != nil {
		sets = append(sets, set{"tag", *p.Tag})
	}
	if p.GithubLink != nil {
		sets = append(sets, set{"github_link", *p.GithubLink})
	}
	if p.WebsiteLink != nil {
		sets = append(sets, set{"website_link", *p.WebsiteLink})
	}
	return db.patch("projects", id, sets)
}

// DeleteProject removes a project record.
func (db *DB) DeleteProject(id string) error {
	return db.deleteRow("projects", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(r rowScanner) (*models.Project, error) {
	var p models.Project
	var updated sql.NullTime
	err := r.Scan(&p.ID, &p.ImageRef, &p.CardTitle, &p.CardDescription, &p.Tag,
		&p.GithubLink, &p.WebsiteLink, &p.CreatedAt, &updated)
	if err != nil {
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		p.UpdatedAt = &t
	}
	return &p, nil
}
