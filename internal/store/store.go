// Package store provides the SQLite-backed entity collections behind the
// content service. The store persists well-typed payloads as given; all
// constraint checking lives in the content layer's write path.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/halvard/folio/internal/apperr"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS headers (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS introductions (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	header      TEXT NOT NULL,
	description TEXT NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS section_copies (
	id          TEXT PRIMARY KEY,
	section_key TEXT NOT NULL,
	title       TEXT NOT NULL,
	header      TEXT NOT NULL,
	description TEXT NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_section_copies_key ON section_copies(section_key);

CREATE TABLE IF NOT EXISTS skills (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	link        TEXT NOT NULL,
	icon_url    TEXT NOT NULL DEFAULT '',
	icon_ref    TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id               TEXT PRIMARY KEY,
	image_ref        TEXT NOT NULL,
	card_title       TEXT NOT NULL,
	card_description TEXT NOT NULL,
	tag              TEXT NOT NULL DEFAULT '',
	github_link      TEXT NOT NULL,
	website_link     TEXT NOT NULL DEFAULT '',
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME
);

CREATE TABLE IF NOT EXISTS offerings (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	icon_ref         TEXT NOT NULL,
	subtitle         TEXT NOT NULL DEFAULT '',
	badge_text       TEXT NOT NULL DEFAULT '',
	accent_color     TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL,
	key_features     TEXT NOT NULL DEFAULT '',
	technologies     TEXT NOT NULL DEFAULT '',
	experience_level TEXT NOT NULL,
	project_count    INTEGER NOT NULL DEFAULT 0,
	cta_text         TEXT NOT NULL,
	cta_link         TEXT NOT NULL,
	starting_price   REAL,
	currency         TEXT NOT NULL DEFAULT '',
	price_type       TEXT NOT NULL DEFAULT '',
	delivery_time    TEXT NOT NULL DEFAULT '',
	category         TEXT NOT NULL,
	display_order    INTEGER NOT NULL DEFAULT 0,
	is_active        INTEGER NOT NULL DEFAULT 1,
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME
);

CREATE INDEX IF NOT EXISTS idx_offerings_category ON offerings(category);

CREATE TABLE IF NOT EXISTS experiences (
	id          TEXT PRIMARY KEY,
	icon_ref    TEXT NOT NULL,
	workplace   TEXT NOT NULL,
	work_title  TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	start_date  INTEGER NOT NULL,
	end_date    INTEGER,
	is_current  INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS technologies (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	icon       TEXT NOT NULL,
	is_visible INTEGER NOT NULL DEFAULT 1,
	ord        INTEGER,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS blobs (
	id           TEXT PRIMARY KEY,
	content_type TEXT NOT NULL,
	size         INTEGER NOT NULL,
	sha256       TEXT NOT NULL,
	created_at   DATETIME NOT NULL
);
`

// DB wraps a sql.DB with entity collection operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// set is one column assignment in a dynamically built UPDATE.
type set struct {
	col string
	val any
}

// patch runs a partial update against table for id. Absent columns stay
// untouched; a patch with no assignments is a no-op that still reports
// whether the row exists.
func (db *DB) patch(table, id string, sets []set) error {
	if len(sets) == 0 {
		var one int
		err := db.conn.QueryRow(fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ?`, table), id).Scan(&one)
		if err == sql.ErrNoRows {
			return notFound(table, id)
		}
		return err
	}

	cols := make([]string, len(sets))
	args := make([]any, 0, len(sets)+1)
	for i, s := range sets {
		cols[i] = s.col + " = ?"
		args = append(args, s.val)
	}
	args = append(args, id)

	res, err := db.conn.Exec(
		fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, table, strings.Join(cols, ", ")), args...)
	if err != nil {
		return fmt.Errorf("store: update %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update %s: %w", table, err)
	}
	if n == 0 {
		return notFound(table, id)
	}
	return nil
}

func notFound(table, id string) error {
	return fmt.Errorf("store: %s %s: %w", table, id, apperr.ErrNotFound)
}

// deleteRow removes one row by id, reporting not-found for missing ids.
func (db *DB) deleteRow(table, id string) error {
	res, err := db.conn.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("store: delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete from %s: %w", table, err)
	}
	if n == 0 {
		return notFound(table, id)
	}
	return nil
}
