package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halvard/folio/internal/models"
)

const offeringCols = `id, title, icon_ref, subtitle, badge_text, accent_color, description,
	key_features, technologies, experience_level, project_count, cta_text, cta_link,
	starting_price, currency, price_type, delivery_time, category, display_order,
	is_active, created_at, updated_at`

// OfferingQuery narrows an offering listing. ActiveOnly is set by public
// reads; admin listings leave it off and see deactivated records too.
type OfferingQuery struct {
	Category   models.Category
	ActiveOnly bool
}

// CreateOffering appends an offering record and returns its id.
func (db *DB) CreateOffering(o models.Offering) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO offerings (id, title, icon_ref, subtitle, badge_text, accent_color, description,
			key_features, technologies, experience_level, project_count, cta_text, cta_link,
			starting_price, currency, price_type, delivery_time, category, display_order, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, o.Title, o.IconRef, o.Subtitle, o.BadgeText, o.AccentColor, o.Description,
		o.KeyFeatures, o.Technologies, string(o.ExperienceLevel), o.ProjectCount, o.CTAText, o.CTALink,
		o.StartingPrice, o.Currency, string(o.PriceType), o.DeliveryTime, string(o.Category),
		o.DisplayOrder, boolToInt(o.IsActive), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("store: insert offering: %w", err)
	}
	return id, nil
}

// GetOffering returns one offering by id.
func (db *DB) GetOffering(id string) (*models.Offering, error) {
	row := db.conn.QueryRow(`SELECT `+offeringCols+` FROM offerings WHERE id = ?`, id)
	o, err := scanOffering(row)
	if err == sql.ErrNoRows {
		return nil, notFound("offerings", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get offering: %w", err)
	}
	return o, nil
}

// ListOfferings returns offerings sorted by display order, then recency.
func (db *DB) ListOfferings(q OfferingQuery) ([]models.Offering, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if q.ActiveOnly {
		where += ` AND is_active = 1`
	}
	if q.Category != "" {
		where += ` AND category = ?`
		args = append(args, string(q.Category))
	}

	rows, err := db.conn.Query(
		`SELECT `+offeringCols+` FROM offerings`+where+` ORDER BY display_order ASC, created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list offerings: %w", err)
	}
	defer rows.Close()

	var out []models.Offering
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// OfferingPatch is a partial update for an offering record.
type OfferingPatch struct {
	Title           *string
	IconRef         *string
	Subtitle        *string
	BadgeText       *string
	AccentColor     *string
	Description     *string
	KeyFeatures     *string
	Technologies    *string
	ExperienceLevel *models.ExperienceLevel
	ProjectCount    *int
	CTAText         *string
	CTALink         *string
	StartingPrice   *float64
	Currency        *string
	PriceType       *models.PriceType
	DeliveryTime    *string
	Category        *models.Category
	DisplayOrder    *int
	IsActive        *bool
}

// UpdateOffering applies a partial patch and stamps updated_at
// unconditionally.
func (db *DB) UpdateOffering(id string, p OfferingPatch) error {
	sets := []set{{"updated_at", time.Now().UTC()}}
	if p.Title != nil {
		sets = append(sets, set{"title", *p.Title})
	}
	if p.IconRef != nil {
		sets = append(sets, set{"icon_ref", *p.IconRef})
	}
	if p.Subtitle != nil {
		sets = append(sets, set{"subtitle", *p.Subtitle})
	}
	if p.BadgeText != nil {
		sets = append(sets, set{"badge_text", *p.BadgeText})
	}
	if p.AccentColor != nil {
		sets = append(sets, set{"accent_color", *p.AccentColor})
	}
	if p.Description != nil {
		sets = append(sets, set{"description", *p.Description})
	}
	if p.KeyFeatures != nil {
		sets = append(sets, set{"key_features", *p.KeyFeatures})
	}
	if p.Technologies != nil {
		sets = append(sets, set{"technologies", *p.Technologies})
	}
	if p.ExperienceLevel != nil {
		sets = append(sets, set{"experience_level", string(*p.ExperienceLevel)})
	}
	if p.ProjectCount != nil {
		sets = append(sets, set{"project_count", *p.ProjectCount})
	}
	if p.CTAText != nil {
		sets = append(sets, set{"cta_text", *p.CTAText})
	}
	if p.CTALink != nil {
		sets = append(sets, set{"cta_link", *p.CTALink})
	}
	if p.StartingPrice != nil {
		sets = append(sets, set{"starting_price", *p.StartingPrice})
	}
	if p.Currency != nil {
		sets = append(sets, set{"currency", *p.Currency})
	}
	if p.PriceType != nil {
		sets = append(sets, set{"price_type", string(*p.PriceType)})
	}
	if p.DeliveryTime != nil {
		sets = append(sets, set{"delivery_time", *p.DeliveryTime})
	}
	if p.Category != nil {
		sets = append(sets, set{"category", string(*p.Category)})
	}
	if p.DisplayOrder != nil {
		sets = append(sets, set{"display_order", *p.DisplayOrder})
	}
	if p.IsActive != nil {
		sets = append(sets, set{"is_active", boolToInt(*p.IsActive)})
	}
	return db.patch("offerings", id, sets)
}

// DeleteOffering hard-deletes an offering row. The content layer's Delete
// is the soft variant; this backs its Purge operation.
func (db *DB) DeleteOffering(id string) error {
	return db.deleteRow("offerings", id)
}

func scanOffering(r rowScanner) (*models.Offering, error) {
	var o models.Offering
	var price sql.NullFloat64
	var updated sql.NullTime
	var active int
	err := r.Scan(&o.ID, &o.Title, &o.IconRef, &o.Subtitle, &o.BadgeText, &o.AccentColor, &o.Description,
		&o.KeyFeatures, &o.Technologies, &o.ExperienceLevel, &o.ProjectCount, &o.CTAText, &o.CTALink,
		&price, &o.Currency, &o.PriceType, &o.DeliveryTime, &o.Category, &o.DisplayOrder,
		&active, &o.CreatedAt, &updated)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		v := price.Float64
		o.StartingPrice = &v
	}
	if updated.Valid {
		t := updated.Time
		o.UpdatedAt = &t
	}
	o.IsActive = active != 0
	return &o, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
