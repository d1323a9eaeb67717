// Package models defines the domain types for Folio.
package models

import "time"

// Header is the landing headline copy. The collection is singleton-like:
// the most recently created record is "the" header.
type Header struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Introduction is the hero section copy, same singleton convention as Header.
type Introduction struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Header      string    `json:"header"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SectionKey identifies which page section a SectionCopy record belongs to.
type SectionKey string

// Section keys.
const (
	SectionAbout      SectionKey = "about"
	SectionExperience SectionKey = "experience"
	SectionSkills     SectionKey = "skills"
)

// SectionKeys lists every valid section key.
var SectionKeys = []SectionKey{SectionAbout, SectionExperience, SectionSkills}

// SectionCopy holds the title/header/description copy for one page section.
// Each section reads the latest record tagged with its key.
type SectionCopy struct {
	ID          string     `json:"id"`
	SectionKey  SectionKey `json:"section_key"`
	Title       string     `json:"title"`
	Header      string     `json:"header"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Skill is one entry in the skills grid. Exactly one icon source is set:
// IconRef (a blob reference, which wins when both are present) or IconURL
// (an external image URL). Icon carries the resolved, fetchable URL at read
// time and is never stored.
type Skill struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	IconURL     string    `json:"icon_url,omitempty"`
	IconRef     string    `json:"icon_ref,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Project is a portfolio project card. Tag is a comma-joined list in
// storage; the API boundary splits and joins it. ImageURL is resolved from
// ImageRef at read time.
type Project struct {
	ID              string     `json:"id"`
	ImageRef        string     `json:"image_ref"`
	ImageURL        string     `json:"image_url,omitempty"`
	CardTitle       string     `json:"card_title"`
	CardDescription string     `json:"card_description"`
	Tag             string     `json:"-"`
	Tags            []string   `json:"tags"`
	GithubLink      string     `json:"github_link"`
	WebsiteLink     string     `json:"website_link,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ExperienceLevel is the closed proficiency enumeration for offerings.
type ExperienceLevel string

// Experience levels.
const (
	LevelBeginner     ExperienceLevel = "Beginner"
	LevelIntermediate ExperienceLevel = "Intermediate"
	LevelExpert       ExperienceLevel = "Expert"
)

// PriceType is the closed pricing-unit enumeration for offerings.
type PriceType string

// Price types.
const (
	PricePerProject PriceType = "project"
	PricePerHour    PriceType = "hour"
	PriceFixed      PriceType = "fixed"
)

// Category is the closed offering-category enumeration.
type Category string

// Categories.
const (
	CategoryDesign      Category = "design"
	CategoryDevelopment Category = "development"
	CategoryConsulting  Category = "consulting"
)

// Offering is a service card on the services page. KeyFeatures is a
// bullet-joined list and Technologies a comma-joined list in storage; the
// API boundary splits and joins them. Deleting an offering flips IsActive
// off; public listings filter on it, admin listings do not.
type Offering struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	IconRef         string          `json:"icon_ref"`
	IconURL         string          `json:"icon_url,omitempty"`
	Subtitle        string          `json:"subtitle,omitempty"`
	BadgeText       string          `json:"badge_text,omitempty"`
	AccentColor     string          `json:"accent_color,omitempty"`
	Description     string          `json:"description"`
	KeyFeatures     string          `json:"-"`
	Features        []string        `json:"key_features"`
	Technologies    string          `json:"-"`
	TechList        []string        `json:"technologies"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	ProjectCount    int             `json:"project_count"`
	CTAText         string          `json:"cta_text"`
	CTALink         string          `json:"cta_link"`
	StartingPrice   *float64        `json:"starting_price,omitempty"`
	Currency        string          `json:"currency,omitempty"`
	PriceType       PriceType       `json:"price_type,omitempty"`
	DeliveryTime    string          `json:"delivery_time,omitempty"`
	Category        Category        `json:"category"`
	DisplayOrder    int             `json:"display_order"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

// Experience is one work-history entry. Description is a bullet-joined list
// in storage. StartDate and EndDate are epoch milliseconds. When
// IsCurrentJob is set, reads present EndDate as absent regardless of what
// is stored.
type Experience struct {
	ID           string    `json:"id"`
	IconRef      string    `json:"icon_ref"`
	IconURL      string    `json:"icon_url,omitempty"`
	Workplace    string    `json:"workplace"`
	WorkTitle    string    `json:"work_title"`
	Description  string    `json:"-"`
	Bullets      []string  `json:"description"`
	StartDate    int64     `json:"start_date"`
	EndDate      *int64    `json:"end_date,omitempty"`
	IsCurrentJob bool      `json:"is_current_job"`
	CreatedAt    time.Time `json:"created_at"`
}

// Technology is one entry in the technology strip. Icon is either a blob
// reference or a literal asset path; IconURL carries the resolved form at
// read time. Ord is a mutable ordering integer, missing values sort as 0.
type Technology struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	IconURL   string    `json:"icon_url,omitempty"`
	IsVisible bool      `json:"is_visible"`
	Ord       *int      `json:"order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Blob is the stored metadata for one uploaded binary asset.
type Blob struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	SHA256      string    `json:"sha256"`
	CreatedAt   time.Time `json:"created_at"`
}
