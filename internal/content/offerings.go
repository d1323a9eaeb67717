package content

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/halvard/folio/internal/fields"
	"github.com/halvard/folio/internal/models"
	"github.com/halvard/folio/internal/store"
)

// OfferingInput carries the fields for creating a service offering.
type OfferingInput struct {
	Title           string                 `json:"title"`
	IconRef         string                 `json:"icon_ref"`
	Subtitle        string                 `json:"subtitle"`
	BadgeText       string                 `json:"badge_text"`
	AccentColor     string                 `json:"accent_color"`
	Description     string                 `json:"description"`
	KeyFeatures     []string               `json:"key_features"`
	Technologies    []string               `json:"technologies"`
	ExperienceLevel models.ExperienceLevel `json:"experience_level"`
	ProjectCount    int                    `json:"project_count"`
	CTAText         string                 `json:"cta_text"`
	CTALink         string                 `json:"cta_link"`
	StartingPrice   *float64               `json:"starting_price"`
	Currency        string                 `json:"currency"`
	PriceType       models.PriceType       `json:"price_type"`
	DeliveryTime    string                 `json:"delivery_time"`
	Category        models.Category        `json:"category"`
	DisplayOrder    int                    `json:"display_order"`
}

// Validate checks the offering constraints, including every closed
// enumeration.
func (in OfferingInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.IconRef, validation.Required),
		validation.Field(&in.Subtitle, validation.Length(0, 200)),
		validation.Field(&in.Description, validation.Required, validation.Length(1, 4000)),
		validation.Field(&in.ExperienceLevel, validation.Required,
			validation.In(models.LevelBeginner, models.LevelIntermediate, models.LevelExpert)),
		validation.Field(&in.ProjectCount, validation.Min(0)),
		validation.Field(&in.CTAText, validation.Required, validation.Length(1, 80)),
		validation.Field(&in.CTALink, validation.Required, is.URL),
		validation.Field(&in.PriceType,
			validation.In(models.PricePerProject, models.PricePerHour, models.PriceFixed)),
		validation.Field(&in.Category, validation.Required,
			validation.In(models.CategoryDesign, models.CategoryDevelopment, models.CategoryConsulting)),
		validation.Field(&in.DisplayOrder, validation.Min(0)),
	)
	if err != nil {
		return wrap(err)
	}
	lerr := validation.Errors{
		"key_features": requiredList(in.KeyFeatures),
		"technologies": listRule(in.Technologies),
	}.Filter()
	if lerr != nil {
		return wrap(lerr)
	}
	if in.StartingPrice != nil && *in.StartingPrice < 0 {
		return wrap(validation.Errors{
			"starting_price": validation.NewError("validation_min", "must be no less than 0"),
		})
	}
	return nil
}

// CreateOffering validates and appends an offering with isActive defaulted
// on. A failed insert after the icon upload cleans up the orphaned blob.
func (s *Service) CreateOffering(_ context.Context, in OfferingInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	id, err := s.db.CreateOffering(models.Offering{
		Title:           in.Title,
		IconRef:         in.IconRef,
		Subtitle:        in.Subtitle,
		BadgeText:       in.BadgeText,
		AccentColor:     in.AccentColor,
		Description:     in.Description,
		KeyFeatures:     fields.JoinBullets(in.KeyFeatures),
		Technologies:    fields.JoinCSV(in.Technologies),
		ExperienceLevel: in.ExperienceLevel,
		ProjectCount:    in.ProjectCount,
		CTAText:         in.CTAText,
		CTALink:         in.CTALink,
		StartingPrice:   in.StartingPrice,
		Currency:        in.Currency,
		PriceType:       in.PriceType,
		DeliveryTime:    in.DeliveryTime,
		Category:        in.Category,
		DisplayOrder:    in.DisplayOrder,
		IsActive:        true,
	})
	if err != nil {
		s.cleanupBlob(in.IconRef)
		return "", err
	}
	s.emit("offering", "created", id)
	return id, nil
}

// GetOffering returns one offering with icon resolved and lists split.
func (s *Service) GetOffering(_ context.Context, id string) (*models.Offering, error) {
	o, err := s.db.GetOffering(id)
	if err != nil {
		return nil, err
	}
	s.decorateOffering(o)
	return o, nil
}

// ListOfferings is the public read: active records only, optionally
// narrowed to one category, sorted by display order.
func (s *Service) ListOfferings(_ context.Context, category models.Category) ([]models.Offering, error) {
	return s.listOfferings(store.OfferingQuery{Category: category, ActiveOnly: true})
}

// AdminListOfferings returns every offering, deactivated ones included.
func (s *Service) AdminListOfferings(_ context.Context) ([]models.Offering, error) {
	return s.listOfferings(store.OfferingQuery{})
}

func (s *Service) listOfferings(q store.OfferingQuery) ([]models.Offering, error) {
	offerings, err := s.db.ListOfferings(q)
	if err != nil {
		return nil, err
	}
	for i := range offerings {
		s.decorateOffering(&offerings[i])
	}
	return offerings, nil
}

// OfferingPatch is the mutable subset of an offering.
type OfferingPatch struct {
	Title           *string                 `json:"title"`
	IconRef         *string                 `json:"icon_ref"`
	Subtitle        *string                 `json:"subtitle"`
	BadgeText       *string                 `json:"badge_text"`
	AccentColor     *string                 `json:"accent_color"`
	Description     *string                 `json:"description"`
	KeyFeatures     *[]string               `json:"key_features"`
	Technologies    *[]string               `json:"technologies"`
	ExperienceLevel *models.ExperienceLevel `json:"experience_level"`
	ProjectCount    *int                    `json:"project_count"`
	CTAText         *string                 `json:"cta_text"`
	CTALink         *string                 `json:"cta_link"`
	StartingPrice   *float64                `json:"starting_price"`
	Currency        *string                 `json:"currency"`
	PriceType       *models.PriceType       `json:"price_type"`
	DeliveryTime    *string                 `json:"delivery_time"`
	Category        *models.Category        `json:"category"`
	DisplayOrder    *int                    `json:"display_order"`
	IsActive        *bool                   `json:"is_active"`
}

// UpdateOffering validates supplied fields and applies a partial patch;
// updatedAt is stamped on every call.
func (s *Service) UpdateOffering(_ context.Context, id string, p OfferingPatch) error {
	verr := validation.Errors{
		"title":       lengthIfSet(p.Title, 1, 120),
		"description": lengthIfSet(p.Description, 1, 4000),
		"cta_text":    lengthIfSet(p.CTAText, 1, 80),
		"cta_link":    urlIfSet(p.CTALink),
	}
	if p.ExperienceLevel != nil {
		verr["experience_level"] = validation.Validate(*p.ExperienceLevel,
			validation.In(models.LevelBeginner, models.LevelIntermediate, models.LevelExpert))
	}
	if p.PriceType != nil {
		verr["price_type"] = validation.Validate(*p.PriceType,
			validation.In(models.PricePerProject, models.PricePerHour, models.PriceFixed))
	}
	if p.Category != nil {
		verr["category"] = validation.Validate(*p.Category,
			validation.In(models.CategoryDesign, models.CategoryDevelopment, models.CategoryConsulting))
	}
	if p.KeyFeatures != nil {
		verr["key_features"] = requiredList(*p.KeyFeatures)
	}
	if p.Technologies != nil {
		verr["technologies"] = listRule(*p.Technologies)
	}
	if err := wrap(verr.Filter()); err != nil {
		return err
	}

	sp := store.OfferingPatch{
		Title:           p.Title,
		IconRef:         p.IconRef,
		Subtitle:        p.Subtitle,
		BadgeText:       p.BadgeText,
		AccentColor:     p.AccentColor,
		Description:     p.Description,
		ExperienceLevel: p.ExperienceLevel,
		ProjectCount:    p.ProjectCount,
		CTAText:         p.CTAText,
		CTALink:         p.CTALink,
		StartingPrice:   p.StartingPrice,
		Currency:        p.Currency,
		PriceType:       p.PriceType,
		DeliveryTime:    p.DeliveryTime,
		Category:        p.Category,
		DisplayOrder:    p.DisplayOrder,
		IsActive:        p.IsActive,
	}
	if p.KeyFeatures != nil {
		joined := fields.JoinBullets(*p.KeyFeatures)
		sp.KeyFeatures = &joined
	}
	if p.Technologies != nil {
		joined := fields.JoinCSV(*p.Technologies)
		sp.Technologies = &joined
	}
	if err := s.db.UpdateOffering(id, sp); err != nil {
		return err
	}
	s.emit("offering", "updated", id)
	return nil
}

// DeleteOffering is the soft delete: it flips isActive off so public reads
// stop returning the record while the admin table keeps it.
func (s *Service) DeleteOffering(_ context.Context, id string) error {
	inactive := false
	if err := s.db.UpdateOffering(id, store.OfferingPatch{IsActive: &inactive}); err != nil {
		return err
	}
	s.emit("offering", "deactivated", id)
	return nil
}

// PurgeOffering hard-deletes an offering and its icon blob.
func (s *Service) PurgeOffering(_ context.Context, id string) error {
	o, err := s.db.GetOffering(id)
	if err != nil {
		return err
	}
	if err := s.db.DeleteOffering(id); err != nil {
		return err
	}
	s.cleanupBlob(o.IconRef)
	s.emit("offering", "deleted", id)
	return nil
}

func (s *Service) decorateOffering(o *models.Offering) {
	o.IconURL = s.resolve(o.IconRef)
	o.Features = fields.SplitBullets(o.KeyFeatures)
	o.TechList = fields.SplitCSV(o.Technologies)
}
