package content

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/halvard/folio/internal/models"
	"github.com/halvard/folio/internal/store"
)

// SkillInput carries the fields for creating a skill. Exactly one icon
// source is required; when both are supplied the storage reference wins and
// the URL is discarded.
type SkillInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	IconURL     string `json:"icon_url"`
	IconRef     string `json:"icon_ref"`
}

// Validate checks the skill constraints including the one-of icon rule.
func (in SkillInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.Description, validation.Required, validation.Length(1, 2000)),
		validation.Field(&in.Link, validation.Required, is.URL),
		validation.Field(&in.IconURL, is.URL),
	)
	if err != nil {
		return wrap(err)
	}
	if in.IconURL == "" && in.IconRef == "" {
		return wrap(validation.Errors{
			"icon": validation.NewError("validation_icon_source", "either icon_url or icon_ref is required"),
		})
	}
	return nil
}

// CreateSkill validates and appends a skill record. A failed insert after
// an icon upload cleans up the now-orphaned blob.
func (s *Service) CreateSkill(_ context.Context, in SkillInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	sk := models.Skill{
		Title:       in.Title,
		Description: in.Description,
		Link:        in.Link,
		IconURL:     in.IconURL,
		IconRef:     in.IconRef,
	}
	if sk.IconRef != "" {
		sk.IconURL = ""
	}
	id, err := s.db.CreateSkill(sk)
	if err != nil {
		s.cleanupBlob(sk.IconRef)
		return "", err
	}
	s.emit("skill", "created", id)
	return id, nil
}

// GetSkill returns one skill with its icon resolved.
func (s *Service) GetSkill(_ context.Context, id string) (*models.Skill, error) {
	sk, err := s.db.GetSkill(id)
	if err != nil {
		return nil, err
	}
	s.decorateSkill(sk)
	return sk, nil
}

// ListSkills returns every skill with icons resolved, one resolution call
// per record.
func (s *Service) ListSkills(_ context.Context) ([]models.Skill, error) {
	skills, err := s.db.ListSkills()
	if err != nil {
		return nil, err
	}
	for i := range skills {
		s.decorateSkill(&skills[i])
	}
	return skills, nil
}

// SkillPatch is the mutable subset of a skill.
type SkillPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
	IconURL     *string `json:"icon_url"`
	IconRef     *string `json:"icon_ref"`
}

// UpdateSkill validates supplied fields and applies a partial patch. Icon
// patches are checked against the post-patch record so exactly one source
// survives; a displaced uploaded icon is deleted.
func (s *Service) UpdateSkill(_ context.Context, id string, p SkillPatch) error {
	err := wrap(validation.Errors{
		"title":       lengthIfSet(p.Title, 1, 120),
		"description": lengthIfSet(p.Description, 1, 2000),
		"link":        urlIfSet(p.Link),
		"icon_url":    urlIfSet(p.IconURL),
	}.Filter())
	if err != nil {
		return err
	}

	sp := store.SkillPatch{
		Title:       p.Title,
		Description: p.Description,
		Link:        p.Link,
		IconURL:     p.IconURL,
		IconRef:     p.IconRef,
	}
	var replacedRef string
	if p.IconURL != nil || p.IconRef != nil {
		cur, err := s.db.GetSkill(id)
		if err != nil {
			return err
		}
		ref, url := cur.IconRef, cur.IconURL
		if p.IconRef != nil {
			ref = *p.IconRef
		}
		if p.IconURL != nil {
			url = *p.IconURL
		}
		switch {
		case ref == "" && url == "":
			return wrap(validation.Errors{
				"icon": validation.NewError("validation_icon_source", "either icon_url or icon_ref is required"),
			})
		case ref != "" && url != "":
			// The patched-in side wins; a reference beats a URL when
			// both arrive together, matching the create precedence.
			if p.IconRef != nil && *p.IconRef != "" {
				url = ""
			} else {
				ref = ""
			}
		}
		sp.IconRef = &ref
		sp.IconURL = &url
		if cur.IconRef != "" && ref != cur.IconRef {
			replacedRef = cur.IconRef
		}
	}

	if err := s.db.UpdateSkill(id, sp); err != nil {
		return err
	}
	s.cleanupBlob(replacedRef)
	s.emit("skill", "updated", id)
	return nil
}

// DeleteSkill removes a skill and, when it owned an uploaded icon, the
// icon blob.
func (s *Service) DeleteSkill(_ context.Context, id string) error {
	sk, err := s.db.GetSkill(id)
	if err != nil {
		return err
	}
	if err := s.db.DeleteSkill(id); err != nil {
		return err
	}
	s.cleanupBlob(sk.IconRef)
	s.emit("skill", "deleted", id)
	return nil
}

func (s *Service) decorateSkill(sk *models.Skill) {
	if sk.IconRef != "" {
		sk.Icon = s.resolve(sk.IconRef)
		return
	}
	sk.Icon = sk.IconURL
}
