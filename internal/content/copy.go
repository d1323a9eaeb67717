package content

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/halvard/folio/internal/apperr"
	"github.com/halvard/folio/internal/models"
	"github.com/halvard/folio/internal/store"
)

// HeaderInput carries the fields for creating a header record.
type HeaderInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks the header constraints.
func (in HeaderInput) Validate() error {
	return wrap(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.Description, validation.Required, validation.Length(1, 2000)),
	))
}

// CreateHeader validates and appends a header record.
func (s *Service) CreateHeader(_ context.Context, in HeaderInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	id, err := s.db.CreateHeader(in.Name, in.Description)
	if err != nil {
		return "", err
	}
	s.emit("header", "created", id)
	return id, nil
}

// LatestHeader returns the current header record.
func (s *Service) LatestHeader(_ context.Context) (*models.Header, error) {
	return s.db.LatestHeader()
}

// HeaderPatch is the mutable subset of a header.
type HeaderPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateHeader validates supplied fields and applies a partial patch.
func (s *Service) UpdateHeader(_ context.Context, id string, p HeaderPatch) error {
	err := wrap(validation.Errors{
		"name":        lengthIfSet(p.Name, 1, 120),
		"description": lengthIfSet(p.Description, 1, 2000),
	}.Filter())
	if err != nil {
		return err
	}
	if err := s.db.UpdateHeader(id, store.HeaderPatch{Name: p.Name, Description: p.Description}); err != nil {
		return err
	}
	s.emit("header", "updated", id)
	return nil
}

// DeleteHeader removes a header record.
func (s *Service) DeleteHeader(_ context.Context, id string) error {
	if err := s.db.DeleteHeader(id); err != nil {
		return err
	}
	s.emit("header", "deleted", id)
	return nil
}

// IntroductionInput carries the fields for creating an introduction record.
type IntroductionInput struct {
	Title       string `json:"title"`
	Header      string `json:"header"`
	Description string `json:"description"`
}

// Validate checks the introduction constraints.
func (in IntroductionInput) Validate() error {
	return wrap(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.Header, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Description, validation.Required, validation.Length(1, 2000)),
	))
}

// CreateIntroduction validates and appends an introduction record.
func (s *Service) CreateIntroduction(_ context.Context, in IntroductionInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	id, err := s.db.CreateIntroduction(in.Title, in.Header, in.Description)
	if err != nil {
		return "", err
	}
	s.emit("introduction", "created", id)
	return id, nil
}

// LatestIntroduction returns the current introduction record.
func (s *Service) LatestIntroduction(_ context.Context) (*models.Introduction, error) {
	return s.db.LatestIntroduction()
}

// IntroductionPatch is the mutable subset of an introduction.
type IntroductionPatch struct {
	Title       *string `json:"title"`
	Header      *string `json:"header"`
	Description *string `json:"description"`
}

// UpdateIntroduction validates supplied fields and applies a partial patch.
func (s *Service) UpdateIntroduction(_ context.Context, id string, p IntroductionPatch) error {
	err := wrap(validation.Errors{
		"title":       lengthIfSet(p.Title, 1, 120),
		"header":      lengthIfSet(p.Header, 1, 200),
		"description": lengthIfSet(p.Description, 1, 2000),
	}.Filter())
	if err != nil {
		return err
	}
	if err := s.db.UpdateIntroduction(id, store.IntroductionPatch{
		Title: p.Title, Header: p.Header, Description: p.Description,
	}); err != nil {
		return err
	}
	s.emit("introduction", "updated", id)
	return nil
}

// DeleteIntroduction removes an introduction record.
func (s *Service) DeleteIntroduction(_ context.Context, id string) error {
	if err := s.db.DeleteIntroduction(id); err != nil {
		return err
	}
	s.emit("introduction", "deleted", id)
	return nil
}

// SectionCopyInput carries the fields for creating section copy. Each page
// section owns its key; the same record shape serves all of them.
type SectionCopyInput struct {
	SectionKey  models.SectionKey `json:"section_key"`
	Title       string            `json:"title"`
	Header      string            `json:"header"`
	Description string            `json:"description"`
}

// Validate checks the section copy constraints, including key membership.
func (in SectionCopyInput) Validate() error {
	return wrap(validation.ValidateStruct(&in,
		validation.Field(&in.SectionKey, validation.Required,
			validation.In(models.SectionAbout, models.SectionExperience, models.SectionSkills)),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.Header, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Description, validation.Required, validation.Length(1, 2000)),
	))
}

// CreateSectionCopy validates and appends a section copy record.
func (s *Service) CreateSectionCopy(_ context.Context, in SectionCopyInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	id, err := s.db.CreateSectionCopy(in.SectionKey, in.Title, in.Header, in.Description)
	if err != nil {
		return "", err
	}
	s.emit("section_copy", "created", id)
	return id, nil
}

// SectionCopy returns the current copy for one section.
func (s *Service) SectionCopy(_ context.Context, key models.SectionKey) (*models.SectionCopy, error) {
	valid := false
	for _, k := range models.SectionKeys {
		if k == key {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apperr.Invalid(validation.Errors{"section_key": validation.NewError("validation_in", "must be a valid section key")})
	}
	return s.db.LatestSectionCopy(key)
}

// ListSectionCopies returns every copy record for the admin table.
func (s *Service) ListSectionCopies(_ context.Context) ([]models.SectionCopy, error) {
	return s.db.ListSectionCopies()
}

// SectionCopyPatch is the mutable subset of a section copy record. The
// section key itself is immutable after creation.
type SectionCopyPatch struct {
	Title       *string `json:"title"`
	Header      *string `json:"header"`
	Description *string `json:"description"`
}

// UpdateSectionCopy validates supplied fields and applies a partial patch.
func (s *Service) UpdateSectionCopy(_ context.Context, id string, p SectionCopyPatch) error {
	err := wrap(validation.Errors{
		"title":       lengthIfSet(p.Title, 1, 120),
		"header":      lengthIfSet(p.Header, 1, 200),
		"description": lengthIfSet(p.Description, 1, 2000),
	}.Filter())
	if err != nil {
		return err
	}
	if err := s.db.UpdateSectionCopy(id, store.SectionCopyPatch{
		Title: p.Title, Header: p.Header, Description: p.Description,
	}); err != nil {
		return err
	}
	s.emit("section_copy", "updated", id)
	return nil
}

// DeleteSectionCopy removes a section copy record.
func (s *Service) DeleteSectionCopy(_ context.Context, id string) error {
	if err := s.db.DeleteSectionCopy(id); err != nil {
		return err
	}
	s.emit("section_copy", "deleted", id)
	return nil
}
