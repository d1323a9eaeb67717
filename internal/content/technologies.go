package content

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/halvard/folio/internal/models"
	"github.com/halvard/folio/internal/store"
)

// TechnologyInput carries the fields for creating a technology entry.
// Icon is either a blob reference or a literal asset path. Visible
// defaults to true when omitted; Ord defaults to the end of the strip.
type TechnologyInput struct {
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Visible *bool  `json:"is_visible"`
	Ord     *int   `json:"order"`
}

// Validate checks the technology constraints.
func (in TechnologyInput) Validate() error {
	return wrap(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 80)),
		validation.Field(&in.Icon, validation.Required),
	))
}

// CreateTechnology validates and appends a technology entry.
func (s *Service) CreateTechnology(_ context.Context, in TechnologyInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	t := models.Technology{
		Name:      in.Name,
		Icon:      in.Icon,
		IsVisible: true,
		Ord:       in.Ord,
	}
	if in.Visible != nil {
		t.IsVisible = *in.Visible
	}
	if t.Ord == nil {
		all, err := s.db.ListTechnologies(false)
		if err != nil {
			return "", err
		}
		next := len(all)
		t.Ord = &next
	}
	id, err := s.db.CreateTechnology(t)
	if err != nil {
		return "", err
	}
	s.emit("technology", "created", id)
	return id, nil
}

// VisibleTechnologies returns only visible entries, sorted ascending by
// order with missing order treated as 0.
func (s *Service) VisibleTechnologies(_ context.Context) ([]models.Technology, error) {
	return s.listTechnologies(true)
}

// AdminListTechnologies returns every entry for the admin table.
func (s *Service) AdminListTechnologies(_ context.Context) ([]models.Technology, error) {
	return s.listTechnologies(false)
}

func (s *Service) listTechnologies(visibleOnly bool) ([]models.Technology, error) {
	techs, err := s.db.ListTechnologies(visibleOnly)
	if err != nil {
		return nil, err
	}
	for i := range techs {
		s.decorateTechnology(&techs[i])
	}
	return techs, nil
}

// TechnologyPatch is the mutable subset of a technology entry.
type TechnologyPatch struct {
	Name    *string `json:"name"`
	Icon    *string `json:"icon"`
	Visible *bool   `json:"is_visible"`
	Ord     *int    `json:"order"`
}

// UpdateTechnology validates supplied fields and applies a partial patch.
func (s *Service) UpdateTechnology(_ context.Context, id string, p TechnologyPatch) error {
	err := wrap(validation.Errors{
		"name": lengthIfSet(p.Name, 1, 80),
		"icon": lengthIfSet(p.Icon, 1, 500),
	}.Filter())
	if err != nil {
		return err
	}
	if err := s.db.UpdateTechnology(id, store.TechnologyPatch{
		Name:      p.Name,
		Icon:      p.Icon,
		IsVisible: p.Visible,
		Ord:       p.Ord,
	}); err != nil {
		return err
	}
	s.emit("technology", "updated", id)
	return nil
}

// SetTechnologyVisibility sets the visibility flag. The operation is
// idempotent: repeating it with the same value changes nothing and is not
// an error.
func (s *Service) SetTechnologyVisibility(_ context.Context, id string, visible bool) error {
	if err := s.db.UpdateTechnology(id, store.TechnologyPatch{IsVisible: &visible}); err != nil {
		return err
	}
	s.emit("technology", "updated", id)
	return nil
}

// SetTechnologyOrder moves an entry to a new position in the strip.
func (s *Service) SetTechnologyOrder(_ context.Context, id string, ord int) error {
	if err := s.db.UpdateTechnology(id, store.TechnologyPatch{Ord: &ord}); err != nil {
		return err
	}
	s.emit("technology", "updated", id)
	return nil
}

// DeleteTechnology removes an entry and, when its icon was an uploaded
// blob rather than a literal path, the blob too.
func (s *Service) DeleteTechnology(_ context.Context, id string) error {
	t, err := s.db.GetTechnology(id)
	if err != nil {
		return err
	}
	if err := s.db.DeleteTechnology(id); err != nil {
		return err
	}
	if !isLiteralIcon(t.Icon) {
		s.cleanupBlob(t.Icon)
	}
	s.emit("technology", "deleted", id)
	return nil
}

// decorateTechnology resolves blob-backed icons; literal asset paths pass
// through untouched.
func (s *Service) decorateTechnology(t *models.Technology) {
	if isLiteralIcon(t.Icon) {
		t.IconURL = t.Icon
		return
	}
	t.IconURL = s.resolve(t.Icon)
}

// isLiteralIcon distinguishes a stored asset path or URL from an opaque
// blob reference.
func isLiteralIcon(icon string) bool {
	return strings.HasPrefix(icon, "/") || strings.HasPrefix(icon, "http://") || strings.HasPrefix(icon, "https://")
}
