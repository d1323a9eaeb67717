package content

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/halvard/folio/internal/fields"
	"github.com/halvard/folio/internal/models"
	"github.com/halvard/folio/internal/store"
)

// ProjectInput carries the fields for creating a project card.
type ProjectInput struct {
	ImageRef        string   `json:"image_ref"`
	CardTitle       string   `json:"card_title"`
	CardDescription string   `json:"card_description"`
	Tags            []string `json:"tags"`
	GithubLink      string   `json:"github_link"`
	WebsiteLink     string   `json:"website_link"`
}

// Validate checks the project constraints.
func (in ProjectInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.ImageRef, validation.Required),
		validation.Field(&in.CardTitle, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.CardDescription, validation.Required, validation.Length(1, 2000)),
		validation.Field(&in.GithubLink, validation.Required, is.URL),
		validation.Field(&in.WebsiteLink, is.URL),
	)
	if err != nil {
		return wrap(err)
	}
	if lerr := listRule(in.Tags); lerr != nil {
		return wrap(validation.Errors{"tags": lerr})
	}
	return nil
}

// ProjectPage is one window of a project listing. NextCursor is the offset
// of the following window, -1 when the listing is exhausted.
type ProjectPage struct {
	Projects   []models.Project `json:"projects"`
	Total      int              `json:"total"`
	NextCursor int              `json:"next_cursor"`
}

// CreateProject validates and appends a project. A failed insert after the
// image upload cleans up the orphaned blob.
func (s *Service) CreateProject(_ context.Context, in ProjectInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	id, err := s.db.CreateProject(models.Project{
		ImageRef:        in.ImageRef,
		CardTitle:       in.CardTitle,
		CardDescription: in.CardDescription,
		Tag:             fields.JoinCSV(in.Tags),
		GithubLink:      in.GithubLink,
		WebsiteLink:     in.WebsiteLink,
	})
	if err != nil {
		s.cleanupBlob(in.ImageRef)
		return "", err
	}
	s.emit("project", "created", id)
	return id, nil
}

// GetProject returns one project with image resolved and tags split.
func (s *Service) GetProject(_ context.Context, id string) (*models.Project, error) {
	p, err := s.db.GetProject(id)
	if err != nil {
		return nil, err
	}
	s.decorateProject(p)
	return p, nil
}

// ListProjects returns a page of projects, newest first, with optional
// substring search over title and description.
func (s *Service) ListProjects(_ context.Context, q string, cursor, limit int) (*ProjectPage, error) {
	if cursor < 0 {
		cursor = 0
	}
	projects, total, err := s.db.ListProjects(store.ProjectQuery{
		Substring: q,
		Limit:     limit,
		Offset:    cursor,
	})
	if err != nil {
		return nil, err
	}
	for i := range projects {
		s.decorateProject(&projects[i])
	}
	next := -1
	if limit > 0 && cursor+len(projects) < total {
		next = cursor + len(projects)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return &ProjectPage{Projects: projects, Total: total, NextCursor: next}, nil
}

// ProjectPatch is the mutable subset of a project.
type ProjectPatch struct {
	ImageRef        *string   `json:"image_ref"`
	CardTitle       *string   `json:"card_title"`
	CardDescription *string   `json:"card_description"`
	Tags            *[]string `json:"tags"`
	GithubLink      *string   `json:"github_link"`
	WebsiteLink     *string   `json:"website_link"`
}

// UpdateProject validates supplied fields and applies a partial patch;
// updatedAt is stamped on every call. When the image reference changes,
// the previous blob is released.
func (s *Service) UpdateProject(_ context.Context, id string, p ProjectPatch) error {
	verr := validation.Errors{
		"card_title":       lengthIfSet(p.CardTitle, 1, 120),
		"card_description": lengthIfSet(p.CardDescription, 1, 2000),
		"github_link":      urlIfSet(p.GithubLink),
		"website_link":     urlIfSet(p.WebsiteLink),
	}
	if p.Tags != nil {
		verr["tags"] = listRule(*p.Tags)
	}
	if err := wrap(verr.Filter()); err != nil {
		return err
	}

	var oldRef string
	if p.ImageRef != nil {
		prev, err := s.db.GetProject(id)
		if err != nil {
			return err
		}
		if prev.ImageRef != *p.ImageRef {
			oldRef = prev.ImageRef
		}
	}

	sp := store.ProjectPatch{
		ImageRef:        p.ImageRef,
		CardTitle:       p.CardTitle,
		CardDescription: p.CardDescription,
		GithubLink:      p.GithubLink,
		WebsiteLink:     p.WebsiteLink,
	}
	if p.Tags != nil {
		joined := fields.JoinCSV(*p.Tags)
		sp.Tag = &joined
	}
	if err := s.db.UpdateProject(id, sp); err != nil {
		return err
	}
	s.cleanupBlob(oldRef)
	s.emit("project", "updated", id)
	return nil
}

// DeleteProject removes a project and its image blob.
func (s *Service) DeleteProject(_ context.Context, id string) error {
	p, err := s.db.GetProject(id)
	if err != nil {
		return err
	}
	if err := s.db.DeleteProject(id); err != nil {
		return err
	}
	s.cleanupBlob(p.ImageRef)
	s.emit("project", "deleted", id)
	return nil
}

func (s *Service) decorateProject(p *models.Project) {
	p.ImageURL = s.resolve(p.ImageRef)
	p.Tags = fields.SplitCSV(p.Tag)
}
