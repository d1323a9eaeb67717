package content

import (
	"context"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/halvard/folio/internal/fields"
	"github.com/halvard/folio/internal/models"
	"github.com/halvard/folio/internal/store"
)

// ExperienceInput carries the fields for creating a work-history entry.
// Dates are epoch milliseconds.
type ExperienceInput struct {
	IconRef      string   `json:"icon_ref"`
	Workplace    string   `json:"workplace"`
	WorkTitle    string   `json:"work_title"`
	Description  []string `json:"description"`
	StartDate    int64    `json:"start_date"`
	EndDate      *int64   `json:"end_date"`
	IsCurrentJob bool     `json:"is_current_job"`
}

// Validate checks the experience constraints, including the cross-field
// rule: a finished job needs an end date no earlier than its start.
func (in ExperienceInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.IconRef, validation.Required),
		validation.Field(&in.Workplace, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.WorkTitle, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.StartDate, validation.Required, validation.Min(0)),
	)
	if err != nil {
		return wrap(err)
	}
	if lerr := requiredList(in.Description); lerr != nil {
		return wrap(validation.Errors{"description": lerr})
	}
	if derr := endDateError(in.IsCurrentJob, in.StartDate, in.EndDate); derr != nil {
		return wrap(validation.Errors{"end_date": derr})
	}
	return nil
}

// endDateError enforces the cross-field rule: a finished job needs an end
// date no earlier than its start. Both create and patch paths check the
// full record state through it.
func endDateError(current bool, start int64, end *int64) error {
	if current {
		return nil
	}
	if end == nil {
		return validation.NewError("validation_required", "end date is required unless the job is current")
	}
	if *end < start {
		return validation.NewError("validation_date_order", "end date must not precede start date")
	}
	return nil
}

// CreateExperience validates and appends a work-history entry. A failed
// insert after the icon upload cleans up the orphaned blob.
func (s *Service) CreateExperience(_ context.Context, in ExperienceInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	id, err := s.db.CreateExperience(models.Experience{
		IconRef:      in.IconRef,
		Workplace:    in.Workplace,
		WorkTitle:    in.WorkTitle,
		Description:  fields.JoinBullets(in.Description),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		IsCurrentJob: in.IsCurrentJob,
	})
	if err != nil {
		s.cleanupBlob(in.IconRef)
		return "", err
	}
	s.emit("experience", "created", id)
	return id, nil
}

// GetExperience returns one entry in its read view.
func (s *Service) GetExperience(_ context.Context, id string) (*models.Experience, error) {
	e, err := s.db.GetExperience(id)
	if err != nil {
		return nil, err
	}
	s.decorateExperience(e)
	return e, nil
}

// ListExperiences returns the work history newest-start first, each entry
// in its read view.
func (s *Service) ListExperiences(_ context.Context) ([]models.Experience, error) {
	exps, err := s.db.ListExperiences()
	if err != nil {
		return nil, err
	}
	for i := range exps {
		s.decorateExperience(&exps[i])
	}
	return exps, nil
}

// ExperiencePatch is the mutable subset of a work-history entry.
type ExperiencePatch struct {
	IconRef      *string   `json:"icon_ref"`
	Workplace    *string   `json:"workplace"`
	WorkTitle    *string   `json:"work_title"`
	Description  *[]string `json:"description"`
	StartDate    *int64    `json:"start_date"`
	EndDate      *int64    `json:"end_date"`
	IsCurrentJob *bool     `json:"is_current_job"`
}

// UpdateExperience validates supplied fields and applies a partial patch.
// Marking a job current clears its stored end date. Date checks run against
// the post-patch record, so a patch cannot leave a finished job without an
// end date or with one preceding its start.
func (s *Service) UpdateExperience(_ context.Context, id string, p ExperiencePatch) error {
	verr := validation.Errors{
		"workplace":  lengthIfSet(p.Workplace, 1, 120),
		"work_title": lengthIfSet(p.WorkTitle, 1, 120),
	}
	if p.Description != nil {
		verr["description"] = requiredList(*p.Description)
	}
	if err := wrap(verr.Filter()); err != nil {
		return err
	}

	if p.StartDate != nil || p.EndDate != nil || p.IsCurrentJob != nil {
		cur, err := s.db.GetExperience(id)
		if err != nil {
			return err
		}
		start := cur.StartDate
		if p.StartDate != nil {
			start = *p.StartDate
		}
		current := cur.IsCurrentJob
		if p.IsCurrentJob != nil {
			current = *p.IsCurrentJob
		}
		end := cur.EndDate
		if p.EndDate != nil {
			end = p.EndDate
		}
		if derr := endDateError(current, start, end); derr != nil {
			return wrap(validation.Errors{"end_date": derr})
		}
	}

	sp := store.ExperiencePatch{
		IconRef:      p.IconRef,
		Workplace:    p.Workplace,
		WorkTitle:    p.WorkTitle,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		IsCurrentJob: p.IsCurrentJob,
	}
	if p.Description != nil {
		joined := fields.JoinBullets(*p.Description)
		sp.Description = &joined
	}
	if p.IsCurrentJob != nil && *p.IsCurrentJob {
		sp.EndDate = nil
		sp.ClearEndDate = true
	}
	if err := s.db.UpdateExperience(id, sp); err != nil {
		return err
	}
	s.emit("experience", "updated", id)
	return nil
}

// UpdateLatestExperience patches the most recently created entry. An empty
// collection is an explicit failure, not a silent no-op.
func (s *Service) UpdateLatestExperience(ctx context.Context, p ExperiencePatch) (string, error) {
	latest, err := s.db.LatestExperience()
	if err != nil {
		return "", err
	}
	if err := s.UpdateExperience(ctx, latest.ID, p); err != nil {
		return "", err
	}
	return latest.ID, nil
}

// DeleteExperience is the compound delete: icon blob first, then the
// record. A failed blob delete is logged and the record is still removed,
// so the store never keeps a record with a dangling reference.
func (s *Service) DeleteExperience(_ context.Context, id string) error {
	e, err := s.db.GetExperience(id)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(e.IconRef); err != nil {
		s.logger.Warn("experience icon delete failed",
			slog.String("id", id), slog.String("ref", e.IconRef), slog.String("error", err.Error()))
	}
	if err := s.db.DeleteExperience(id); err != nil {
		return err
	}
	s.emit("experience", "deleted", id)
	return nil
}

// decorateExperience resolves the icon, splits bullets, and suppresses the
// end date of a current job regardless of what is stored.
func (s *Service) decorateExperience(e *models.Experience) {
	e.IconURL = s.resolve(e.IconRef)
	e.Bullets = fields.SplitBullets(e.Description)
	if e.IsCurrentJob {
		e.EndDate = nil
	}
}
