package content_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/halvard/folio/internal/apperr"
	"github.com/halvard/folio/internal/blob"
	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/models"
	"github.com/halvard/folio/internal/testutil"
)

func uploadBlob(t *testing.T, blobs *blob.Store) string {
	t.Helper()
	ref, err := blobs.Write("image/png", strings.NewReader("fake png bytes"))
	if err != nil {
		t.Fatal(err)
	}
	return ref
}

func TestSkillIconOneOf(t *testing.T) {
	svc, _, _ := testutil.TestService(t)
	ctx := context.Background()

	_, err := svc.CreateSkill(ctx, content.SkillInput{
		Title:       "Go",
		Description: "Backend services",
		Link:        "https://go.dev",
	})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("no icon source error = %v, want ErrInvalid", err)
	}
}

func TestSkillIconRefWins(t *testing.T) {
	svc, db, blobs := testutil.TestService(t)
	ctx := context.Background()

	ref := uploadBlob(t, blobs)
	id, err := svc.CreateSkill(ctx, content.SkillInput{
		Title:       "Go",
		Description: "Backend services",
		Link:        "https://go.dev",
		IconURL:     "https://example.com/go.png",
		IconRef:     ref,
	})
	if err != nil {
		t.Fatal(err)
	}

	stored, err := db.GetSkill(id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.IconURL != "" {
		t.Errorf("icon_url kept alongside icon_ref: %q", stored.IconURL)
	}

	sk, err := svc.GetSkill(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sk.Icon, "/blobs/"+ref) {
		t.Errorf("resolved icon = %q, want signed /blobs/ URL", sk.Icon)
	}
}

func TestSkillDeleteCleansIconBlob(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	ref := uploadBlob(t, blobs)
	id, err := svc.CreateSkill(ctx, content.SkillInput{
		Title:       "Go",
		Description: "Backend services",
		Link:        "https://go.dev",
		IconRef:     ref,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteSkill(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := blobs.Resolve(ref); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("resolve after delete = %v, want ErrNotFound", err)
	}
}

func TestSkillIconPatchKeepsOneSource(t *testing.T) {
	svc, db, blobs := testutil.TestService(t)
	ctx := context.Background()

	id, err := svc.CreateSkill(ctx, content.SkillInput{
		Title:       "Go",
		Description: "Backend services",
		Link:        "https://go.dev",
		IconURL:     "https://example.com/go.png",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Patching in a reference displaces the stored URL.
	ref := uploadBlob(t, blobs)
	if err := svc.UpdateSkill(ctx, id, content.SkillPatch{IconRef: &ref}); err != nil {
		t.Fatal(err)
	}
	stored, err := db.GetSkill(id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.IconRef != ref || stored.IconURL != "" {
		t.Errorf("stored sources = ref %q, url %q", stored.IconRef, stored.IconURL)
	}

	// Patching in a URL displaces the reference and frees its blob.
	url := "https://example.com/go2.png"
	if err := svc.UpdateSkill(ctx, id, content.SkillPatch{IconURL: &url}); err != nil {
		t.Fatal(err)
	}
	stored, err = db.GetSkill(id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.IconRef != "" || stored.IconURL != url {
		t.Errorf("stored sources = ref %q, url %q", stored.IconRef, stored.IconURL)
	}
	if _, err := blobs.Resolve(ref); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("displaced icon blob survived: %v", err)
	}

	// Blanking the last remaining source is rejected.
	empty := ""
	if err := svc.UpdateSkill(ctx, id, content.SkillPatch{IconURL: &empty}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("blank-both patch error = %v, want ErrInvalid", err)
	}
}

func TestProjectTagsRejectDelimiter(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, content.ProjectInput{
		ImageRef:        uploadBlob(t, blobs),
		CardTitle:       "Site",
		CardDescription: "A site",
		Tags:            []string{"go, sqlite"},
		GithubLink:      "https://github.com/x/y",
	})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("delimiter-bearing tag error = %v, want ErrInvalid", err)
	}
}

func TestProjectListPagination(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.CreateProject(ctx, content.ProjectInput{
			ImageRef:        uploadBlob(t, blobs),
			CardTitle:       "Project",
			CardDescription: "desc",
			GithubLink:      "https://github.com/x/y",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	page, err := svc.ListProjects(ctx, "", 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 5 || len(page.Projects) != 2 || page.NextCursor != 2 {
		t.Errorf("page = total %d, len %d, next %d", page.Total, len(page.Projects), page.NextCursor)
	}

	last, err := svc.ListProjects(ctx, "", 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(last.Projects) != 1 || last.NextCursor != -1 {
		t.Errorf("last page = len %d, next %d", len(last.Projects), last.NextCursor)
	}
}

func TestProjectDeleteCascadesImage(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	ref := uploadBlob(t, blobs)
	id, err := svc.CreateProject(ctx, content.ProjectInput{
		ImageRef:        ref,
		CardTitle:       "Site",
		CardDescription: "A site",
		GithubLink:      "https://github.com/x/y",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteProject(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := blobs.Resolve(ref); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("image blob survived project delete: %v", err)
	}
}

func validOffering(ref string) content.OfferingInput {
	return content.OfferingInput{
		Title:           "Web development",
		IconRef:         ref,
		Description:     "Full stack builds",
		KeyFeatures:     []string{"responsive", "accessible"},
		ExperienceLevel: models.LevelExpert,
		CTAText:         "Hire me",
		CTALink:         "https://example.com/contact",
		Category:        models.CategoryDevelopment,
	}
}

func TestOfferingEnumValidation(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	in := validOffering(uploadBlob(t, blobs))
	in.ExperienceLevel = "Wizard"
	if _, err := svc.CreateOffering(ctx, in); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("bad level error = %v, want ErrInvalid", err)
	}

	in = validOffering(uploadBlob(t, blobs))
	in.KeyFeatures = nil
	if _, err := svc.CreateOffering(ctx, in); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("empty key features error = %v, want ErrInvalid", err)
	}

	price := -5.0
	in = validOffering(uploadBlob(t, blobs))
	in.StartingPrice = &price
	if _, err := svc.CreateOffering(ctx, in); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("negative price error = %v, want ErrInvalid", err)
	}
}

func TestOfferingSoftDeleteAndPurge(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	ref := uploadBlob(t, blobs)
	id, err := svc.CreateOffering(ctx, validOffering(ref))
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteOffering(ctx, id); err != nil {
		t.Fatal(err)
	}

	public, err := svc.ListOfferings(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 0 {
		t.Errorf("deactivated offering still public: %v", public)
	}

	admin, err := svc.AdminListOfferings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(admin) != 1 || admin[0].IsActive {
		t.Errorf("admin view = %+v", admin)
	}

	// Purge removes the record and its icon blob.
	if err := svc.PurgeOffering(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetOffering(ctx, id); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("purged offering error = %v, want ErrNotFound", err)
	}
	if _, err := blobs.Resolve(ref); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("icon blob survived purge: %v", err)
	}
}

func TestExperienceEndDateRules(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	// Finished job without an end date is invalid.
	_, err := svc.CreateExperience(ctx, content.ExperienceInput{
		IconRef:     uploadBlob(t, blobs),
		Workplace:   "Acme",
		WorkTitle:   "Engineer",
		Description: []string{"built things"},
		StartDate:   start,
	})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("missing end date error = %v, want ErrInvalid", err)
	}

	// End before start is invalid.
	before := start - 1000
	_, err = svc.CreateExperience(ctx, content.ExperienceInput{
		IconRef:     uploadBlob(t, blobs),
		Workplace:   "Acme",
		WorkTitle:   "Engineer",
		Description: []string{"built things"},
		StartDate:   start,
		EndDate:     &before,
	})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("end-before-start error = %v, want ErrInvalid", err)
	}
}

func TestExperiencePatchKeepsDateRules(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	id, err := svc.CreateExperience(ctx, content.ExperienceInput{
		IconRef:     uploadBlob(t, blobs),
		Workplace:   "Acme",
		WorkTitle:   "Engineer",
		Description: []string{"built things"},
		StartDate:   start,
		EndDate:     &end,
	})
	if err != nil {
		t.Fatal(err)
	}

	// End date patched to before the stored start.
	bad := start - 1000
	if err := svc.UpdateExperience(ctx, id, content.ExperiencePatch{EndDate: &bad}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("end-before-start patch error = %v, want ErrInvalid", err)
	}

	// Start date patched past the stored end.
	late := end + 1000
	if err := svc.UpdateExperience(ctx, id, content.ExperiencePatch{StartDate: &late}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("start-after-end patch error = %v, want ErrInvalid", err)
	}

	// Marking the job current clears the end date; finishing it again
	// without supplying one must fail.
	cur := true
	if err := svc.UpdateExperience(ctx, id, content.ExperiencePatch{IsCurrentJob: &cur}); err != nil {
		t.Fatal(err)
	}
	done := false
	if err := svc.UpdateExperience(ctx, id, content.ExperiencePatch{IsCurrentJob: &done}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("finished-without-end patch error = %v, want ErrInvalid", err)
	}

	// Supplying the end date alongside the flip succeeds.
	if err := svc.UpdateExperience(ctx, id, content.ExperiencePatch{IsCurrentJob: &done, EndDate: &end}); err != nil {
		t.Errorf("finish with end date: %v", err)
	}
}

func TestExperienceCurrentJobSuppressesEndDate(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	id, err := svc.CreateExperience(ctx, content.ExperienceInput{
		IconRef:     uploadBlob(t, blobs),
		Workplace:   "Acme",
		WorkTitle:   "Engineer",
		Description: []string{"built things", "shipped things"},
		StartDate:   start,
		EndDate:     &end,
	})
	if err != nil {
		t.Fatal(err)
	}

	cur := true
	if err := svc.UpdateExperience(ctx, id, content.ExperiencePatch{IsCurrentJob: &cur}); err != nil {
		t.Fatal(err)
	}

	e, err := svc.GetExperience(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if e.EndDate != nil {
		t.Errorf("end date visible on current job: %v", *e.EndDate)
	}
	if len(e.Bullets) != 2 {
		t.Errorf("bullets = %v", e.Bullets)
	}
}

func TestExperienceDeleteRemovesIconFirst(t *testing.T) {
	svc, _, blobs := testutil.TestService(t)
	ctx := context.Background()

	ref := uploadBlob(t, blobs)
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	id, err := svc.CreateExperience(ctx, content.ExperienceInput{
		IconRef:     ref,
		Workplace:   "Acme",
		WorkTitle:   "Engineer",
		Description: []string{"built things"},
		StartDate:   time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		EndDate:     &end,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteExperience(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetExperience(ctx, id); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("deleted experience error = %v, want ErrNotFound", err)
	}
	if _, err := blobs.Resolve(ref); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("icon blob survived delete: %v", err)
	}
}

func TestTechnologyVisibilityIdempotent(t *testing.T) {
	svc, _, _ := testutil.TestService(t)
	ctx := context.Background()

	id, err := svc.CreateTechnology(ctx, content.TechnologyInput{Name: "Go", Icon: "/assets/go.svg"})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.SetTechnologyVisibility(ctx, id, false); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}

	visible, err := svc.VisibleTechnologies(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 0 {
		t.Errorf("hidden entry still visible: %v", visible)
	}
}

func TestTechnologyDefaultOrderAppends(t *testing.T) {
	svc, _, _ := testutil.TestService(t)
	ctx := context.Background()

	for _, name := range []string{"Go", "SQLite", "Docker"} {
		if _, err := svc.CreateTechnology(ctx, content.TechnologyInput{Name: name, Icon: "/assets/" + name + ".svg"}); err != nil {
			t.Fatal(err)
		}
	}

	techs, err := svc.VisibleTechnologies(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(techs) != 3 {
		t.Fatalf("count = %d", len(techs))
	}
	for i, tech := range techs {
		if tech.Ord == nil || *tech.Ord != i {
			t.Errorf("entry %d ord = %v", i, tech.Ord)
		}
	}
}

func TestSectionCopyUnknownKey(t *testing.T) {
	svc, _, _ := testutil.TestService(t)
	ctx := context.Background()

	if _, err := svc.SectionCopy(ctx, models.SectionKey("bogus")); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("unknown key error = %v, want ErrInvalid", err)
	}

	if _, err := svc.CreateSectionCopy(ctx, content.SectionCopyInput{
		SectionKey:  "bogus",
		Title:       "T",
		Header:      "H",
		Description: "D",
	}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("create with unknown key error = %v, want ErrInvalid", err)
	}
}

func TestValidationCarriesFieldErrors(t *testing.T) {
	svc, _, _ := testutil.TestService(t)
	ctx := context.Background()

	_, err := svc.CreateHeader(ctx, content.HeaderInput{})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("error = %v, want ErrInvalid", err)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error should name the failing field: %v", err)
	}
}
