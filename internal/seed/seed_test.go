package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/halvard/folio/internal/testutil"
)

func writeSeed(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testImporter(t *testing.T) (*Importer, string) {
	t.Helper()
	svc, db, _ := testutil.TestService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewImporter(svc, db, logger), t.TempDir()
}

func TestImportCreatesEntities(t *testing.T) {
	im, dir := testImporter(t)
	ctx := context.Background()

	writeSeed(t, dir, "01-header.json", `{
		"entity": "header",
		"items": [{"name": "Halvard", "description": "Software engineer"}]
	}`)
	writeSeed(t, dir, "02-skills.json", `{
		"entity": "skill",
		"items": [
			{"title": "Go", "description": "Backend", "link": "https://go.dev", "icon_url": "https://example.com/go.png"},
			{"title": "SQLite", "description": "Storage", "link": "https://sqlite.org", "icon_url": "https://example.com/sq.png"}
		]
	}`)
	writeSeed(t, dir, "03-tech.json", `{
		"entity": "technology",
		"items": [{"name": "Docker", "icon": "/assets/docker.svg"}]
	}`)

	if err := im.ImportAll(ctx, dir); err != nil {
		t.Fatal(err)
	}

	h, err := im.db.LatestHeader()
	if err != nil {
		t.Fatal(err)
	}
	if h.Name != "Halvard" {
		t.Errorf("header name = %q", h.Name)
	}

	skills, err := im.svc.ListSkills(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 2 {
		t.Errorf("skills = %d, want 2", len(skills))
	}

	if _, err := im.db.TechnologyByName("Docker"); err != nil {
		t.Errorf("technology not imported: %v", err)
	}
}

func TestImportIsUpsertNotDuplicate(t *testing.T) {
	im, dir := testImporter(t)
	ctx := context.Background()

	writeSeed(t, dir, "skills.json", `{
		"entity": "skill",
		"items": [{"title": "Go", "description": "Backend", "link": "https://go.dev", "icon_url": "https://example.com/go.png"}]
	}`)
	if err := im.ImportAll(ctx, dir); err != nil {
		t.Fatal(err)
	}

	// Re-import with a changed description: same natural key, no new row.
	writeSeed(t, dir, "skills.json", `{
		"entity": "skill",
		"items": [{"title": "Go", "description": "Backend and tooling", "link": "https://go.dev", "icon_url": "https://example.com/go.png"}]
	}`)
	if err := im.ImportAll(ctx, dir); err != nil {
		t.Fatal(err)
	}

	skills, err := im.svc.ListSkills(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 {
		t.Fatalf("skills = %d, want 1", len(skills))
	}
	if skills[0].Description != "Backend and tooling" {
		t.Errorf("description = %q", skills[0].Description)
	}
}

func TestImportSkipsUnchangedFile(t *testing.T) {
	im, dir := testImporter(t)
	ctx := context.Background()

	doc := `{
		"entity": "header",
		"items": [{"name": "Halvard", "description": "Software engineer"}]
	}`
	writeSeed(t, dir, "header.json", doc)

	if err := im.ImportAll(ctx, dir); err != nil {
		t.Fatal(err)
	}
	if len(im.seen) != 1 {
		t.Fatalf("seen = %d files", len(im.seen))
	}
	before := im.seen["header.json"]

	// Second pass over identical content is a no-op.
	if err := im.ImportAll(ctx, dir); err != nil {
		t.Fatal(err)
	}
	if im.seen["header.json"] != before {
		t.Error("checksum changed for unchanged file")
	}

	headers, err := im.db.ListHeaders()
	if err != nil {
		t.Fatal(err)
	}
	if len(headers) != 1 {
		t.Errorf("headers = %d, want 1", len(headers))
	}
}

func TestImportBadFileDoesNotAbort(t *testing.T) {
	im, dir := testImporter(t)
	ctx := context.Background()

	writeSeed(t, dir, "01-bad.json", `{not json`)
	writeSeed(t, dir, "02-good.json", `{
		"entity": "technology",
		"items": [{"name": "Go", "icon": "/assets/go.svg"}]
	}`)

	if err := im.ImportAll(ctx, dir); err != nil {
		t.Fatal(err)
	}
	if _, err := im.db.TechnologyByName("Go"); err != nil {
		t.Errorf("good file not imported after bad one: %v", err)
	}
}

func TestImportUnknownEntityRejected(t *testing.T) {
	im, dir := testImporter(t)
	ctx := context.Background()

	writeSeed(t, dir, "odd.json", `{"entity": "widget", "items": [{}]}`)
	if err := im.importFile(ctx, filepath.Join(dir, "odd.json")); err == nil {
		t.Error("unknown entity should fail the file")
	}
}
