// Package seed imports portfolio content from JSON files in a seed
// directory and keeps it current while the directory is watched.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/halvard/folio/internal/apperr"
	"github.com/halvard/folio/internal/checksum"
	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/store"
)

// file is the on-disk seed document: one entity kind, a list of items in
// that entity's input shape.
type file struct {
	Entity string            `json:"entity"`
	Items  []json.RawMessage `json:"items"`
}

// Importer loads seed files through the content service so the usual
// validation and event emission apply. Natural keys (skill title,
// technology name, section key) make repeated imports upserts rather than
// duplicates.
//
// An Importer is confined to one goroutine: ImportAll runs before Watch
// starts, and Watch owns it from then on.
type Importer struct {
	svc    *content.Service
	db     *store.DB
	logger *slog.Logger

	// checksum of each seed file at last successful import, keyed by
	// base name. Unchanged files are skipped on re-import.
	seen map[string]string
}

// NewImporter creates an Importer over the given service and store.
func NewImporter(svc *content.Service, db *store.DB, logger *slog.Logger) *Importer {
	return &Importer{svc: svc, db: db, logger: logger, seen: make(map[string]string)}
}

// ImportAll loads every .json file in dir, in lexical order. A file that
// fails to parse or import is logged and skipped; the rest still load.
func (im *Importer) ImportAll(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("seed: read dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := im.importFile(ctx, filepath.Join(dir, e.Name())); err != nil {
			im.logger.Warn("seed: import failed",
				slog.String("file", e.Name()),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// importFile loads one seed file, skipping it when its content is
// unchanged since the last import.
func (im *Importer) importFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name := filepath.Base(path)
	cs := checksum.Sum(data)
	if im.seen[name] == cs {
		im.logger.Debug("seed: unchanged", slog.String("file", name))
		return nil
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	for i, raw := range f.Items {
		if err := im.importItem(ctx, f.Entity, raw); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	im.seen[name] = cs
	im.logger.Info("seed: imported",
		slog.String("file", name),
		slog.String("entity", f.Entity),
		slog.Int("items", len(f.Items)))
	return nil
}

func (im *Importer) importItem(ctx context.Context, entity string, raw json.RawMessage) error {
	switch entity {
	case "header":
		return im.importHeader(ctx, raw)
	case "introduction":
		return im.importIntroduction(ctx, raw)
	case "section":
		return im.importSection(ctx, raw)
	case "skill":
		return im.importSkill(ctx, raw)
	case "technology":
		return im.importTechnology(ctx, raw)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

func (im *Importer) importHeader(ctx context.Context, raw json.RawMessage) error {
	var in content.HeaderInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	cur, err := im.db.LatestHeader()
	if errors.Is(err, apperr.ErrNotFound) {
		_, err = im.svc.CreateHeader(ctx, in)
		return err
	}
	if err != nil {
		return err
	}
	if cur.Name == in.Name && cur.Description == in.Description {
		return nil
	}
	return im.svc.UpdateHeader(ctx, cur.ID, content.HeaderPatch{
		Name:        &in.Name,
		Description: &in.Description,
	})
}

func (im *Importer) importIntroduction(ctx context.Context, raw json.RawMessage) error {
	var in content.IntroductionInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	cur, err := im.db.LatestIntroduction()
	if errors.Is(err, apperr.ErrNotFound) {
		_, err = im.svc.CreateIntroduction(ctx, in)
		return err
	}
	if err != nil {
		return err
	}
	if cur.Title == in.Title && cur.Header == in.Header && cur.Description == in.Description {
		return nil
	}
	return im.svc.UpdateIntroduction(ctx, cur.ID, content.IntroductionPatch{
		Title:       &in.Title,
		Header:      &in.Header,
		Description: &in.Description,
	})
}

func (im *Importer) importSection(ctx context.Context, raw json.RawMessage) error {
	var in content.SectionCopyInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	cur, err := im.db.LatestSectionCopy(in.SectionKey)
	if errors.Is(err, apperr.ErrNotFound) {
		_, err = im.svc.CreateSectionCopy(ctx, in)
		return err
	}
	if err != nil {
		return err
	}
	if cur.Title == in.Title && cur.Header == in.Header && cur.Description == in.Description {
		return nil
	}
	return im.svc.UpdateSectionCopy(ctx, cur.ID, content.SectionCopyPatch{
		Title:       &in.Title,
		Header:      &in.Header,
		Description: &in.Description,
	})
}

func (im *Importer) importSkill(ctx context.Context, raw json.RawMessage) error {
	var in content.SkillInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	cur, err := im.db.SkillByTitle(in.Title)
	if errors.Is(err, apperr.ErrNotFound) {
		_, err = im.svc.CreateSkill(ctx, in)
		return err
	}
	if err != nil {
		return err
	}
	p := content.SkillPatch{Description: &in.Description, Link: &in.Link}
	if in.IconURL != "" {
		p.IconURL = &in.IconURL
	}
	if in.IconRef != "" {
		p.IconRef = &in.IconRef
	}
	return im.svc.UpdateSkill(ctx, cur.ID, p)
}

func (im *Importer) importTechnology(ctx context.Context, raw json.RawMessage) error {
	var in content.TechnologyInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	cur, err := im.db.TechnologyByName(in.Name)
	if errors.Is(err, apperr.ErrNotFound) {
		_, err = im.svc.CreateTechnology(ctx, in)
		return err
	}
	if err != nil {
		return err
	}
	return im.svc.UpdateTechnology(ctx, cur.ID, content.TechnologyPatch{
		Icon:    &in.Icon,
		Visible: in.Visible,
		Ord:     in.Ord,
	})
}

// Watch starts an fsnotify watcher on the seed directory and re-imports
// files as they are created or written, until ctx is cancelled. Bursts of
// writes to the same file are debounced.
func (im *Importer) Watch(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	im.logger.Info("seed: watcher started", slog.String("dir", dir))

	pending := make(map[string]struct{})
	var debounce *time.Timer
	var debounceCh <-chan time.Time

	schedule := func() {
		if debounce == nil {
			debounce = time.NewTimer(200 * time.Millisecond)
			debounceCh = debounce.C
		} else {
			debounce.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			im.logger.Info("seed: watcher stopped")
			return nil

		case <-debounceCh:
			for path := range pending {
				delete(pending, path)
				if err := im.importFile(ctx, path); err != nil {
					im.logger.Warn("seed: import failed",
						slog.String("file", filepath.Base(path)),
						slog.String("error", err.Error()))
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".json") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				pending[ev.Name] = struct{}{}
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			im.logger.Error("seed: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}
