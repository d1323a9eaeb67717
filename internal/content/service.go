// Package content is the service layer over the entity store and blob
// storage. Every write path validates its input here before the store is
// touched; the store itself accepts any well-typed payload.
package content

import (
	"log/slog"

	"github.com/halvard/folio/internal/blob"
	"github.com/halvard/folio/internal/store"
)

// EventFunc receives entity change notifications (entity, action, id).
type EventFunc func(entity, action, id string)

// Service coordinates store and blob operations.
type Service struct {
	db     *store.DB
	blobs  *blob.Store
	logger *slog.Logger
	notify EventFunc
}

// NewService creates a content service. notify may be nil.
func NewService(db *store.DB, blobs *blob.Store, logger *slog.Logger, notify EventFunc) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, blobs: blobs, logger: logger, notify: notify}
}

func (s *Service) emit(entity, action, id string) {
	if s.notify != nil {
		s.notify(entity, action, id)
	}
}

// resolve maps a blob reference to a signed URL, degrading to an empty URL
// when resolution fails. Callers render a placeholder for empty URLs.
func (s *Service) resolve(ref string) string {
	if ref == "" {
		return ""
	}
	url, err := s.blobs.Resolve(ref)
	if err != nil {
		s.logger.Debug("blob resolution failed", slog.String("ref", ref), slog.String("error", err.Error()))
		return ""
	}
	return url
}

// cleanupBlob deletes a blob no record references anymore, either because
// an insert failed after its upload or because a patch replaced it.
// Cleanup failure is logged, not propagated.
func (s *Service) cleanupBlob(ref string) {
	if ref == "" {
		return
	}
	if err := s.blobs.Delete(ref); err != nil {
		s.logger.Warn("orphaned blob cleanup failed", slog.String("ref", ref), slog.String("error", err.Error()))
	}
}
