// Package blob implements binary-asset storage: files on disk named by an
// opaque reference, metadata rows in the entity store, short-lived
// single-use upload targets, and time-bounded signed URLs for retrieval.
package blob

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/halvard/folio/internal/apperr"
	"github.com/halvard/folio/internal/checksum"
	"github.com/halvard/folio/internal/models"
	"github.com/halvard/folio/internal/store"
)

const (
	// MaxUploadBytes caps one upload.
	MaxUploadBytes = 10 << 20 // 10 MB

	tokenTTL = 10 * time.Minute
	urlTTL   = time.Hour
)

// allowedTypes is the MIME allowlist for uploads.
var allowedTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Store manages blob files under a root directory.
type Store struct {
	root    string
	db      *store.DB
	signKey []byte
	tokens  *gocache.Cache
}

// New creates a blob store rooted at dir, recording metadata in db and
// signing retrieval URLs with signKey. The directory is created if absent.
func New(dir string, db *store.DB, signKey []byte) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("blob: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create root: %w", err)
	}
	return &Store{
		root:    abs,
		db:      db,
		signKey: signKey,
		tokens:  gocache.New(tokenTTL, 2*tokenTTL),
	}, nil
}

// IssueUploadTarget mints a single-use upload token for the given content
// type. The caller PUTs raw bytes to the upload endpoint carrying this
// token within the token's lifetime.
func (s *Store) IssueUploadTarget(contentType string) (string, error) {
	if !allowedTypes[contentType] {
		return "", apperr.Invalid(fmt.Errorf("unsupported content type %q", contentType))
	}
	token := uuid.NewString()
	s.tokens.Set(token, contentType, gocache.DefaultExpiration)
	return token, nil
}

// ReceiveUpload consumes an upload token and stores the body, returning the
// new storage reference. Expired or already-used tokens report ErrGone.
func (s *Store) ReceiveUpload(token string, body io.Reader) (string, error) {
	ct, ok := s.tokens.Get(token)
	if !ok {
		return "", fmt.Errorf("blob: upload token: %w", apperr.ErrGone)
	}
	s.tokens.Delete(token)
	return s.Write(ct.(string), body)
}

// Write stores a blob directly (seed imports bypass the token flow) and
// returns its reference.
func (s *Store) Write(contentType string, body io.Reader) (string, error) {
	if !allowedTypes[contentType] {
		return "", apperr.Invalid(fmt.Errorf("unsupported content type %q", contentType))
	}
	data, err := io.ReadAll(io.LimitReader(body, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("blob: read body: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return "", apperr.Invalid(fmt.Errorf("upload exceeds %d bytes", MaxUploadBytes))
	}
	if len(data) == 0 {
		return "", apperr.Invalid(fmt.Errorf("empty upload"))
	}

	ref := uuid.NewString()
	abs := filepath.Join(s.root, ref)

	// Atomic write: tmp file, fsync, rename.
	tmp, err := os.CreateTemp(s.root, ".folio-tmp-*")
	if err != nil {
		return "", fmt.Errorf("blob: create temp: %w", err)
	}
	tmpName := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("blob: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("blob: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("blob: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return "", fmt.Errorf("blob: rename: %w", err)
	}
	success = true

	if err := s.db.InsertBlob(models.Blob{
		ID:          ref,
		ContentType: contentType,
		Size:        int64(len(data)),
		SHA256:      checksum.Sum(data),
	}); err != nil {
		_ = os.Remove(abs)
		return "", err
	}
	return ref, nil
}

// Resolve returns a time-bounded signed URL for a stored reference, or
// ErrNotFound for unknown refs. URLs are minted fresh on every read.
func (s *Store) Resolve(ref string) (string, error) {
	if _, err := s.db.GetBlob(ref); err != nil {
		return "", err
	}
	exp := time.Now().Add(urlTTL).Unix()
	return fmt.Sprintf("/blobs/%s?exp=%d&sig=%s", ref, exp, s.sign(ref, exp)), nil
}

// Verify checks a retrieval signature against the reference and expiry.
func (s *Store) Verify(ref string, exp int64, sig string) bool {
	if time.Now().Unix() > exp {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(s.sign(ref, exp)))
}

// Open returns the blob content and metadata for serving.
func (s *Store) Open(ref string) (io.ReadCloser, *models.Blob, error) {
	meta, err := s.db.GetBlob(ref)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(filepath.Join(s.root, ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("blob: %s: %w", ref, apperr.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("blob: open %s: %w", ref, err)
	}
	return f, meta, nil
}

// Delete removes the blob file and its metadata row. Referential integrity
// with records still pointing at the reference is the caller's concern.
func (s *Store) Delete(ref string) error {
	if err := s.db.DeleteBlob(ref); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, ref)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blob: remove %s: %w", ref, err)
	}
	return nil
}

// Fingerprint returns the stored sha256 for a reference, empty when the
// reference is unknown. The seed importer uses it to skip re-uploads.
func (s *Store) Fingerprint(ref string) string {
	meta, err := s.db.GetBlob(ref)
	if err != nil {
		return ""
	}
	return meta.SHA256
}

func (s *Store) sign(ref string, exp int64) string {
	mac := hmac.New(sha256.New, s.signKey)
	mac.Write([]byte(ref + "|" + strconv.FormatInt(exp, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
