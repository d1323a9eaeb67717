// Package testutil provides shared test helpers for setting up stores and
// services.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/halvard/folio/internal/blob"
	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/store"
)

// TestDB creates a temporary SQLite store that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "folio-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestBlobs creates a blob store over a temporary directory sharing the
// given DB, with a fixed signing key.
func TestBlobs(t *testing.T, db *store.DB) *blob.Store {
	t.Helper()
	blobs, err := blob.New(t.TempDir(), db, []byte("test-signing-key"))
	if err != nil {
		t.Fatal(err)
	}
	return blobs
}

// TestService wires a content service over temporary stores with a
// discarding logger and no event sink.
func TestService(t *testing.T) (*content.Service, *store.DB, *blob.Store) {
	t.Helper()
	db := TestDB(t)
	blobs := TestBlobs(t, db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return content.NewService(db, blobs, logger, nil), db, blobs
}
