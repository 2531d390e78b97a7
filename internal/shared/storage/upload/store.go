package upload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"study-backend/internal/shared/util"
)

// Store writes uploaded files to a scratch directory for the lifetime of one
// request. Files are expected to be removed before the request completes.
type Store struct {
	baseDir string
}

// New creates a transient upload store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// SavedFile describes a file written to transient storage.
type SavedFile struct {
	Path       string
	StoredName string
	SizeBytes  int64
}

// Save writes the reader to disk under a random prefix and returns the file location.
func (s *Store) Save(ctx context.Context, fileName string, r io.Reader) (SavedFile, error) {
	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return SavedFile{}, fmt.Errorf("sanitize file name: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return SavedFile{}, err
	}

	storedName := fmt.Sprintf("%s_%s", randomID(), sanitizedName)

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return SavedFile{}, fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(s.baseDir, storedName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return SavedFile{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		_ = os.Remove(fullPath)
		return SavedFile{}, fmt.Errorf("write body: %w", err)
	}

	return SavedFile{Path: fullPath, StoredName: storedName, SizeBytes: written}, nil
}

// Remove deletes a transient file. A missing file is not an error.
func (s *Store) Remove(path string) error {
	clean := filepath.Clean(path)
	if !strings.HasPrefix(clean, filepath.Clean(s.baseDir)+string(filepath.Separator)) {
		return fmt.Errorf("path outside upload dir")
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
