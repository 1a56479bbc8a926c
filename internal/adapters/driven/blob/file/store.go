// Package file provides a local filesystem implementation of the blob
// store. Uploaded images live under the data directory and are addressed
// with file:// URLs, which keeps the ledger's image URLs stable across
// runs without any cloud dependency.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore stores binary artifacts on the local filesystem.
type BlobStore struct {
	dir string
}

// NewBlobStore creates a blob store rooted at dataDir/images.
// If dataDir is empty, defaults to ~/.techpack/images.
func NewBlobStore(dataDir string) (*BlobStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".techpack")
	}

	dir := filepath.Join(dataDir, "images")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}

	return &BlobStore{dir: dir}, nil
}

// Dir returns the directory blobs are stored in.
func (s *BlobStore) Dir() string {
	return s.dir
}

// Upload stores the data under fileName and returns a file:// URL.
func (s *BlobStore) Upload(_ context.Context, data []byte, fileName string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("blob: refusing to store empty file %q", fileName)
	}

	path := filepath.Join(s.dir, sanitize(fileName))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("writing blob: %w", err)
	}
	return "file://" + path, nil
}

// Fetch retrieves a previously uploaded blob by its URL.
func (s *BlobStore) Fetch(_ context.Context, url string) ([]byte, error) {
	path := strings.TrimPrefix(url, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return data, nil
}

// sanitize strips path separators so a crafted file name cannot escape
// the blob directory.
func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, name)
}
