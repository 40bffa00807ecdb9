package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

// ErrFileNotFound is returned when no stored PDF matches a token.
var ErrFileNotFound = errors.New("file not found")

var tokenRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// FileStore keeps uploaded PDFs on disk under a single directory,
// addressed by opaque tokens rather than original file names.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create file store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes data to disk and returns the token it can be retrieved with.
func (f *FileStore) Save(data []byte) (string, error) {
	token := uuid.NewString()
	path := filepath.Join(f.dir, token+".pdf")
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("failed to write PDF file: %w", err)
	}
	return token, nil
}

// Path resolves a token to the stored file's path. Tokens that are not
// well formed UUIDs are rejected before touching the filesystem.
func (f *FileStore) Path(token string) (string, error) {
	if !tokenRe.MatchString(token) {
		return "", ErrFileNotFound
	}
	path := filepath.Join(f.dir, token+".pdf")
	if _, err := os.Stat(path); err != nil {
		return "", ErrFileNotFound
	}
	return path, nil
}
