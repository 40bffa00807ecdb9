package server

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSaveAndPath(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("%PDF-1.4 content")
	token, err := fs.Save(content)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	path, err := fs.Path(token)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFileStorePathRejectsBadTokens(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, token := range []string{
		"",
		"not-a-uuid",
		"../escape",
		"0b7a1ce2-0000-4000-8000-000000000000", // well formed but unknown
	} {
		_, err := fs.Path(token)
		assert.ErrorIs(t, err, ErrFileNotFound, "token %q", token)
	}
}

func TestNewFileStoreEmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}
