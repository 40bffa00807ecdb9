package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextEmptyData(t *testing.T) {
	r := NewReader(0)
	_, err := r.ExtractText(nil)
	assert.Error(t, err)
}

func TestExtractTextTooLarge(t *testing.T) {
	r := NewReader(4)
	_, err := r.ExtractText([]byte("%PDF-1.4 more than four bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file too large")
}

func TestExtractTextNotPDF(t *testing.T) {
	r := NewReader(0)
	_, err := r.ExtractText([]byte("plain text, not a pdf"))
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestExtractTextFileMissing(t *testing.T) {
	r := NewReader(0)
	_, err := r.ExtractTextFile("/no/such/file.pdf")
	assert.Error(t, err)

	_, err = r.ExtractTextFile("")
	assert.Error(t, err)
}

func TestExtractTextFileDirectory(t *testing.T) {
	r := NewReader(0)
	_, err := r.ExtractTextFile(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}
