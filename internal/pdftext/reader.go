// Package pdftext turns uploaded lab report PDFs into the raw text the
// field extractor works on.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF is returned when the input cannot be opened as a PDF at all.
var ErrNotPDF = errors.New("not a valid PDF file")

// Reader extracts the text layer of a PDF.
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ExtractText extracts the full text content of an in-memory PDF, pages
// concatenated in order.
func (r *Reader) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("pdf data is empty")
	}
	if r.maxFileSize > 0 && int64(len(data)) > r.maxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max: %d bytes)", len(data), r.maxFileSize)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	return r.extractTextContent(reader)
}

// ExtractTextFile extracts the full text content of a PDF on disk.
func (r *Reader) ExtractTextFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if r.maxFileSize > 0 && fileInfo.Size() > r.maxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), r.maxFileSize)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return r.extractTextContent(reader)
}

// extractTextContent walks the pages and concatenates their plain text,
// bounded by the text size limit.
func (r *Reader) extractTextContent(reader *pdf.Reader) (string, error) {
	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the report;
			// the extractor works on whatever text is available.
			continue
		}

		if totalLength+len(text) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(text[:remaining])
			}
			break
		}

		builder.WriteString(text)
		builder.WriteString("\n")
		totalLength += len(text) + 1
	}

	content := builder.String()
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no extractable text content")
	}
	return content, nil
}
