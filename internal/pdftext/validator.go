package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// MIMEPDF is the only content type the ingestion pipeline accepts.
const MIMEPDF = "application/pdf"

// Validator decides whether an upload is a readable PDF before any network
// or store call is spent on it.
type Validator struct {
	maxFileSize int64
	conf        *model.Configuration
}

// NewValidator creates a new PDF validator with the specified constraints.
func NewValidator(maxFileSize int64) *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Validator{
		maxFileSize: maxFileSize,
		conf:        conf,
	}
}

// ValidateBytes checks an in-memory upload: non-empty, within the size
// limit, and structurally a PDF.
func (v *Validator) ValidateBytes(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("file is empty")
	}
	if v.maxFileSize > 0 && int64(len(data)) > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", len(data), v.maxFileSize)
	}
	if err := api.Validate(bytes.NewReader(data), v.conf); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}

// ValidateFile checks a PDF on disk.
func (v *Validator) ValidateFile(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if v.maxFileSize > 0 && fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), v.maxFileSize)
	}

	if err := api.ValidateFile(path, v.conf); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}

// IsValidPDF is a quick boolean check used when scanning directories.
func (v *Validator) IsValidPDF(path string) bool {
	return v.ValidateFile(path) == nil
}
