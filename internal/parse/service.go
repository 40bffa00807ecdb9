// Package parse produces report drafts: the loosely-typed field sets that
// normalization shapes into records. The Service parses in-process; the
// Client defers to a remote parse endpoint with the same contract.
package parse

import (
	"context"
	"fmt"

	"github.com/clinisys/labreports/internal/extract"
	"github.com/clinisys/labreports/internal/pdftext"
	"github.com/clinisys/labreports/internal/report"
)

// Parser is the boundary the ingestion pipeline calls to turn an uploaded
// PDF into a draft. Implementations are the in-process Service and the
// remote Client.
type Parser interface {
	Parse(ctx context.Context, t report.Type, fileName string, data []byte) (extract.Draft, error)
}

// Service extracts drafts locally: PDF text layer, then the report type's
// field schema.
type Service struct {
	reader *pdftext.Reader
}

// NewService creates an in-process parser.
func NewService(maxFileSize int64) *Service {
	return &Service{reader: pdftext.NewReader(maxFileSize)}
}

// Parse extracts the draft for one uploaded PDF. extract.ErrNoUsableData
// surfaces unwrapped so callers can distinguish an unusable document from a
// broken one.
func (s *Service) Parse(ctx context.Context, t report.Type, fileName string, data []byte) (extract.Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := s.reader.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", fileName, err)
	}

	return s.ParseText(t, text)
}

// ParseText evaluates a report type's schema against already-extracted text.
func (s *Service) ParseText(t report.Type, text string) (extract.Draft, error) {
	desc, ok := report.DescriptorFor(t)
	if !ok {
		return nil, fmt.Errorf("unknown report type %q", t)
	}
	return extract.Extract(text, desc.Schema)
}

// DetectType guesses the report type of a PDF from its text, for callers
// that were not told which panel they are looking at.
func (s *Service) DetectType(data []byte) (report.Type, error) {
	text, err := s.reader.ExtractText(data)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	t, ok := report.DetectType(text)
	if !ok {
		return "", fmt.Errorf("report type could not be detected")
	}
	return t, nil
}
