// Package ingest drives the per-file pipeline across a batch upload:
// submit, parse, normalize, guard duplicates, persist, report. Files are
// processed strictly one at a time so progress messages and duplicate
// checks observe a consistent, monotonically advancing store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinisys/labreports/internal/activity"
	"github.com/clinisys/labreports/internal/extract"
	"github.com/clinisys/labreports/internal/parse"
	"github.com/clinisys/labreports/internal/pdftext"
	"github.com/clinisys/labreports/internal/report"
	"github.com/clinisys/labreports/internal/store"
)

// Status is the terminal state of one file.
type Status string

const (
	StatusStored  Status = "stored"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Skip and failure reasons surfaced in the batch narrative.
const (
	ReasonNotPDF     = "not a PDF"
	ReasonInvalidPDF = "invalid PDF"
	ReasonDuplicate  = "duplicate"
)

// File is one member of a batch upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	PDFURL      string // where the stored PDF can be viewed, if it was kept
}

// Outcome is the terminal state of one file plus what the operator needs to
// recognize it: the patient and the deduplication key.
type Outcome struct {
	File        string `json:"file"`
	Status      Status `json:"status"`
	Reason      string `json:"reason,omitempty"`
	PatientName string `json:"patientName,omitempty"`
	UniqueID    string `json:"uniqueId,omitempty"`
	DocID       string `json:"docId,omitempty"`
}

// BatchResult aggregates a batch: per-file outcomes, the count of records
// actually written, and a fresh read of the collection so callers render
// ground truth rather than an incremental merge.
type BatchResult struct {
	Total    int              `json:"total"`
	Uploaded int              `json:"uploaded"`
	Outcomes []Outcome        `json:"outcomes"`
	Records  []store.Document `json:"records"`
}

// Ingestor runs batches against a parser and a record store.
type Ingestor struct {
	parser   parse.Parser
	store    store.Store
	activity *activity.Logger
	log      zerolog.Logger

	// Validate, when set, structurally checks PDF bytes before any parse
	// or store call is spent on them. Set once during wiring.
	Validate func(data []byte) error

	parseTimeout time.Duration
	now          func() time.Time
}

// Progress receives the running status narrative of one batch; nil
// disables it. Each IngestBatch call gets its own callback so concurrent
// batches never share narration state.
type Progress func(msg string)

// New creates an Ingestor. The activity logger may be nil; parseTimeout
// bounds each file's parse step so one hung call cannot stall the batch
// forever.
func New(p parse.Parser, s store.Store, act *activity.Logger, parseTimeout time.Duration, log zerolog.Logger) *Ingestor {
	if parseTimeout <= 0 {
		parseTimeout = 60 * time.Second
	}
	return &Ingestor{
		parser:       p,
		store:        s,
		activity:     act,
		log:          log.With().Str("component", "ingest").Logger(),
		parseTimeout: parseTimeout,
		now:          time.Now,
	}
}

// IngestBatch processes the files sequentially and never lets one file's
// failure abort the rest. The returned error is non-nil only when the
// context is cancelled mid-batch.
func (in *Ingestor) IngestBatch(ctx context.Context, files []File, desc report.Descriptor, progress Progress) (*BatchResult, error) {
	result := &BatchResult{Total: len(files)}
	emit := func(msg string) {
		if progress != nil {
			progress(msg)
		}
	}

	emit("Starting upload...")

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		emit(fmt.Sprintf("Processing %s... (%d/%d)", f.Name, i+1, len(files)))
		outcome := in.ingestOne(ctx, f, desc, emit)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Status == StatusStored {
			result.Uploaded++
		}

		in.log.Info().
			Str("file", f.Name).
			Str("status", string(outcome.Status)).
			Str("reason", outcome.Reason).
			Str("uniqueId", outcome.UniqueID).
			Msg("file processed")
	}

	// Fresh read so the caller renders what the store actually holds.
	records, err := in.store.List(ctx, desc.Collection)
	if err != nil {
		in.log.Error().Err(err).Str("collection", desc.Collection).Msg("reload after batch failed")
	} else {
		result.Records = records
	}

	if result.Uploaded > 1 {
		in.recordActivity(ctx, "bulk_import",
			fmt.Sprintf("Bulk uploaded %d %s records from %d files", result.Uploaded, desc.Type, result.Total))
	}

	emit("Upload finished.")
	return result, nil
}

// ingestOne walks a single file through the state machine. Every error is
// converted to a terminal outcome here; nothing propagates.
func (in *Ingestor) ingestOne(ctx context.Context, f File, desc report.Descriptor, emit func(string)) Outcome {
	outcome := Outcome{File: f.Name}

	// Submitted: wrong file types are rejected before any parse or store
	// call is spent on them.
	if f.ContentType != pdftext.MIMEPDF {
		outcome.Status = StatusSkipped
		outcome.Reason = ReasonNotPDF
		emit(fmt.Sprintf("File %s is not a PDF file", f.Name))
		return outcome
	}

	// Validated: structurally broken uploads are caught before the parse
	// and store budget is spent on them.
	if in.Validate != nil {
		if err := in.Validate(f.Data); err != nil {
			outcome.Status = StatusSkipped
			outcome.Reason = ReasonInvalidPDF
			emit(fmt.Sprintf("File %s is not a readable PDF", f.Name))
			return outcome
		}
	}

	// Parsed.
	parseCtx, cancel := context.WithTimeout(ctx, in.parseTimeout)
	draft, err := in.parser.Parse(parseCtx, desc.Type, f.Name, f.Data)
	cancel()
	if err != nil {
		if errors.Is(err, extract.ErrNoUsableData) {
			outcome.Status = StatusFailed
			outcome.Reason = "no usable data"
			return outcome
		}
		outcome.Status = StatusFailed
		outcome.Reason = fmt.Sprintf("parse failed: %v", err)
		return outcome
	}

	// Normalized.
	rec, err := desc.Build(draft, f.Name, in.now())
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Reason = fmt.Sprintf("normalize failed: %v", err)
		return outcome
	}
	outcome.PatientName = rec.Patient()
	outcome.UniqueID = rec.UID()
	if f.PDFURL != "" {
		rec.AttachPDF(f.PDFURL)
	}

	// DuplicateChecked.
	exists, err := in.store.ExistsByField(ctx, desc.Collection, desc.UniqueIDField, rec.UID())
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Reason = fmt.Sprintf("duplicate check failed: %v", err)
		return outcome
	}
	if exists {
		outcome.Status = StatusSkipped
		outcome.Reason = ReasonDuplicate
		emit(fmt.Sprintf("Record already exists for %s", rec.Patient()))
		return outcome
	}

	// Stored. A failed write is a failure, never a count.
	id, err := in.store.Insert(ctx, desc.Collection, rec)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Reason = fmt.Sprintf("store write failed: %v", err)
		return outcome
	}
	outcome.Status = StatusStored
	outcome.DocID = id
	emit(fmt.Sprintf("Saved %s", rec.Patient()))

	in.recordActivity(ctx, desc.ActivityKey+"_add",
		fmt.Sprintf("Added %s record for %s (%s)", desc.Type, rec.Patient(), rec.UID()))

	return outcome
}

// recordActivity is fire-and-forget: the side channel never affects the
// primary outcome.
func (in *Ingestor) recordActivity(ctx context.Context, actType, msg string) {
	if in.activity == nil {
		return
	}
	if err := in.activity.Record(ctx, actType, msg); err != nil {
		in.log.Warn().Err(err).Str("type", actType).Msg("activity log failed")
	}
}
