// Package activity writes the audit side channel. Writes are best-effort:
// callers log and swallow the returned error, and a failed activity write
// never changes the outcome of the operation it describes.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinisys/labreports/internal/store"
)

// Collection holds the recent-activity feed shown on the dashboard.
const Collection = "recentActivities"

// templates are the default narratives per activity type; a custom report
// string from the caller takes precedence.
var templates = map[string]string{
	"records_search": "Searched medical records",
	"records_filter": "Applied filters to medical records",

	"cbc_add":    "Added new CBC record",
	"cbc_delete": "Deleted CBC record",
	"cbc_export": "Exported CBC data",

	"xray_add":    "Added new X-Ray record",
	"xray_delete": "Deleted X-Ray record",

	"ecg_add":    "Added new ECG record",
	"ecg_delete": "Deleted ECG record",

	"urinalysis_add":    "Added new Urinalysis record",
	"urinalysis_delete": "Deleted Urinalysis record",

	"lipid_add":    "Added new Lipid record",
	"lipid_delete": "Deleted Lipid record",

	"chem_add":    "Added new Chemistry record",
	"chem_delete": "Deleted Chemistry record",

	"medexam_add":    "Added new Medical Exam record",
	"medexam_delete": "Deleted Medical Exam record",

	"bulk_import": "Performed bulk data import",
	"bulk_export": "Performed bulk data export",
}

// Entry is one activity document.
type Entry struct {
	Firstname  string    `json:"firstname" firestore:"firstname"`
	Report     string    `json:"report" firestore:"report"`
	ReportDate time.Time `json:"reportDate" firestore:"reportDate"`
}

// Logger records operator activity into the store.
type Logger struct {
	store    store.Store
	operator string
	log      zerolog.Logger
	now      func() time.Time
}

// NewLogger creates an activity logger attributing entries to the given
// operator name.
func NewLogger(s store.Store, operator string, log zerolog.Logger) *Logger {
	return &Logger{
		store:    s,
		operator: operator,
		log:      log.With().Str("component", "activity").Logger(),
		now:      time.Now,
	}
}

// Record writes one activity entry. An empty report falls back to the
// template for the activity type.
func (l *Logger) Record(ctx context.Context, activityType, report string) error {
	if report == "" {
		report = templates[activityType]
	}
	if report == "" {
		report = fmt.Sprintf("Performed %s activity", activityType)
	}

	entry := Entry{
		Firstname:  l.operator,
		Report:     report,
		ReportDate: l.now().UTC(),
	}
	if _, err := l.store.Insert(ctx, Collection, entry); err != nil {
		l.log.Warn().Err(err).Str("type", activityType).Msg("activity write failed")
		return fmt.Errorf("record activity %s: %w", activityType, err)
	}
	return nil
}
