package report

import (
	"errors"
	"strings"

	"github.com/clinisys/labreports/internal/extract"
)

// ErrEmptyUniqueID reports that no deduplication key could be derived for a
// draft. The file must be skipped and reported as failed; an empty unique ID
// would defeat the duplicate guard.
var ErrEmptyUniqueID = errors.New("unique id could not be derived")

// DeriveUniqueID computes the deduplication key for a report. An identifier
// embedded in the document (order or record number, surfaced by the parser
// as the draft's uniqueId field) wins; otherwise the source file name minus
// its .pdf extension is used. The same draft and file name always produce
// the same ID.
func DeriveUniqueID(d extract.Draft, fileName string) (string, error) {
	if embedded := d.String("uniqueId"); embedded != "" {
		return embedded, nil
	}

	name := strings.TrimSpace(fileName)
	name = strings.TrimSuffix(name, ".pdf")
	name = strings.TrimSuffix(name, ".PDF")
	if name == "" {
		return "", ErrEmptyUniqueID
	}
	return name, nil
}
