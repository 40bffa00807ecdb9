package report

import (
	"fmt"
	"time"

	"github.com/clinisys/labreports/internal/extract"
)

// Type identifies a report type. The string values double as the `type`
// query parameter of the upload endpoints.
type Type string

const (
	TypeCBC        Type = "cbc"
	TypeXRay       Type = "xray"
	TypeECG        Type = "ecg"
	TypeUrinalysis Type = "urinalysis"
	TypeLipid      Type = "lipid"
	TypeChem       Type = "chem"
	TypeMedExam    Type = "medical"
)

// Descriptor parameterizes the generic ingestion pipeline for one report
// type: where its records live, how its fields are captured and how a draft
// becomes a typed record. All report-specific behaviour lives here.
type Descriptor struct {
	Type          Type
	Collection    string
	UniqueIDField string // store field the duplicate guard filters on
	ActivityKey   string // prefix for activity audit entries, e.g. "cbc" -> cbc_add
	Schema        []extract.FieldSpec
	Build         func(d extract.Draft, fileName string, now time.Time) (Record, error)
}

var descriptors = map[Type]Descriptor{
	TypeCBC: {
		Type:          TypeCBC,
		Collection:    "cbcRecords",
		UniqueIDField: "uniqueId",
		ActivityKey:   "cbc",
		Schema:        cbcSchema,
		Build:         buildCBC,
	},
	TypeXRay: {
		Type:          TypeXRay,
		Collection:    "xrayRecords",
		UniqueIDField: "uniqueId",
		ActivityKey:   "xray",
		Schema:        xraySchema,
		Build:         buildXRay,
	},
	TypeECG: {
		Type:          TypeECG,
		Collection:    "ecgRecords",
		UniqueIDField: "uniqueId",
		ActivityKey:   "ecg",
		Schema:        ecgSchema,
		Build:         buildECG,
	},
	TypeUrinalysis: {
		Type:          TypeUrinalysis,
		Collection:    "urinalysisRecords",
		UniqueIDField: "uniqueId",
		ActivityKey:   "urinalysis",
		Schema:        urinalysisSchema,
		Build:         buildUrinalysis,
	},
	TypeLipid: {
		Type:          TypeLipid,
		Collection:    "lipidProfileRecords",
		UniqueIDField: "uniqueId",
		ActivityKey:   "lipid",
		Schema:        lipidSchema,
		Build:         buildLipid,
	},
	TypeChem: {
		Type:          TypeChem,
		Collection:    "chemRecords",
		UniqueIDField: "uniqueId",
		ActivityKey:   "chem",
		Schema:        chemSchema,
		Build:         buildChem,
	},
	TypeMedExam: {
		Type:          TypeMedExam,
		Collection:    "medExamRecords",
		UniqueIDField: "uniqueId",
		ActivityKey:   "medexam",
		Schema:        medExamSchema,
		Build:         buildMedExam,
	},
}

// DescriptorFor returns the descriptor for a report type.
func DescriptorFor(t Type) (Descriptor, bool) {
	d, ok := descriptors[t]
	return d, ok
}

// Types lists all known report types in a stable order.
func Types() []Type {
	return []Type{TypeCBC, TypeXRay, TypeECG, TypeUrinalysis, TypeLipid, TypeChem, TypeMedExam}
}

// ParseType resolves a type string from a request or flag, accepting the
// aliases that have accumulated in clients.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeCBC, TypeXRay, TypeECG, TypeUrinalysis, TypeLipid, TypeChem, TypeMedExam:
		return Type(s), nil
	}
	switch s {
	case "x-ray":
		return TypeXRay, nil
	case "lipidprofile", "lipid-profile":
		return TypeLipid, nil
	case "chemistry":
		return TypeChem, nil
	case "medexam", "medical-exam", "med-exam":
		return TypeMedExam, nil
	}
	return "", fmt.Errorf("unknown report type %q", s)
}
