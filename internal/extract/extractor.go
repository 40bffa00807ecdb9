package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoUsableData reports that none of a schema's identity-critical fields
// matched anything in the source text. Callers should skip the file rather
// than fabricate a record from noise.
var ErrNoUsableData = errors.New("no usable data: identity fields are empty")

// Kind selects the capture strategy for a field.
type Kind int

const (
	// Line captures `<label> : <value>` up to the end of the line.
	Line Kind = iota
	// Span captures everything between the field's label and the Until
	// label, across newlines.
	Span
	// Number behaves like Line and then keeps the first integer run,
	// falling back to 0.
	Number
	// Analyte captures an analyte row (result, unit, reference range and
	// an optional H/L flag) as a LabValue.
	Analyte
	// Pattern captures the first submatch of a custom regular expression.
	Pattern
	// PatternNumber is Pattern followed by integer conversion.
	PatternNumber
)

// FieldSpec declares a single field of a report schema: how it is labelled
// in the source document and how its value is captured.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     Kind
	Until    string // Span: label that bounds the capture
	Block    string // Analyte: restrict matching to the block headed by this label
	Pattern  string // Pattern, PatternNumber: custom expression with one capture group
	Fallback any    // value used when nothing matches; zero value of the kind if nil
	Identity bool   // field contributes to the no-usable-data check
}

// Draft is the loosely-typed field set produced by extraction, before it is
// shaped into a typed record. Values are strings, ints or LabValues.
type Draft map[string]any

// String returns the named field as a trimmed string, or "" if absent.
func (d Draft) String(name string) string {
	switch v := d[name].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// Int returns the named field as an int, tolerating string and float
// representations. Absent or non-numeric fields yield 0.
func (d Draft) Int(name string) int {
	switch v := d[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// LabValue returns the named field normalized into a LabValue.
func (d Draft) LabValue(name string) LabValue {
	return NormalizeLabValue(d[name])
}

var firstIntRe = regexp.MustCompile(`\d+`)

// Extract evaluates a field schema against raw report text and returns a
// best-effort draft. Every declared field is present in the result, with its
// fallback when the text carries nothing for it. The only failure mode is
// ErrNoUsableData, returned together with the draft when all identity
// fields came up empty.
func Extract(text string, schema []FieldSpec) (Draft, error) {
	draft := make(Draft, len(schema))
	identityTotal := 0
	identityEmpty := 0

	for _, f := range schema {
		value := captureField(text, f)
		draft[f.Name] = value

		if f.Identity {
			identityTotal++
			if s, ok := value.(string); ok && s == "" {
				identityEmpty++
			}
		}
	}

	if identityTotal > 0 && identityEmpty == identityTotal {
		return draft, ErrNoUsableData
	}
	return draft, nil
}

func captureField(text string, f FieldSpec) any {
	switch f.Kind {
	case Line:
		if v, ok := captureLine(text, f.Label); ok {
			return v
		}
		return stringFallback(f)
	case Span:
		if v, ok := captureSpan(text, f.Label, f.Until); ok {
			return v
		}
		return stringFallback(f)
	case Number:
		v, _ := captureLine(text, f.Label)
		if m := firstIntRe.FindString(v); m != "" {
			n, _ := strconv.Atoi(m)
			return n
		}
		return intFallback(f)
	case Analyte:
		scope := text
		if f.Block != "" {
			if block, ok := captureSpan(text, f.Block, ""); ok {
				scope = block
			} else {
				scope = ""
			}
		}
		if v, ok := captureAnalyte(scope, f.Label); ok {
			return v
		}
		if lv, ok := f.Fallback.(LabValue); ok {
			return lv
		}
		return LabValue{}
	case Pattern:
		if v, ok := capturePattern(text, f.Pattern); ok {
			return v
		}
		return stringFallback(f)
	case PatternNumber:
		v, _ := capturePattern(text, f.Pattern)
		if m := firstIntRe.FindString(v); m != "" {
			n, _ := strconv.Atoi(m)
			return n
		}
		return intFallback(f)
	}
	return stringFallback(f)
}

// captureLine finds the first case-insensitive `<label> : <value>` pair and
// returns the value up to the line break.
func captureLine(text, label string) (string, bool) {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `\s*[:\-]\s*(.+)`)
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// captureSpan captures the text between the start label and the next
// occurrence of the until label, non-greedy across newlines. An empty until
// label captures through the end of the text.
func captureSpan(text, start, until string) (string, bool) {
	bound := `\z`
	if until != "" {
		bound = `\n` + regexp.QuoteMeta(until) + `\s*:` + `|\z`
	}
	re := regexp.MustCompile(`(?is)` + regexp.QuoteMeta(start) + `\s*:?\s*(.*?)(?:` + bound + `)`)
	if m := re.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// Analyte rows come in a few layouts; try from most to least specific, the
// same way the source reports degrade.
var analyteRowPatterns = []string{
	`\s+([\d.]+)\s+(\S+)\s+([\d.]+\s*-\s*[\d.]+)(?:\s+([HL]))?`, // result unit range [flag]
	`\s+([\d.]+)\s+(#|%)\s*()(?:\s+([HL]))?`,                    // result count/percent marker
	`\s+([\d.]+)\s*()()(?:\s+([HL]))?`,                          // bare numeric result
}

func captureAnalyte(text, label string) (LabValue, bool) {
	for _, p := range analyteRowPatterns {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + p)
		if m := re.FindStringSubmatch(text); m != nil {
			return LabValue{
				Result:         strings.TrimSpace(m[1]),
				Unit:           strings.TrimSpace(m[2]),
				ReferenceRange: strings.TrimSpace(m[3]),
				Flag:           strings.TrimSpace(m[4]),
			}, true
		}
	}
	return LabValue{}, false
}

func capturePattern(text, pattern string) (string, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", false
	}
	if m := re.FindStringSubmatch(text); len(m) >= 2 {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

func stringFallback(f FieldSpec) string {
	if s, ok := f.Fallback.(string); ok {
		return s
	}
	return ""
}

func intFallback(f FieldSpec) int {
	if n, ok := f.Fallback.(int); ok {
		return n
	}
	return 0
}
