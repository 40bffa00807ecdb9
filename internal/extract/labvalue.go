package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// LabValue is one analyte measurement. All four fields are always defined,
// possibly empty, so consumers never have to guard against missing keys.
// Flag is "H", "L" or "".
type LabValue struct {
	Result         string `json:"result" firestore:"result"`
	Unit           string `json:"unit" firestore:"unit"`
	ReferenceRange string `json:"reference_range" firestore:"reference_range"`
	Flag           string `json:"flag" firestore:"flag"`
}

// rawFragmentRe decomposes a free-text analyte fragment: a result token, an
// optional unit token, a reference range in parentheses or after a dash/colon
// delimiter, and an optional trailing H/L flag.
var rawFragmentRe = regexp.MustCompile(
	`^\s*([\d.]+|[^\s(]+)` + // result
		`(?:\s+([^\s(]+))?` + // unit
		`(?:\s*(?:\(([^)]*)\)|[-:]\s*([\d.\- ]+)))?` + // reference range
		`(?:\s+([HL]))?\s*$`) // flag

// NormalizeLabValue shapes an arbitrary draft value into a LabValue. It
// accepts an already-structured LabValue or map (absent keys filled with ""),
// a raw text fragment to be decomposed, or nothing at all.
func NormalizeLabValue(v any) LabValue {
	switch x := v.(type) {
	case LabValue:
		return sanitizeFlag(x)
	case *LabValue:
		if x == nil {
			return LabValue{}
		}
		return sanitizeFlag(*x)
	case map[string]any:
		return sanitizeFlag(LabValue{
			Result:         stringKey(x, "result"),
			Unit:           stringKey(x, "unit"),
			ReferenceRange: stringKey(x, "reference_range"),
			Flag:           stringKey(x, "flag"),
		})
	case map[string]string:
		return sanitizeFlag(LabValue{
			Result:         x["result"],
			Unit:           x["unit"],
			ReferenceRange: x["reference_range"],
			Flag:           x["flag"],
		})
	case string:
		return decomposeFragment(x)
	case float64, int, int64:
		return LabValue{Result: fmt.Sprintf("%v", x)}
	case nil:
		return LabValue{}
	}
	return LabValue{Result: fmt.Sprintf("%v", v)}
}

func decomposeFragment(s string) LabValue {
	s = strings.TrimSpace(s)
	if s == "" {
		return LabValue{}
	}
	m := rawFragmentRe.FindStringSubmatch(s)
	if m == nil {
		return LabValue{Result: s}
	}
	rng := m[3]
	if rng == "" {
		rng = strings.TrimSpace(m[4])
	}
	return LabValue{
		Result:         m[1],
		Unit:           m[2],
		ReferenceRange: rng,
		Flag:           m[5],
	}
}

func sanitizeFlag(lv LabValue) LabValue {
	switch strings.ToUpper(strings.TrimSpace(lv.Flag)) {
	case "H":
		lv.Flag = "H"
	case "L":
		lv.Flag = "L"
	default:
		lv.Flag = ""
	}
	return lv
}

func stringKey(m map[string]any, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return ""
}
