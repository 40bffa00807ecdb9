package report

import "strings"

// typeMarkers are phrases that identify a report type in its extracted
// text. Scoring is a plain occurrence count; ties resolve in Types() order,
// which puts the more specific panels first.
var typeMarkers = map[Type][]string{
	TypeCBC:        {"complete blood count", "wbc count", "rbc count", "hematocrit", "platelet count", "mchc"},
	TypeXRay:       {"radiographic", "x-ray", "interpretation", "impression", "examination"},
	TypeECG:        {"electrocardiogram", "ecg", "qrs", "qt/qtc", "pqrst", "rr/pp"},
	TypeUrinalysis: {"urinalysis", "specific gravity", "leukocyte esterase", "urobilinogen", "hyaline cast"},
	TypeLipid:      {"lipid profile", "total cholesterol", "triglycerides", "hdl", "ldl", "vldl"},
	TypeChem:       {"blood chemistry", "chemistry", "creatinine", "sgpt", "fbs", "bua"},
	TypeMedExam:    {"medical examination", "fitness status", "civil status", "peme", "examining physician"},
}

// DetectType guesses the report type of extracted text by scoring marker
// phrases. The second return is false when nothing matched at all.
func DetectType(text string) (Type, bool) {
	lower := strings.ToLower(text)

	best := Type("")
	bestScore := 0
	for _, t := range Types() {
		score := 0
		for _, marker := range typeMarkers[t] {
			score += strings.Count(lower, marker)
		}
		if score > bestScore {
			best = t
			bestScore = score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}
