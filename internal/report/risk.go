package report

import (
	"strconv"
	"strings"
)

// Risk bands shown against a lipid panel's total cholesterol.
const (
	RiskHigh   = "High Risk"
	RiskNormal = "Normal"
	RiskNA     = "N/A"
)

// LipidRiskBand classifies a total-cholesterol result. Results are stored as
// strings and parsed on demand; anything non-numeric classifies as N/A
// rather than failing.
func LipidRiskBand(result string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(result), 64)
	if err != nil {
		return RiskNA
	}
	if v > 200 {
		return RiskHigh
	}
	return RiskNormal
}
