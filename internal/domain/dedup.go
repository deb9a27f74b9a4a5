package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// ResultDedupKey builds a deterministic content key for a result row. The
// Results table has no natural key, so repeated loads of the same extract
// would otherwise append duplicate rows; hashing the identifying fields lets
// the loader skip rows it has already committed, within a run and across
// re-runs.
func ResultDedupKey(r *Result) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s",
		r.StationID,
		r.Param,
		formatDate(r.SampleDate),
		r.SampleTime,
		formatValue(r.ResultValue),
	)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:16])
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}

// Non-detect condition texts and qualifier codes recognized as an explicit
// statement that the analyte was not measured above the detection limit. A
// result carrying one of these is valid without a numeric value.
var (
	nonDetectConditions = map[string]struct{}{
		"not detected":                        {},
		"not present":                         {},
		"below detection limit":               {},
		"present below quantification limit":  {},
		"detected not quantified":             {},
		"below method detection limit":        {},
		"below reporting limit":               {},
		"systematic contamination":            {},
		"not reported":                        {},
		"value decensored to lower limit":     {},
		"present above quantification limit":  {},
		"high moisture":                       {},
		"value affected by contamination":     {},
		"between inst detect and quant limit": {},
	}

	nonDetectQualifiers = map[string]struct{}{
		"U":  {},
		"ND": {},
		"<":  {},
		"K":  {},
		"UJ": {},
	}
)

// IsNonDetect reports whether a detection-condition text or qualifier code
// marks the result as a recognized non-detect.
func IsNonDetect(detectCond, qualCode string) bool {
	if detectCond != "" {
		if _, ok := nonDetectConditions[strings.ToLower(strings.TrimSpace(detectCond))]; ok {
			return true
		}
	}
	if qualCode != "" {
		if _, ok := nonDetectQualifiers[strings.ToUpper(strings.TrimSpace(qualCode))]; ok {
			return true
		}
	}
	return false
}
