package domain

import (
	"regexp"
	"strings"
)

// wqxRe matches the WQX suffix EPA appends to organization prefixes in portal
// extracts, e.g. "UTAHDWQ_WQX-4904410". The same location also appears under
// the bare id, so the suffix is stripped before keying to avoid duplicate
// stations.
var wqxRe = regexp.MustCompile(`(_WQX)-`)

// NormalizeStationID strips the _WQX suffix from a station or organization
// identifier.
func NormalizeStationID(id string) string {
	return wqxRe.ReplaceAllString(id, "-")
}

// HasWQXSuffix reports whether the identifier carries the _WQX suffix.
func HasWQXSuffix(id string) bool {
	return wqxRe.MatchString(id)
}

// paramAliases folds the spelling variants that appear across source programs
// onto one canonical analyte name.
var paramAliases = map[string]string{
	"bicarbonate as hco3":     "Bicarbonate",
	"alkalinity, bicarbonate": "Bicarbonate",
	"calcium as ca":           "Calcium",
	"magnesium as mg":         "Magnesium",
	"sodium as na":            "Sodium",
	"potassium as k":          "Potassium",
	"chloride as cl":          "Chloride",
	"sulfate as so4":          "Sulfate",
	"sulphate":                "Sulfate",
	"nitrate as n":            "Nitrate",
	"nitrate as no3":          "Nitrate",
	"carbonate as co3":        "Carbonate",
	"tds":                     "Total dissolved solids",
	"total dissolved solids (tds)": "Total dissolved solids",
}

// paramGroups assigns the reporting group for analytes the charts and queries
// group on. Analytes outside the table keep an empty ParamGroup.
var paramGroups = map[string]string{
	"Bicarbonate":            "Inorganics, Major, Non-metals",
	"Carbonate":              "Inorganics, Major, Non-metals",
	"Chloride":               "Inorganics, Major, Non-metals",
	"Sulfate":                "Inorganics, Major, Non-metals",
	"Calcium":                "Inorganics, Major, Metals",
	"Magnesium":              "Inorganics, Major, Metals",
	"Sodium":                 "Inorganics, Major, Metals",
	"Potassium":              "Inorganics, Major, Metals",
	"Nitrate":                "Nutrient",
	"Nitrite":                "Nutrient",
	"Phosphate":              "Nutrient",
	"Arsenic":                "Inorganics, Minor, Metals",
	"Iron":                   "Inorganics, Minor, Metals",
	"Manganese":              "Inorganics, Minor, Metals",
	"Selenium":               "Inorganics, Minor, Metals",
	"Total dissolved solids": "Physical",
	"Specific conductance":   "Physical",
	"pH":                     "Physical",
	"Temperature, water":     "Physical",
}

// NormalizeParam returns the canonical analyte name and its reporting group.
func NormalizeParam(param string) (string, string) {
	param = strings.TrimSpace(param)
	if canonical, ok := paramAliases[strings.ToLower(param)]; ok {
		param = canonical
	}
	return param, paramGroups[param]
}

// NormalizeResult applies analyte-name and station-id normalization to a
// mapped result. ParamGroup is only derived when the source did not supply
// one.
func NormalizeResult(r Result) Result {
	group := ""
	r.Param, group = NormalizeParam(r.Param)
	if r.ParamGroup == "" {
		r.ParamGroup = group
	}
	r.StationID = NormalizeStationID(r.StationID)
	r.OrgID = strings.TrimSpace(r.OrgID)
	return r
}

// NormalizeStation applies station-id normalization to a mapped station.
func NormalizeStation(s Station) Station {
	s.StationID = NormalizeStationID(s.StationID)
	s.OrgID = strings.TrimSpace(s.OrgID)
	return s
}
