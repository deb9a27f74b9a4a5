// Package mapper translates raw source records into the destination column
// vocabulary. Each source program has a rule set: a rename table from its
// column names onto the Stations/Results vocabulary plus the type coercions
// the destination schema demands. Source columns without a rename are
// dropped; that is deliberate lossy normalization, not data loss worth
// reporting.
package mapper

import (
	"strconv"
	"strings"
	"time"

	"github.com/ugswater/dbseeder/internal/domain"
	"github.com/ugswater/dbseeder/internal/source"
)

// Rules maps one source program's columns onto the destination vocabulary.
type Rules struct {
	// Label is stamped into every record's DataSource column.
	Label string

	StationRenames map[string]string
	ResultRenames  map[string]string
}

// canonical applies the rename table, keeping only destination columns.
// Values are whitespace-trimmed; empty values are dropped so nullable
// handling stays uniform downstream.
func canonical(rec source.RawRecord, renames map[string]string) map[string]string {
	out := make(map[string]string, len(renames))
	for src, dst := range renames {
		v := strings.TrimSpace(rec[src])
		if v != "" {
			out[dst] = v
		}
	}
	return out
}

// MapStation normalizes a raw station record. The only hard requirement at
// this stage is that the rename table yields a StationId; value-level
// validation belongs to the resolver.
func (r *Rules) MapStation(rec source.RawRecord) (domain.Station, error) {
	row := canonical(rec, r.StationRenames)

	if stationIDSource(r.StationRenames) == "" {
		return domain.Station{}, &domain.MappingError{Field: "StationId", Reason: "no source counterpart in rename table"}
	}

	s := domain.Station{
		OrgID:          row["OrgId"],
		OrgName:        row["OrgName"],
		StationID:      row["StationId"],
		StationName:    row["StationName"],
		StationType:    row["StationType"],
		StationComment: row["StationComment"],
		HUC8:           row["HUC8"],
		HorAccUnit:     row["HorAccUnit"],
		HorCollMeth:    row["HorCollMeth"],
		HorRef:         row["HorRef"],
		ElevUnit:       row["ElevUnit"],
		ElevAccUnit:    row["ElevAccUnit"],
		ElevMeth:       row["ElevMeth"],
		ElevRef:        row["ElevRef"],
		Aquifer:        row["Aquifer"],
		FmType:         row["FmType"],
		AquiferType:    row["AquiferType"],
		DepthUnit:      row["DepthUnit"],
		HoleDUnit:      row["HoleDUnit"],
		WIN:            row["WIN"],
		DataSource:     r.Label,
	}

	var err error
	if s.LonX, err = coerceFloat(row, "Lon_X"); err != nil {
		return domain.Station{}, err
	}
	if s.LatY, err = coerceFloat(row, "Lat_Y"); err != nil {
		return domain.Station{}, err
	}
	if s.HorAcc, err = coerceFloat(row, "HorAcc"); err != nil {
		return domain.Station{}, err
	}
	if s.Elev, err = coerceFloat(row, "Elev"); err != nil {
		return domain.Station{}, err
	}
	if s.ElevAcc, err = coerceFloat(row, "ElevAcc"); err != nil {
		return domain.Station{}, err
	}
	if s.Depth, err = coerceFloat(row, "Depth"); err != nil {
		return domain.Station{}, err
	}
	if s.HoleDepth, err = coerceFloat(row, "HoleDepth"); err != nil {
		return domain.Station{}, err
	}
	if s.DemELEVm, err = coerceFloat(row, "demELEVm"); err != nil {
		return domain.Station{}, err
	}
	if s.StateCode, err = coerceInt(row, "StateCode"); err != nil {
		return domain.Station{}, err
	}
	if s.CountyCode, err = coerceInt(row, "CountyCode"); err != nil {
		return domain.Station{}, err
	}
	if s.ConstDate, err = coerceDate(row, "ConstDate"); err != nil {
		return domain.Station{}, err
	}

	return domain.NormalizeStation(s), nil
}

// MapResult normalizes a raw result record. ResultValue is the one lenient
// coercion: laboratories put text like "N/A" there for non-detects, and
// whether such a row survives is a validation question for the loader, not a
// mapping failure.
func (r *Rules) MapResult(rec source.RawRecord) (domain.Result, error) {
	row := canonical(rec, r.ResultRenames)

	res := domain.Result{
		AnalytMeth:     row["AnalytMeth"],
		AnalytMethID:   row["AnalytMethId"],
		AutoQual:       row["AutoQual"],
		CASReg:         row["CAS_Reg"],
		DetectCond:     row["DetectCond"],
		LabComments:    row["LabComments"],
		LabName:        row["LabName"],
		LimitType:      row["LimitType"],
		MDLUnit:        row["MDLUnit"],
		MethodDescript: row["MethodDescript"],
		OrgID:          row["OrgId"],
		OrgName:        row["OrgName"],
		Param:          row["Param"],
		ParamGroup:     row["ParamGroup"],
		ProjectID:      row["ProjectId"],
		QualCode:       row["QualCode"],
		ResultComment:  row["ResultComment"],
		ResultStatus:   row["ResultStatus"],
		SampComment:    row["SampComment"],
		SampDepthRef:   row["SampDepthRef"],
		SampDepthU:     row["SampDepthU"],
		SampEquip:      row["SampEquip"],
		SampFrac:       row["SampFrac"],
		SampleTime:     row["SampleTime"],
		SampleID:       row["SampleId"],
		SampMedia:      row["SampMedia"],
		SampMeth:       row["SampMeth"],
		SampMethName:   row["SampMethName"],
		SampType:       row["SampType"],
		StationID:      row["StationId"],
		Unit:           row["Unit"],
		USGSPCode:      row["USGSPCode"],
		DataSource:     r.Label,
	}

	var err error
	if res.LonX, err = coerceFloat(row, "Lon_X"); err != nil {
		return domain.Result{}, err
	}
	if res.LatY, err = coerceFloat(row, "Lat_Y"); err != nil {
		return domain.Result{}, err
	}
	if res.MDL, err = coerceFloat(row, "MDL"); err != nil {
		return domain.Result{}, err
	}
	if res.Chrg, err = coerceFloat(row, "Chrg"); err != nil {
		return domain.Result{}, err
	}
	if res.SampDepth, err = coerceFloat(row, "SampDepth"); err != nil {
		return domain.Result{}, err
	}
	if res.IDNum, err = coerceInt(row, "IdNum"); err != nil {
		return domain.Result{}, err
	}
	if res.SampleDate, err = coerceDate(row, "SampleDate"); err != nil {
		return domain.Result{}, err
	}
	if res.AnalysisDate, err = coerceDate(row, "AnalysisDate"); err != nil {
		return domain.Result{}, err
	}

	res.ResultValue = lenientFloat(row["ResultValue"])
	res.SampleTime = normalizeTime(res.SampleTime)

	res = domain.NormalizeResult(res)
	res.DedupKey = domain.ResultDedupKey(&res)
	return res, nil
}

func coerceFloat(row map[string]string, field string) (*float64, error) {
	s, ok := row[field]
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &domain.MappingError{Field: field, Value: s, Reason: "not a number"}
	}
	return &v, nil
}

func coerceInt(row map[string]string, field string) (*int64, error) {
	s, ok := row[field]
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some agencies zero-pad codes or export them as floats.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return nil, &domain.MappingError{Field: field, Value: s, Reason: "not an integer"}
		}
		v = int64(f)
	}
	return &v, nil
}

// dateLayouts are the date spellings observed across the five programs.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"2006-01-02T15:04:05",
}

func coerceDate(row map[string]string, field string) (*time.Time, error) {
	s, ok := row[field]
	if !ok {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, &domain.MappingError{Field: field, Value: s, Reason: "not a recognized date"}
}

func lenientFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// normalizeTime pads bare H:MM times and strips seconds-less fractions so
// SampleTime is stored uniformly as HH:MM:SS.
func normalizeTime(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{"15:04:05", "15:04", "3:04 PM", "3:04:05 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05")
		}
	}
	return s
}

// stationIDSource finds the source column renamed to StationId.
func stationIDSource(renames map[string]string) string {
	for src, dst := range renames {
		if dst == "StationId" {
			return src
		}
	}
	return ""
}
