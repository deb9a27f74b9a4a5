package domain

import "time"

// StationKey is the natural key for a monitoring location. Re-seeding must
// never create two stations with the same key.
type StationKey struct {
	OrgID     string
	StationID string
}

// Station is a fixed monitoring location in the destination vocabulary.
// Field names mirror the Stations table columns exactly; pointer fields are
// nullable columns.
type Station struct {
	OrgID          string
	OrgName        string
	StationID      string
	StationName    string
	StationType    string
	StationComment string
	HUC8           string
	LonX           *float64
	LatY           *float64
	HorAcc         *float64
	HorAccUnit     string
	HorCollMeth    string
	HorRef         string
	Elev           *float64
	ElevUnit       string
	ElevAcc        *float64
	ElevAccUnit    string
	ElevMeth       string
	ElevRef        string
	StateCode      *int64
	CountyCode     *int64
	Aquifer        string
	FmType         string
	AquiferType    string
	ConstDate      *time.Time
	Depth          *float64
	DepthUnit      string
	HoleDepth      *float64
	HoleDUnit      string
	DemELEVm       *float64
	DataSource     string
	WIN            string

	// Shape is the point geometry as WKT in EPSG 26912, or empty when the
	// source record carries no usable coordinates.
	Shape string
}

// Key returns the station's natural key.
func (s *Station) Key() StationKey {
	return StationKey{OrgID: s.OrgID, StationID: s.StationID}
}

// Result is a single analytical measurement in the destination vocabulary.
// Results are append-only; DedupKey is the content key added on top of the
// fixed schema so re-running a source does not duplicate rows.
type Result struct {
	AnalysisDate   *time.Time
	AnalytMeth     string
	AnalytMethID   string
	AutoQual       string
	CASReg         string
	Chrg           *float64
	DataSource     string
	DetectCond     string
	IDNum          *int64
	LabComments    string
	LabName        string
	LatY           *float64
	LimitType      string
	LonX           *float64
	MDL            *float64
	MDLUnit        string
	MethodDescript string
	OrgID          string
	OrgName        string
	Param          string
	ParamGroup     string
	ProjectID      string
	QualCode       string
	ResultComment  string
	ResultStatus   string
	ResultValue    *float64
	SampComment    string
	SampDepth      *float64
	SampDepthRef   string
	SampDepthU     string
	SampEquip      string
	SampFrac       string
	SampleDate     *time.Time
	SampleTime     string
	SampleID       string
	SampMedia      string
	SampMeth       string
	SampMethName   string
	SampType       string
	StationID      string
	Unit           string
	USGSPCode      string

	DedupKey string
}

// Float returns a pointer to v, for building nullable numeric fields.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for building nullable integer fields.
func Int(v int64) *int64 {
	return &v
}

// Date returns a pointer to t, for building nullable date fields.
func Date(t time.Time) *time.Time {
	return &t
}
