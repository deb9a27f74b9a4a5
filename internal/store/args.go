package store

import "github.com/ugswater/dbseeder/internal/domain"

// stationArgs returns the bind values for StationColumns, excluding the
// trailing Shape column, which each driver binds its own way.
func stationArgs(s *domain.Station) []any {
	return []any{
		nullStr(s.OrgID), nullStr(s.OrgName), nullStr(s.StationID), nullStr(s.StationName),
		nullStr(s.StationType), nullStr(s.StationComment), nullStr(s.HUC8),
		s.LonX, s.LatY, s.HorAcc, nullStr(s.HorAccUnit), nullStr(s.HorCollMeth),
		nullStr(s.HorRef), s.Elev, nullStr(s.ElevUnit), s.ElevAcc,
		nullStr(s.ElevAccUnit), nullStr(s.ElevMeth), nullStr(s.ElevRef),
		s.StateCode, s.CountyCode, nullStr(s.Aquifer), nullStr(s.FmType),
		nullStr(s.AquiferType), s.ConstDate, s.Depth, nullStr(s.DepthUnit),
		s.HoleDepth, nullStr(s.HoleDUnit), s.DemELEVm, nullStr(s.DataSource),
		nullStr(s.WIN),
	}
}

// resultArgs returns the bind values for ResultColumns.
func resultArgs(r *domain.Result) []any {
	return []any{
		r.AnalysisDate, nullStr(r.AnalytMeth), nullStr(r.AnalytMethID),
		nullStr(r.AutoQual), nullStr(r.CASReg), r.Chrg, nullStr(r.DataSource),
		nullStr(r.DetectCond), r.IDNum, nullStr(r.LabComments),
		nullStr(r.LabName), r.LatY, nullStr(r.LimitType), r.LonX, r.MDL,
		nullStr(r.MDLUnit), nullStr(r.MethodDescript), nullStr(r.OrgID),
		nullStr(r.OrgName), nullStr(r.Param), nullStr(r.ParamGroup),
		nullStr(r.ProjectID), nullStr(r.QualCode), nullStr(r.ResultComment),
		nullStr(r.ResultStatus), r.ResultValue, nullStr(r.SampComment),
		r.SampDepth, nullStr(r.SampDepthRef), nullStr(r.SampDepthU),
		nullStr(r.SampEquip), nullStr(r.SampFrac), r.SampleDate,
		nullStr(r.SampleTime), nullStr(r.SampleID), nullStr(r.SampMedia),
		nullStr(r.SampMeth), nullStr(r.SampMethName), nullStr(r.SampType),
		nullStr(r.StationID), nullStr(r.Unit), nullStr(r.USGSPCode),
		r.DedupKey,
	}
}

// nullStr maps empty strings onto SQL NULL so the destination keeps its
// convention of null, not empty-string, for absent text.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
