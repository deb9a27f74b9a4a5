package mapper

// RulesFor returns the rule set for a format tag, or nil for an unknown tag.
func RulesFor(tag string) *Rules {
	return ruleSets[tag]
}

// identity builds a rename table for programs whose extracts already use the
// destination column names.
func identity(cols ...string) map[string]string {
	m := make(map[string]string, len(cols))
	for _, c := range cols {
		m[c] = c
	}
	return m
}

var ruleSets = map[string]*Rules{
	"wqp": {
		Label: "WQP",
		// Portal column names, per the WQX web-service CSV downloads.
		StationRenames: map[string]string{
			"OrganizationIdentifier":                          "OrgId",
			"OrganizationFormalName":                          "OrgName",
			"MonitoringLocationIdentifier":                    "StationId",
			"MonitoringLocationName":                          "StationName",
			"MonitoringLocationTypeName":                      "StationType",
			"MonitoringLocationDescriptionText":               "StationComment",
			"HUCEightDigitCode":                               "HUC8",
			"LongitudeMeasure":                                "Lon_X",
			"LatitudeMeasure":                                 "Lat_Y",
			"HorizontalAccuracyMeasure/MeasureValue":          "HorAcc",
			"HorizontalAccuracyMeasure/MeasureUnitCode":       "HorAccUnit",
			"HorizontalCollectionMethodName":                  "HorCollMeth",
			"HorizontalCoordinateReferenceSystemDatumName":    "HorRef",
			"VerticalMeasure/MeasureValue":                    "Elev",
			"VerticalMeasure/MeasureUnitCode":                 "ElevUnit",
			"VerticalAccuracyMeasure/MeasureValue":            "ElevAcc",
			"VerticalAccuracyMeasure/MeasureUnitCode":         "ElevAccUnit",
			"VerticalCollectionMethodName":                    "ElevMeth",
			"VerticalCoordinateReferenceSystemDatumName":      "ElevRef",
			"StateCode":                                       "StateCode",
			"CountyCode":                                      "CountyCode",
			"AquiferName":                                     "Aquifer",
			"FormationTypeText":                               "FmType",
			"AquiferTypeName":                                 "AquiferType",
			"ConstructionDateText":                            "ConstDate",
			"WellDepthMeasure/MeasureValue":                   "Depth",
			"WellDepthMeasure/MeasureUnitCode":                "DepthUnit",
			"WellHoleDepthMeasure/MeasureValue":               "HoleDepth",
			"WellHoleDepthMeasure/MeasureUnitCode":            "HoleDUnit",
		},
		ResultRenames: map[string]string{
			"AnalysisStartDate":                                "AnalysisDate",
			"ResultAnalyticalMethod/MethodName":                "AnalytMeth",
			"ResultAnalyticalMethod/MethodIdentifier":          "AnalytMethId",
			"ResultDetectionConditionText":                     "DetectCond",
			"ResultLaboratoryCommentText":                      "LabComments",
			"LaboratoryName":                                   "LabName",
			"DetectionQuantitationLimitTypeName":               "LimitType",
			"DetectionQuantitationLimitMeasure/MeasureValue":   "MDL",
			"DetectionQuantitationLimitMeasure/MeasureUnitCode": "MDLUnit",
			"MethodDescriptionText":                            "MethodDescript",
			"OrganizationIdentifier":                           "OrgId",
			"OrganizationFormalName":                           "OrgName",
			"CharacteristicName":                               "Param",
			"ProjectIdentifier":                                "ProjectId",
			"MeasureQualifierCode":                             "QualCode",
			"ResultCommentText":                                "ResultComment",
			"ResultStatusIdentifier":                           "ResultStatus",
			"ResultMeasureValue":                               "ResultValue",
			"ActivityCommentText":                              "SampComment",
			"ActivityDepthHeightMeasure/MeasureValue":          "SampDepth",
			"ActivityDepthAltitudeReferencePointText":          "SampDepthRef",
			"ActivityDepthHeightMeasure/MeasureUnitCode":       "SampDepthU",
			"SampleCollectionEquipmentName":                    "SampEquip",
			"ResultSampleFractionText":                         "SampFrac",
			"ActivityStartDate":                                "SampleDate",
			"ActivityStartTime/Time":                           "SampleTime",
			"ActivityIdentifier":                               "SampleId",
			"ActivityMediaSubdivisionName":                     "SampMedia",
			"SampleCollectionMethod/MethodIdentifier":          "SampMeth",
			"SampleCollectionMethod/MethodName":                "SampMethName",
			"ActivityTypeCode":                                 "SampType",
			"MonitoringLocationIdentifier":                     "StationId",
			"ResultMeasure/MeasureUnitCode":                    "Unit",
			"USGSPCode":                                        "USGSPCode",
		},
	},

	"sdwis": {
		Label:          "SDWIS",
		StationRenames: identity(agencyStationCols...),
		ResultRenames: identity(
			"AnalysisDate", "LabName", "MDL", "MDLUnit", "OrgId", "OrgName",
			"Param", "ResultValue", "SampleDate", "SampleTime", "SampleId",
			"SampType", "StationId", "Unit", "Lat_Y", "Lon_X", "CAS_Reg",
			"IdNum", "ParamGroup",
		),
	},

	"dogm": {
		Label:          "DOGM",
		StationRenames: identity(agencyStationCols...),
		ResultRenames: identity(
			"StationId", "Param", "SampleId", "SampleDate", "AnalysisDate",
			"AnalytMeth", "MDLUnit", "ResultValue", "SampleTime", "MDL",
			"Unit", "SampComment",
		),
	},

	"dwr": {
		Label:          "DWR",
		StationRenames: identity(agencyStationCols...),
		ResultRenames: identity(
			"SampleDate", "USGSPCode", "ResultValue", "Param", "Unit",
			"SampFrac", "OrgId", "OrgName", "StationId", "Lat_Y", "Lon_X",
			"SampMedia", "SampleId", "IdNum",
		),
	},

	"ugs": {
		Label:          "UGS",
		StationRenames: identity(agencyStationCols...),
		ResultRenames: identity(
			"ResultValue", "AnalysisDate", "OrgId", "OrgName", "SampleDate",
			"SampleTime", "DetectCond", "Unit", "MDLUnit", "AnalytMethId",
			"AnalytMeth", "SampMedia", "SampFrac", "StationId", "MDL",
			"IdNum", "LabName", "SampComment", "CAS_Reg",
		),
	},
}

// agencyStationCols is the shared station extract shape of the state-agency
// programs, which export with destination-style column names.
var agencyStationCols = []string{
	"OrgId", "OrgName", "StationId", "StationName", "StationType",
	"StationComment", "HUC8", "Lon_X", "Lat_Y", "Elev", "ElevUnit",
	"StateCode", "CountyCode", "Aquifer", "AquiferType", "FmType",
	"ConstDate", "Depth", "DepthUnit", "HoleDepth", "HoleDUnit", "WIN",
}
