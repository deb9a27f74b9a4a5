package domain

// MergeStation folds an incoming station into an existing one with the same
// (OrgId, StationId) key. The merge is additive: an incoming non-empty value
// fills an empty field, but a populated field is never overwritten, so a
// later load with blanks cannot destroy earlier metadata. Returns the merged
// station and whether anything changed.
func MergeStation(existing, incoming Station) (Station, bool) {
	changed := false

	fillStr := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
			changed = true
		}
	}
	fillFloat := func(dst **float64, src *float64) {
		if *dst == nil && src != nil {
			v := *src
			*dst = &v
			changed = true
		}
	}
	fillInt := func(dst **int64, src *int64) {
		if *dst == nil && src != nil {
			v := *src
			*dst = &v
			changed = true
		}
	}

	fillStr(&existing.OrgName, incoming.OrgName)
	fillStr(&existing.StationName, incoming.StationName)
	fillStr(&existing.StationType, incoming.StationType)
	fillStr(&existing.StationComment, incoming.StationComment)
	fillStr(&existing.HUC8, incoming.HUC8)
	fillFloat(&existing.LonX, incoming.LonX)
	fillFloat(&existing.LatY, incoming.LatY)
	fillFloat(&existing.HorAcc, incoming.HorAcc)
	fillStr(&existing.HorAccUnit, incoming.HorAccUnit)
	fillStr(&existing.HorCollMeth, incoming.HorCollMeth)
	fillStr(&existing.HorRef, incoming.HorRef)
	fillFloat(&existing.Elev, incoming.Elev)
	fillStr(&existing.ElevUnit, incoming.ElevUnit)
	fillFloat(&existing.ElevAcc, incoming.ElevAcc)
	fillStr(&existing.ElevAccUnit, incoming.ElevAccUnit)
	fillStr(&existing.ElevMeth, incoming.ElevMeth)
	fillStr(&existing.ElevRef, incoming.ElevRef)
	fillInt(&existing.StateCode, incoming.StateCode)
	fillInt(&existing.CountyCode, incoming.CountyCode)
	fillStr(&existing.Aquifer, incoming.Aquifer)
	fillStr(&existing.FmType, incoming.FmType)
	fillStr(&existing.AquiferType, incoming.AquiferType)
	fillFloat(&existing.Depth, incoming.Depth)
	fillStr(&existing.DepthUnit, incoming.DepthUnit)
	fillFloat(&existing.HoleDepth, incoming.HoleDepth)
	fillStr(&existing.HoleDUnit, incoming.HoleDUnit)
	fillFloat(&existing.DemELEVm, incoming.DemELEVm)
	fillStr(&existing.DataSource, incoming.DataSource)
	fillStr(&existing.WIN, incoming.WIN)

	if existing.ConstDate == nil && incoming.ConstDate != nil {
		v := *incoming.ConstDate
		existing.ConstDate = &v
		changed = true
	}

	// A geometry only fills in when the merged record gained coordinates.
	if existing.Shape == "" && incoming.Shape != "" {
		existing.Shape = incoming.Shape
		changed = true
	}

	return existing, changed
}
