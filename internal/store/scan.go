package store

import (
	"database/sql"
	"time"

	"github.com/ugswater/dbseeder/internal/domain"
)

// rowScanner is the common surface of pgx.Rows and database/sql Rows, so
// both drivers share one station scanner.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanStation reads one row selected in StationColumns order, with Shape as
// WKT text in the final position. textDates is set by the SQLite driver,
// which stores dates as ISO text rather than a native date type.
func scanStation(row rowScanner, textDates bool) (domain.Station, error) {
	var (
		s          domain.Station
		stationID  string
		text       [20]sql.NullString
		floats     [8]sql.NullFloat64
		ints       [2]sql.NullInt64
		constDateT sql.NullTime
		constDateS sql.NullString
		shape      sql.NullString
	)

	constDate := any(&constDateT)
	if textDates {
		constDate = &constDateS
	}

	err := row.Scan(
		&text[0], &text[1], &stationID, &text[2], &text[3], &text[4], &text[5],
		&floats[0], &floats[1], &floats[2], &text[6], &text[7], &text[8],
		&floats[3], &text[9], &floats[4], &text[10], &text[11], &text[12],
		&ints[0], &ints[1], &text[13], &text[14], &text[15], constDate,
		&floats[5], &text[16], &floats[6], &text[17], &floats[7],
		&text[18], &text[19], &shape,
	)
	if err != nil {
		return domain.Station{}, err
	}

	s.OrgID = text[0].String
	s.OrgName = text[1].String
	s.StationID = stationID
	s.StationName = text[2].String
	s.StationType = text[3].String
	s.StationComment = text[4].String
	s.HUC8 = text[5].String
	s.HorAccUnit = text[6].String
	s.HorCollMeth = text[7].String
	s.HorRef = text[8].String
	s.ElevUnit = text[9].String
	s.ElevAccUnit = text[10].String
	s.ElevMeth = text[11].String
	s.ElevRef = text[12].String
	s.Aquifer = text[13].String
	s.FmType = text[14].String
	s.AquiferType = text[15].String
	s.DepthUnit = text[16].String
	s.HoleDUnit = text[17].String
	s.DataSource = text[18].String
	s.WIN = text[19].String

	s.LonX = nullableFloat(floats[0])
	s.LatY = nullableFloat(floats[1])
	s.HorAcc = nullableFloat(floats[2])
	s.Elev = nullableFloat(floats[3])
	s.ElevAcc = nullableFloat(floats[4])
	s.Depth = nullableFloat(floats[5])
	s.HoleDepth = nullableFloat(floats[6])
	s.DemELEVm = nullableFloat(floats[7])

	s.StateCode = nullableInt(ints[0])
	s.CountyCode = nullableInt(ints[1])

	if textDates {
		s.ConstDate = parseTextDate(constDateS)
	} else {
		s.ConstDate = nullableDate(constDateT)
	}

	s.Shape = shape.String
	return s, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullableInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func nullableDate(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func parseTextDate(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", v.String, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
