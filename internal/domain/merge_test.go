package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMergeStationFillsEmptyFields(t *testing.T) {
	existing := Station{
		OrgID:     "UTAHDWQ",
		StationID: "4904410",
	}
	incoming := Station{
		OrgID:       "UTAHDWQ",
		StationID:   "4904410",
		StationName: "Jordan River at 1700 South",
		StationType: "River/Stream",
		LonX:        Float(-111.93),
		LatY:        Float(40.73),
		StateCode:   Int(49),
		ConstDate:   Date(time.Date(1975, 6, 1, 0, 0, 0, 0, time.UTC)),
		Shape:       "POINT (421234.100000 4509876.200000)",
	}

	merged, changed := MergeStation(existing, incoming)

	assert.True(t, changed)
	assert.Equal(t, "Jordan River at 1700 South", merged.StationName)
	assert.Equal(t, "River/Stream", merged.StationType)
	assert.Equal(t, -111.93, *merged.LonX)
	assert.Equal(t, int64(49), *merged.StateCode)
	assert.Equal(t, 1975, merged.ConstDate.Year())
	assert.NotEmpty(t, merged.Shape)
}

func TestMergeStationNeverOverwritesPopulated(t *testing.T) {
	existing := Station{
		OrgID:       "UTAHDWQ",
		StationID:   "4904410",
		StationName: "Original name",
		Elev:        Float(1280),
		Shape:       "POINT (421234.100000 4509876.200000)",
	}
	incoming := Station{
		OrgID:       "UTAHDWQ",
		StationID:   "4904410",
		StationName: "Different name",
		Elev:        Float(9999),
		Shape:       "POINT (1.000000 2.000000)",
	}

	merged, changed := MergeStation(existing, incoming)

	assert.False(t, changed)
	assert.Equal(t, "Original name", merged.StationName)
	assert.Equal(t, 1280.0, *merged.Elev)
	assert.Equal(t, existing.Shape, merged.Shape)
}

func TestMergeStationBlankIncomingCannotErase(t *testing.T) {
	existing := Station{
		OrgID:       "SDWIS",
		StationID:   "UTAH-001",
		StationName: "Well 12",
		Aquifer:     "Basin fill",
		Depth:       Float(120),
	}

	merged, changed := MergeStation(existing, Station{OrgID: "SDWIS", StationID: "UTAH-001"})

	assert.False(t, changed)
	if diff := cmp.Diff(existing, merged); diff != "" {
		t.Errorf("merge with blank incoming changed the station (-want +got):\n%s", diff)
	}
}

func TestMergeStationIsIdempotent(t *testing.T) {
	existing := Station{OrgID: "DOGM", StationID: "M-7"}
	incoming := Station{
		OrgID:     "DOGM",
		StationID: "M-7",
		Aquifer:   "Blackhawk Formation",
		HoleDepth: Float(300),
	}

	once, changed := MergeStation(existing, incoming)
	assert.True(t, changed)

	twice, changed := MergeStation(once, incoming)
	assert.False(t, changed)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second merge was not a no-op (-want +got):\n%s", diff)
	}
}
