package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ionResult(param string, value float64) Result {
	return Result{
		StationID:   "UTAHDWQ-4904410",
		SampleID:    "UTAHDWQ-4904410-2014-03",
		SampleDate:  Date(time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)),
		DataSource:  "WQP",
		Param:       param,
		Unit:        "mg/L",
		ResultValue: Float(value),
	}
}

func TestChargeBalanceDerivesThreeRows(t *testing.T) {
	sample := []Result{
		ionResult("Calcium", 100),
		ionResult("Chloride", 150),
	}

	derived := ChargeBalance(sample)
	require.Len(t, derived, 3)

	cations, anions, balance := derived[0], derived[1], derived[2]

	assert.Equal(t, "Cations, total", cations.Param)
	assert.Equal(t, "meq/L", cations.Unit)
	assert.InDelta(t, 100/20.039, *cations.ResultValue, 0.0001)

	assert.Equal(t, "Anions, total", anions.Param)
	assert.InDelta(t, 150/35.453, *anions.ResultValue, 0.0001)

	assert.Equal(t, "Charge balance", balance.Param)
	assert.Equal(t, "%", balance.Unit)
	assert.InDelta(t, 8.2344, *balance.ResultValue, 0.001)

	// Derived rows keep the sample's identity and the Information group.
	for _, r := range derived {
		assert.Equal(t, "UTAHDWQ-4904410", r.StationID)
		assert.Equal(t, "UTAHDWQ-4904410-2014-03", r.SampleID)
		assert.Equal(t, "Information", r.ParamGroup)
		assert.Equal(t, "WQP", r.DataSource)
	}
}

func TestChargeBalanceNeedsBothSides(t *testing.T) {
	cationsOnly := []Result{ionResult("Calcium", 100), ionResult("Sodium", 40)}
	assert.Nil(t, ChargeBalance(cationsOnly))

	anionsOnly := []Result{ionResult("Chloride", 150)}
	assert.Nil(t, ChargeBalance(anionsOnly))
}

func TestChargeBalanceIgnoresNonMajorIons(t *testing.T) {
	sample := []Result{
		ionResult("Arsenic", 500),
		ionResult("pH", 7.4),
	}
	assert.Nil(t, ChargeBalance(sample))
}

func TestChargeBalanceIgnoresOtherUnits(t *testing.T) {
	ueq := ionResult("Calcium", 100)
	ueq.Unit = "ueq/L"
	sample := []Result{ueq, ionResult("Chloride", 150)}

	assert.Nil(t, ChargeBalance(sample))
}

func TestChargeBalanceAcceptsUnitSpellings(t *testing.T) {
	upper := ionResult("Calcium", 100)
	upper.Unit = "MG/L"
	lower := ionResult("Chloride", 150)
	lower.Unit = "mg/l"

	derived := ChargeBalance([]Result{upper, lower})
	require.Len(t, derived, 3)
	assert.InDelta(t, 8.2344, *derived[2].ResultValue, 0.001)
}

func TestChargeBalanceSkipsNilValues(t *testing.T) {
	nd := ionResult("Calcium", 0)
	nd.ResultValue = nil
	nd.DetectCond = "Not Detected"
	sample := []Result{nd, ionResult("Magnesium", 24.3), ionResult("Sulfate", 96)}

	derived := ChargeBalance(sample)
	require.Len(t, derived, 3)
	assert.InDelta(t, 24.3/12.1525, *derived[0].ResultValue, 0.0001)
}

func TestChargeBalanceBalancedSampleNearZero(t *testing.T) {
	// One meq of each side exactly.
	sample := []Result{
		ionResult("Calcium", 20.039),
		ionResult("Chloride", 35.453),
	}

	derived := ChargeBalance(sample)
	require.Len(t, derived, 3)
	assert.InDelta(t, 0, *derived[2].ResultValue, 0.0001)
}
