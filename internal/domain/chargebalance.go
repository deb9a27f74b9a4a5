package domain

import (
	"math"
	"strings"
)

// Equivalent weights (mg per milliequivalent) for the major ions that enter
// the charge balance. Values are atomic/formula weight divided by charge.
var equivalentWeights = map[string]struct {
	weight float64
	cation bool
}{
	"Calcium":     {20.039, true},
	"Magnesium":   {12.1525, true},
	"Sodium":      {22.9898, true},
	"Potassium":   {39.0983, true},
	"Bicarbonate": {61.0168, false},
	"Carbonate":   {30.0045, false},
	"Chloride":    {35.453, false},
	"Sulfate":     {48.0305, false},
	"Nitrate":     {62.0049, false},
}

// ChargeBalance sums the major-ion milliequivalents in one sample set and
// derives three reporting rows: total cations, total anions, and the percent
// charge-balance error. Sample sets that lack ions on either side of the
// balance produce no rows. Only mg/L results participate; the derived rows
// inherit the sample metadata of the set's first row.
func ChargeBalance(sample []Result) []Result {
	var cations, anions float64
	seen := false

	for i := range sample {
		r := &sample[i]
		// Agency extracts spell the unit inconsistently (MG/L, mg/l).
		if r.ResultValue == nil || !strings.EqualFold(r.Unit, "mg/L") {
			continue
		}
		ion, ok := equivalentWeights[r.Param]
		if !ok {
			continue
		}
		meq := *r.ResultValue / ion.weight
		if ion.cation {
			cations += meq
		} else {
			anions += meq
		}
		seen = true
	}

	if !seen || cations <= 0 || anions <= 0 {
		return nil
	}

	balance := 100 * (cations - anions) / (cations + anions)

	template := sample[0]
	derive := func(param, unit string, value float64) Result {
		r := template
		r.Param = param
		r.ParamGroup = "Information"
		r.Unit = unit
		r.ResultValue = Float(round4(value))
		r.DetectCond = ""
		r.QualCode = ""
		r.MDL = nil
		r.MDLUnit = ""
		r.USGSPCode = ""
		r.CASReg = ""
		return r
	}

	return []Result{
		derive("Cations, total", "meq/L", cations),
		derive("Anions, total", "meq/L", anions),
		derive("Charge balance", "%", balance),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
