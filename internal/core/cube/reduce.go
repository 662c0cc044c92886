package cube

import (
	"math"

	"github.com/shopspring/decimal"
)

// Mean is the arithmetic mean of the numeric cells. Absent and non-numeric cells
// are skipped; an empty input is Absent, not zero.
func Mean(cells []Cell) Cell {
	var sum float64
	var n int
	for _, c := range cells {
		if v, ok := c.Float(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return Absent()
	}
	return Number(sum / float64(n))
}

// Geomean is exp(mean(ln v)) over the numeric cells with v > 0. Absent, zero and
// negative values are excluded from both the count and the log sum.
func Geomean(cells []Cell) Cell {
	var logSum, only float64
	var n int
	for _, c := range cells {
		v, ok := c.Float()
		if !ok || v <= 0 || math.IsInf(v, 0) {
			continue
		}
		logSum += math.Log(v)
		only = v
		n++
	}
	switch n {
	case 0:
		return Absent()
	case 1:
		// exp(log(v)) is not always v in floating point
		return Number(only)
	}
	return Number(math.Exp(logSum / float64(n)))
}

// CountTrue counts boolean cells holding true. Always a number.
func CountTrue(cells []Cell) Cell {
	n := 0
	for _, c := range cells {
		if b, ok := c.Flag(); ok && b {
			n++
		}
	}
	return Number(float64(n))
}

// AnyExists reports whether at least one cell carries an observation.
func AnyExists(cells []Cell) bool {
	for _, c := range cells {
		if c.Exists() {
			return true
		}
	}
	return false
}

// RecordValues turns a record cell into one numeric cell per record value.
func RecordValues(c Cell) []Cell {
	recs := c.Records()
	out := make([]Cell, len(recs))
	for i, r := range recs {
		out[i] = Number(r.Value)
	}
	return out
}

// Round rounds v half away from zero to places decimal places. The rounding is
// done on the shortest decimal representation of v, so 2.00005 rounds up to
// 2.0001 even though its binary value is slightly below the midpoint.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// RoundCell rounds numeric cells and passes everything else through.
func RoundCell(c Cell, places int32) Cell {
	if v, ok := c.Float(); ok {
		return Number(Round(v, places))
	}
	return c
}
