package quantize

import (
	"fmt"
	"math"
	"sort"
)

// DefaultUnit is the organization-wide rounding unit: a quarter hour
const DefaultUnit = 0.25

// floorEpsilon absorbs binary floating-point error before flooring, so that
// a value like 2.9999999999 (intended as 3 units) floors to 3, not 2.
const floorEpsilon = 1e-9

// Quantizer rounds a map of fractional per-period hours to multiples of a
// unit while conserving the grand total (largest-remainder apportionment).
// Rounding each period independently would let totals drift; the quantizer
// instead distributes a fixed number of units, so the output always sums to
// round(sum(input)/unit) * unit.
type Quantizer struct {
	unit float64
}

// New creates a Quantizer with the given rounding unit. The unit must be
// positive; there is no silent clamping.
func New(unit float64) (*Quantizer, error) {
	if unit <= 0 {
		return nil, fmt.Errorf("quantization unit must be positive, got %v", unit)
	}
	return &Quantizer{unit: unit}, nil
}

// Unit returns the quantizer's rounding unit
func (q *Quantizer) Unit() float64 {
	return q.unit
}

// Quantize converts raw fractional hours per period into multiples of the
// unit. Each period keeps the floor of its own share; leftover units go one
// each to the periods with the largest fractional remainders, ties broken by
// ascending period key for determinism. An empty input yields an empty map.
func (q *Quantizer) Quantize(raw map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(raw))
	if len(raw) == 0 {
		return out
	}

	rawTotal := 0.0
	for _, hours := range raw {
		rawTotal += hours
	}
	totalUnits := int(math.Round(rawTotal / q.unit))

	type share struct {
		period   string
		units    int
		fraction float64
	}

	shares := make([]share, 0, len(raw))
	usedUnits := 0
	for period, hours := range raw {
		unitsRaw := hours / q.unit
		floorUnits := int(math.Floor(unitsRaw + floorEpsilon))
		shares = append(shares, share{
			period:   period,
			units:    floorUnits,
			fraction: unitsRaw - float64(floorUnits),
		})
		usedUnits += floorUnits
	}

	remaining := totalUnits - usedUnits
	if remaining < 0 {
		remaining = 0
	}

	// Largest remainder first; ties go to the earlier period key, which for
	// "YYYY-MM" keys is chronological.
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].fraction != shares[j].fraction {
			return shares[i].fraction > shares[j].fraction
		}
		return shares[i].period < shares[j].period
	})

	for i := 0; i < remaining && i < len(shares); i++ {
		shares[i].units++
	}

	for _, s := range shares {
		out[s.period] = float64(s.units) * q.unit
	}
	return out
}

// SortedPeriods returns the map's period keys in ascending order, the
// caller-friendly iteration order for display and persistence.
func SortedPeriods(allocation map[string]float64) []string {
	periods := make([]string, 0, len(allocation))
	for p := range allocation {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	return periods
}
