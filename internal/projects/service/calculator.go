package service

import "github.com/shopspring/decimal"

// Grade is an energy-efficiency letter grade, ordered from most efficient
// (A+) to least efficient (D).
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"

	// GradeNoData is the result when a project has no usable wall data.
	// It is a valid terminal state, not an error: consumers render it as
	// "insufficient data" rather than treating it as a failure.
	GradeNoData Grade = "no-data"
)

// WallMeasure carries the two wall inputs the calculator needs.
type WallMeasure struct {
	SurfaceArea  decimal.Decimal
	Conductivity decimal.Decimal
}

// Grade thresholds are exclusive upper bounds on the weighted average
// conductivity (W/m·K), evaluated in ascending order; first match wins.
// Decimal arithmetic keeps results exact at the boundaries (0.5 is an A,
// never an A+, regardless of how the inputs were accumulated).
var gradeThresholds = []struct {
	below decimal.Decimal
	grade Grade
}{
	{decimal.New(5, -1), GradeAPlus},
	{decimal.New(1, 0), GradeA},
	{decimal.New(15, -1), GradeB},
	{decimal.New(2, 0), GradeC},
}

var consumptionByGrade = map[Grade]decimal.Decimal{
	GradeAPlus: decimal.NewFromInt(50),
	GradeA:     decimal.NewFromInt(75),
	GradeB:     decimal.NewFromInt(100),
	GradeC:     decimal.NewFromInt(150),
	GradeD:     decimal.NewFromInt(200),
}

var badgeByGrade = map[Grade]string{
	GradeAPlus: "success",
	GradeA:     "primary",
	GradeB:     "info",
	GradeC:     "warning",
	GradeD:     "danger",
}

// ComputeGrade derives the estimated grade for a project from its walls:
// the surface-area-weighted average of the material conductivities, mapped
// through the grade thresholds. A project with no walls, or only walls with
// non-positive area, yields GradeNoData.
//
// Pure function of its input: identical wall sets always produce identical
// grades.
func ComputeGrade(walls []WallMeasure) Grade {
	totalArea := decimal.Zero
	weighted := decimal.Zero

	for _, wall := range walls {
		// Validation rejects non-positive areas before persistence; guard
		// anyway so degenerate stored rows cannot skew the average.
		if !wall.SurfaceArea.IsPositive() {
			continue
		}
		totalArea = totalArea.Add(wall.SurfaceArea)
		weighted = weighted.Add(wall.Conductivity.Mul(wall.SurfaceArea))
	}

	if totalArea.IsZero() {
		return GradeNoData
	}

	average := weighted.Div(totalArea)
	for _, threshold := range gradeThresholds {
		if average.LessThan(threshold.below) {
			return threshold.grade
		}
	}
	return GradeD
}

// EstimateConsumption returns the estimated annual energy consumption
// (kWh/m²/year) for a grade. Total over all grades: GradeNoData and any
// unknown value map to zero.
func EstimateConsumption(grade Grade) decimal.Decimal {
	if consumption, ok := consumptionByGrade[grade]; ok {
		return consumption
	}
	return decimal.Zero
}

// BadgeClass returns the presentation style tag for a grade so renderers
// never re-derive grade logic. GradeNoData and unknown values map to
// "secondary".
func BadgeClass(grade Grade) string {
	if badge, ok := badgeByGrade[grade]; ok {
		return badge
	}
	return "secondary"
}
