package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func wall(area, conductivity string) WallMeasure {
	return WallMeasure{
		SurfaceArea:  decimal.RequireFromString(area),
		Conductivity: decimal.RequireFromString(conductivity),
	}
}

func TestComputeGradeBands(t *testing.T) {
	tests := []struct {
		name  string
		walls []WallMeasure
		want  Grade
	}{
		{"well below first band", []WallMeasure{wall("10", "0.2")}, GradeAPlus},
		{"just under 0.5", []WallMeasure{wall("10", "0.499")}, GradeAPlus},
		{"exactly 0.5 is A, not A+", []WallMeasure{wall("10", "0.5")}, GradeA},
		{"just under 1.0", []WallMeasure{wall("10", "0.999")}, GradeA},
		{"exactly 1.0 is B", []WallMeasure{wall("10", "1.0")}, GradeB},
		{"exactly 1.5 is C", []WallMeasure{wall("10", "1.5")}, GradeC},
		{"exactly 2.0 is D", []WallMeasure{wall("10", "2.0")}, GradeD},
		{"far above all bands", []WallMeasure{wall("10", "3.7")}, GradeD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeGrade(tt.walls); got != tt.want {
				t.Fatalf("ComputeGrade() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputeGradeWeightsBySurfaceArea(t *testing.T) {
	// 10 m2 at 0.3 and 10 m2 at 0.6: average 0.45, still A+.
	walls := []WallMeasure{wall("10", "0.3"), wall("10", "0.6")}
	if got := ComputeGrade(walls); got != GradeAPlus {
		t.Fatalf("ComputeGrade() = %q, want %q", got, GradeAPlus)
	}

	// Shift the weight toward the worse material: 5 m2 at 0.3 and 15 m2 at
	// 0.6 gives 0.525, which drops the grade to A.
	walls = []WallMeasure{wall("5", "0.3"), wall("15", "0.6")}
	if got := ComputeGrade(walls); got != GradeA {
		t.Fatalf("ComputeGrade() = %q, want %q", got, GradeA)
	}
}

func TestComputeGradeNoData(t *testing.T) {
	if got := ComputeGrade(nil); got != GradeNoData {
		t.Fatalf("ComputeGrade(nil) = %q, want %q", got, GradeNoData)
	}
	if got := ComputeGrade([]WallMeasure{}); got != GradeNoData {
		t.Fatalf("ComputeGrade(empty) = %q, want %q", got, GradeNoData)
	}

	// Degenerate stored rows with zero area contribute nothing.
	if got := ComputeGrade([]WallMeasure{wall("0", "0.3")}); got != GradeNoData {
		t.Fatalf("ComputeGrade(zero area) = %q, want %q", got, GradeNoData)
	}
}

func TestComputeGradeIgnoresNonPositiveAreas(t *testing.T) {
	// The zero-area wall must not dilute the average of the valid one.
	walls := []WallMeasure{wall("0", "9.9"), wall("10", "0.3")}
	if got := ComputeGrade(walls); got != GradeAPlus {
		t.Fatalf("ComputeGrade() = %q, want %q", got, GradeAPlus)
	}
}

func TestComputeGradeDeterministic(t *testing.T) {
	walls := []WallMeasure{wall("12.5", "0.8"), wall("7.25", "1.1")}
	first := ComputeGrade(walls)
	for i := 0; i < 10; i++ {
		if got := ComputeGrade(walls); got != first {
			t.Fatalf("ComputeGrade() = %q on run %d, want %q", got, i, first)
		}
	}
}

func TestEstimateConsumption(t *testing.T) {
	tests := []struct {
		grade Grade
		want  int64
	}{
		{GradeAPlus, 50},
		{GradeA, 75},
		{GradeB, 100},
		{GradeC, 150},
		{GradeD, 200},
		{GradeNoData, 0},
		{Grade("bogus"), 0},
	}

	for _, tt := range tests {
		if got := EstimateConsumption(tt.grade); !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Fatalf("EstimateConsumption(%q) = %s, want %d", tt.grade, got, tt.want)
		}
	}
}

func TestBadgeClass(t *testing.T) {
	tests := []struct {
		grade Grade
		want  string
	}{
		{GradeAPlus, "success"},
		{GradeA, "primary"},
		{GradeB, "info"},
		{GradeC, "warning"},
		{GradeD, "danger"},
		{GradeNoData, "secondary"},
		{Grade("bogus"), "secondary"},
	}

	for _, tt := range tests {
		if got := BadgeClass(tt.grade); got != tt.want {
			t.Fatalf("BadgeClass(%q) = %q, want %q", tt.grade, got, tt.want)
		}
	}
}
