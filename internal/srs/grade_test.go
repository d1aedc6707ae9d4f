package srs

import (
	"errors"
	"math"
	"testing"
)

func TestParseGrade(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		want    Grade
		wantErr bool
	}{
		{"min", 0, GradeAgain, false},
		{"max", 5, GradeEasy, false},
		{"pass threshold", 3, GradeHard, false},
		{"below range", -1, 0, true},
		{"above range", 6, 0, true},
		{"huge integral value", 1e18, 0, true},
		{"huge negative integral value", -1e18, 0, true},
		{"fractional", 3.5, 0, true},
		{"nan", math.NaN(), 0, true},
		{"positive infinity", math.Inf(1), 0, true},
		{"negative infinity", math.Inf(-1), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGrade(tt.input)
			if tt.wantErr {
				var invalid *InvalidGradeError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidGradeError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGrade(%v): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseGrade(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGradePassing(t *testing.T) {
	for g := MinGrade; g <= MaxGrade; g++ {
		want := g >= GradeHard
		if got := g.Passing(); got != want {
			t.Errorf("Grade(%d).Passing() = %v, want %v", g, got, want)
		}
	}
}
