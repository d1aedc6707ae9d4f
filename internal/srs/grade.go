package srs

import (
	"fmt"
	"math"
)

// Grade is the recall quality reported for a single practice exposure,
// on the usual 0-5 SM-2 ordinal scale.
type Grade int

const (
	// GradeAgain: complete failure, no recall.
	GradeAgain Grade = 0
	// GradeWrong: wrong answer, recognized once shown.
	GradeWrong Grade = 1
	// GradeFamiliar: wrong answer, but it felt familiar.
	GradeFamiliar Grade = 2
	// GradeHard: correct with significant effort.
	GradeHard Grade = 3
	// GradeGood: correct after some hesitation.
	GradeGood Grade = 4
	// GradeEasy: instant, effortless recall.
	GradeEasy Grade = 5
)

// MinGrade and MaxGrade bound the accepted ordinal range.
const (
	MinGrade Grade = GradeAgain
	MaxGrade Grade = GradeEasy
)

// PassThreshold is the lowest grade counted as a successful recall.
const PassThreshold = GradeHard

// Valid reports whether g is within the accepted range.
func (g Grade) Valid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// Passing reports whether g counts as a successful recall.
func (g Grade) Passing() bool {
	return g >= PassThreshold
}

// InvalidGradeError reports a grade outside the accepted ordinal range,
// or a non-finite / non-integral raw value.
type InvalidGradeError struct {
	Value float64
}

func (e *InvalidGradeError) Error() string {
	return fmt.Sprintf("invalid grade %v: must be an integer between %d and %d", e.Value, MinGrade, MaxGrade)
}

// ParseGrade validates a raw grade value from an untrusted boundary
// (API payload, CLI input) and converts it to a Grade.
func ParseGrade(v float64) (Grade, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, &InvalidGradeError{Value: v}
	}
	// Range-check before converting: float-to-int conversion of an
	// out-of-range value is not defined to saturate.
	if v < float64(MinGrade) || v > float64(MaxGrade) {
		return 0, &InvalidGradeError{Value: v}
	}
	return Grade(v), nil
}
