// Package srs implements the spaced repetition scheduling algorithm and the
// due-date classifier. Everything here is pure: no I/O, no clocks, no stores.
// Callers supply "now" explicitly so results are deterministic and testable.
package srs

import (
	"time"

	"github.com/abhisek/glossa/internal/dateutil"
)

// Algorithm tuning. The early-repetition ladder and the 1.3 ease floor follow
// the classic SM-2 parameters; the cap keeps runaway items within a year.
const (
	// DefaultEase seeds the easiness factor on first exposure.
	DefaultEase = 2.5
	// MinEase is the easiness factor floor.
	MinEase = 1.3
	// MaxIntervalDays caps the review interval.
	MaxIntervalDays = 365
)

// earlyIntervals are the fixed intervals (days) for the first few successful
// repetitions, indexed by repetition count after the current success.
var earlyIntervals = []float64{0, 1, 3, 7}

// Next computes the schedule state following a graded exposure.
//
// A nil prev means first exposure: the state is seeded with the minimum
// interval and default ease before the grade is applied. The returned state
// always carries a fresh interval and a due date no earlier than now.
// The only failure mode is an out-of-range grade.
func Next(grade Grade, prev *State, now time.Time) (State, error) {
	if !grade.Valid() {
		return State{}, &InvalidGradeError{Value: float64(grade)}
	}

	next := seed()
	if prev != nil {
		next = *prev.Clone()
	}

	next.Ease = adjustEase(next.Ease, grade)
	next.LastGrade = grade

	if grade.Passing() {
		next.Repetitions++
		next.IntervalDays = nextInterval(next.Repetitions, next.IntervalDays, next.Ease)
	} else {
		// Failed recall: back to the top of the ladder, due again today.
		next.Repetitions = 0
		next.IntervalDays = 0
	}

	next.Due = dateutil.At(dateutil.AddDays(now, next.IntervalDays))
	return next, nil
}

func seed() State {
	return State{
		IntervalDays: 0,
		Repetitions:  0,
		Ease:         DefaultEase,
	}
}

// adjustEase applies the SM-2 easiness update for a grade, with the floor.
func adjustEase(ease float64, grade Grade) float64 {
	q := float64(grade)
	ease += 0.1 - (5.0-q)*(0.08+(5.0-q)*0.02)
	if ease < MinEase {
		ease = MinEase
	}
	return ease
}

// nextInterval picks the interval for a successful repetition: the fixed
// ladder for early repetitions, multiplicative growth by the ease factor
// afterwards.
func nextInterval(repetitions int, current, ease float64) float64 {
	if repetitions <= len(earlyIntervals) {
		return earlyIntervals[repetitions-1]
	}
	next := current * ease
	if next > MaxIntervalDays {
		next = MaxIntervalDays
	}
	return next
}
