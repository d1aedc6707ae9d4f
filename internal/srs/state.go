package srs

import "github.com/abhisek/glossa/internal/dateutil"

// State is the per-unit spaced repetition bookkeeping. A unit that has never
// been graded carries no State (nil pointer in the plan document).
type State struct {
	// IntervalDays is the current review interval in days.
	IntervalDays float64 `json:"interval"`
	// Due is when the unit next comes up for review.
	Due dateutil.Time `json:"due_date"`
	// Repetitions counts consecutive successful recalls.
	Repetitions int `json:"repetitions"`
	// Ease is the SM-2 easiness factor, never below MinEase.
	Ease float64 `json:"ease_factor"`
	// LastGrade is the grade from the most recent exposure.
	LastGrade Grade `json:"last_grade"`
}

// Clone returns a copy of the state, or nil for a nil receiver.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
