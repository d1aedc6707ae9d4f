// Package plan defines the curriculum plan document: the aggregate holding a
// student's lessons and the two long-term review pools, plus the indexed
// lookup the grade processor uses to migrate units between pools.
package plan

import (
	"github.com/abhisek/glossa/internal/dateutil"
	"github.com/abhisek/glossa/internal/srs"
)

// UnitKind discriminates the two kinds of learning units.
type UnitKind string

const (
	KindItem      UnitKind = "item"      // vocabulary item
	KindStructure UnitKind = "structure" // grammar structure
)

// Unit is a single schedulable piece of content. A unit lives in exactly one
// pool at a time and owns at most one schedule state; units that have never
// been graded carry a nil Schedule.
type Unit struct {
	ID          string   `json:"id"`
	Kind        UnitKind `json:"kind"`
	Text        string   `json:"text"`
	Translation string   `json:"translation,omitempty"`
	Notes       string   `json:"notes,omitempty"`

	Schedule       *srs.State    `json:"schedule,omitempty"`
	LastReviewedAt dateutil.Time `json:"last_reviewed_at,omitempty"`
	UpdatedAt      dateutil.Time `json:"updated_at,omitempty"`
}

// Lesson groups the units covered by one live class. Its Items and
// Structures together form the lesson's slice of the active-lesson pool.
type Lesson struct {
	ID            string        `json:"id"`
	Title         string        `json:"title,omitempty"`
	ScheduledDate dateutil.Time `json:"scheduled_date"`
	Items         []*Unit       `json:"items"`
	Structures    []*Unit       `json:"structures"`
}

// Plan is the aggregate root: one per enrolled student, and the unit of
// transactional consistency for all grading writes.
type Plan struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id,omitempty"`
	Lessons   []*Lesson `json:"lessons"`

	// ReviewQueue holds graduated units still in the accelerated short-term
	// rotation; Mastered holds units in the long-term (>= 7 day) rotation.
	ReviewQueue map[string]*Unit `json:"review_queue"`
	Mastered    map[string]*Unit `json:"mastered"`
}

// EnsurePools initializes nil collections, so decoded documents and
// hand-built plans behave identically.
func (p *Plan) EnsurePools() {
	if p.Lessons == nil {
		p.Lessons = []*Lesson{}
	}
	if p.ReviewQueue == nil {
		p.ReviewQueue = make(map[string]*Unit)
	}
	if p.Mastered == nil {
		p.Mastered = make(map[string]*Unit)
	}
}

// Pool identifies which of the three mutually exclusive containers a unit
// currently lives in.
type Pool string

const (
	PoolActiveLesson Pool = "active_lesson"
	PoolReviewQueue  Pool = "review_queue"
	PoolMastered     Pool = "mastered"
)
