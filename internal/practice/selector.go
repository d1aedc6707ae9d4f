package practice

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/glossa/internal/dateutil"
	"github.com/abhisek/glossa/internal/plan"
	"github.com/abhisek/glossa/internal/srs"
)

// NewUnit is a not-yet-graduated unit drawn from a lesson scheduled in the
// current calendar week, tagged with its originating lesson.
type NewUnit struct {
	Unit     *plan.Unit
	LessonID string
	Kind     plan.UnitKind
}

// ReviewUnit is a due unit drawn from one of the two long-term pools.
type ReviewUnit struct {
	Unit   *plan.Unit
	Source plan.Pool
}

// DailyPractice is today's item set for one student.
type DailyPractice struct {
	NewUnits    []NewUnit
	ReviewUnits []ReviewUnit
}

// SelectDailyPractice assembles today's practice set: every active-lesson
// unit from lessons scheduled within the calendar week containing now, plus
// every due unit from the review queue and the mastered pool.
//
// The operation is pure read — no plan mutation, no writes — and
// deterministic for a fixed plan and clock, so callers may invoke it
// repeatedly and concurrently.
func (s *Service) SelectDailyPractice(ctx context.Context, planID string) (*DailyPractice, error) {
	p, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	out := &DailyPractice{}

	for _, lesson := range p.Lessons {
		if lesson.ScheduledDate.IsZero() || !dateutil.InWeekOf(lesson.ScheduledDate.Time, now) {
			continue
		}
		for _, u := range lesson.Items {
			out.NewUnits = append(out.NewUnits, NewUnit{Unit: u, LessonID: lesson.ID, Kind: plan.KindItem})
		}
		for _, u := range lesson.Structures {
			out.NewUnits = append(out.NewUnits, NewUnit{Unit: u, LessonID: lesson.ID, Kind: plan.KindStructure})
		}
	}

	out.ReviewUnits = append(out.ReviewUnits, duePool(p.ReviewQueue, plan.PoolReviewQueue, now)...)
	out.ReviewUnits = append(out.ReviewUnits, duePool(p.Mastered, plan.PoolMastered, now)...)

	s.log.Debug("selected daily practice",
		zap.String("plan_id", planID),
		zap.Int("new_units", len(out.NewUnits)),
		zap.Int("review_units", len(out.ReviewUnits)),
	)
	return out, nil
}

// duePool filters one pool down to its due units, in stable id order.
func duePool(pool map[string]*plan.Unit, source plan.Pool, now time.Time) []ReviewUnit {
	ids := make([]string, 0, len(pool))
	for id := range pool {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var due []ReviewUnit
	for _, id := range ids {
		u := pool[id]
		if srs.IsDue(u.Schedule, now) {
			due = append(due, ReviewUnit{Unit: u, Source: source})
		}
	}
	return due
}
