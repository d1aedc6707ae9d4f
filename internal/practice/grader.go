package practice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/glossa/internal/dateutil"
	"github.com/abhisek/glossa/internal/plan"
	"github.com/abhisek/glossa/internal/srs"
)

// Graduation rule: an active-lesson unit whose recomputed interval reaches
// one day leaves active learning, and enters the mastered pool at no less
// than the seven-day rotation.
const (
	GraduationThresholdDays = 1.0
	MasteredFloorDays       = 7
)

// Result is one graded exposure from a practice session. Grade arrives as a
// raw number from the client and is validated before anything is applied.
type Result struct {
	UnitID string  `json:"unitId"`
	Grade  float64 `json:"grade"`
}

// ApplyGrades consumes a batch of graded results for one plan, recomputing
// each unit's schedule state and migrating graduating units, as a single
// atomic read-modify-write against the plan store.
//
// The whole batch applies or none of it does: a malformed grade aborts before
// any mutation, and store-level conflicts retry with a fresh snapshot.
// Results whose unit id matches nothing in the plan are skipped silently
// (stale client lists happen); skips are logged for observability. Returns
// whether any unit was actually modified.
func (s *Service) ApplyGrades(ctx context.Context, planID string, results []Result) (bool, error) {
	// Validate every grade up front so a bad result never half-applies a batch.
	grades := make([]srs.Grade, len(results))
	for i, r := range results {
		g, err := srs.ParseGrade(r.Grade)
		if err != nil {
			return false, fmt.Errorf("result for unit %s: %w", r.UnitID, err)
		}
		grades[i] = g
	}

	applied := 0
	var skipped []string
	err := s.store.WithTransaction(ctx, planID, func(p *plan.Plan) (*plan.Plan, error) {
		// The transaction may re-run on conflict; start from scratch each time.
		applied = 0
		skipped = skipped[:0]
		now := s.now()
		idx := plan.NewIndex(p)

		for i, r := range results {
			loc, ok := idx.Locate(r.UnitID)
			if !ok {
				skipped = append(skipped, r.UnitID)
				continue
			}

			next, err := srs.Next(grades[i], loc.Unit.Schedule, now)
			if err != nil {
				return nil, fmt.Errorf("reschedule unit %s: %w", r.UnitID, err)
			}

			graduates := loc.Pool == plan.PoolActiveLesson && next.IntervalDays >= GraduationThresholdDays
			if graduates && next.IntervalDays < MasteredFloorDays {
				// Units entering the mastered pool never sit on the short
				// rotation: floor the interval and re-aim the due date at
				// midnight of now + floor.
				next.IntervalDays = MasteredFloorDays
				next.Due = dateutil.At(dateutil.DayStart(now).AddDate(0, 0, MasteredFloorDays))
			}

			loc.Unit.Schedule = &next
			loc.Unit.LastReviewedAt = dateutil.At(now)
			loc.Unit.UpdatedAt = dateutil.At(now)

			if graduates {
				if err := idx.Graduate(r.UnitID); err != nil {
					return nil, err
				}
			}
			applied++
		}

		if applied == 0 {
			// Nothing matched: commit nothing.
			return nil, nil
		}
		return p, nil
	})
	if err != nil {
		return false, err
	}

	// Log skips once per batch, not once per transaction attempt.
	if len(skipped) > 0 {
		s.log.Warn("skipped results for units not in plan",
			zap.String("plan_id", planID),
			zap.Strings("unit_ids", skipped),
		)
	}
	s.log.Info("applied grade batch",
		zap.String("plan_id", planID),
		zap.Int("results", len(results)),
		zap.Int("applied", applied),
		zap.Int("skipped", len(results)-applied),
	)
	return applied > 0, nil
}
