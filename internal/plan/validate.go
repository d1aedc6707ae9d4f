package plan

import "fmt"

// CheckExclusivity verifies the core pool invariant: every unit id appears in
// exactly one of the lesson lists, the review queue, and the mastered pool,
// and units outside the active-lesson pool carry a schedule state.
func CheckExclusivity(p *Plan) error {
	seen := make(map[string]Pool)

	record := func(id string, pool Pool) error {
		if id == "" {
			return fmt.Errorf("unit with empty id in pool %s", pool)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("unit %s appears in both %s and %s", id, prev, pool)
		}
		seen[id] = pool
		return nil
	}

	for _, lesson := range p.Lessons {
		for _, u := range append(append([]*Unit{}, lesson.Items...), lesson.Structures...) {
			if err := record(u.ID, PoolActiveLesson); err != nil {
				return err
			}
		}
	}
	for id, u := range p.ReviewQueue {
		if err := record(id, PoolReviewQueue); err != nil {
			return err
		}
		if err := requireSchedule(id, u, PoolReviewQueue); err != nil {
			return err
		}
	}
	for id, u := range p.Mastered {
		if err := record(id, PoolMastered); err != nil {
			return err
		}
		if err := requireSchedule(id, u, PoolMastered); err != nil {
			return err
		}
	}
	return nil
}

func requireSchedule(id string, u *Unit, pool Pool) error {
	if u == nil {
		return fmt.Errorf("unit %s in pool %s is null", id, pool)
	}
	if u.Schedule == nil {
		return fmt.Errorf("unit %s in pool %s has no schedule state", id, pool)
	}
	return nil
}
