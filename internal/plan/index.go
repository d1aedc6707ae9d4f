package plan

import (
	"fmt"
	"sort"
)

// Location is the result of a prioritized pool lookup: which pool a unit was
// found in, and (for active-lesson units) which lesson holds it.
type Location struct {
	Pool     Pool
	LessonID string
	Kind     UnitKind
	Unit     *Unit
}

// Index is an arena-style view over a plan: every unit id mapped to its
// location, built in pool-priority order. Lookups replace the nested
// lessons/items/structures scans; mutations move units between the plan's
// collections while keeping the index consistent.
//
// Priority order (first match wins): each lesson in plan order, items before
// structures, then the review queue, then the mastered pool.
type Index struct {
	plan *Plan
	byID map[string]Location
}

// NewIndex builds the prioritized index for a plan.
func NewIndex(p *Plan) *Index {
	p.EnsurePools()
	idx := &Index{plan: p, byID: make(map[string]Location)}

	for _, lesson := range p.Lessons {
		for _, u := range lesson.Items {
			idx.add(u.ID, Location{Pool: PoolActiveLesson, LessonID: lesson.ID, Kind: KindItem, Unit: u})
		}
		for _, u := range lesson.Structures {
			idx.add(u.ID, Location{Pool: PoolActiveLesson, LessonID: lesson.ID, Kind: KindStructure, Unit: u})
		}
	}
	for _, id := range sortedKeys(p.ReviewQueue) {
		idx.add(id, Location{Pool: PoolReviewQueue, Unit: p.ReviewQueue[id]})
	}
	for _, id := range sortedKeys(p.Mastered) {
		idx.add(id, Location{Pool: PoolMastered, Unit: p.Mastered[id]})
	}
	return idx
}

// add registers a location unless the id is already present, preserving
// first-match-wins semantics for documents that violate pool exclusivity.
func (idx *Index) add(id string, loc Location) {
	if _, exists := idx.byID[id]; exists {
		return
	}
	idx.byID[id] = loc
}

// Locate returns the unit's location, or ok=false if the id is unknown.
func (idx *Index) Locate(id string) (Location, bool) {
	loc, ok := idx.byID[id]
	return loc, ok
}

// Graduate moves an active-lesson unit into the mastered pool, removing it
// from its lesson's ordered list. The remaining lesson units keep their
// relative order.
func (idx *Index) Graduate(id string) error {
	loc, ok := idx.byID[id]
	if !ok {
		return fmt.Errorf("graduate %s: unit not indexed", id)
	}
	if loc.Pool != PoolActiveLesson {
		return fmt.Errorf("graduate %s: unit is in pool %s, not a lesson", id, loc.Pool)
	}

	lesson := idx.lessonByID(loc.LessonID)
	if lesson == nil {
		return fmt.Errorf("graduate %s: lesson %s not found", id, loc.LessonID)
	}

	if loc.Kind == KindStructure {
		lesson.Structures = removeUnit(lesson.Structures, id)
	} else {
		lesson.Items = removeUnit(lesson.Items, id)
	}

	idx.plan.Mastered[id] = loc.Unit
	idx.byID[id] = Location{Pool: PoolMastered, Unit: loc.Unit}
	return nil
}

func (idx *Index) lessonByID(id string) *Lesson {
	for _, l := range idx.plan.Lessons {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func removeUnit(units []*Unit, id string) []*Unit {
	out := units[:0]
	for _, u := range units {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

func sortedKeys(m map[string]*Unit) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
