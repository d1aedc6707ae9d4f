package practice

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/glossa/internal/dateutil"
	"github.com/abhisek/glossa/internal/plan"
	"github.com/abhisek/glossa/internal/planstore"
	"github.com/abhisek/glossa/internal/srs"
)

// memStore holds plan documents as serialized JSON, mirroring the real
// store's snapshot semantics: every read decodes a fresh copy, and a
// transaction only persists when fn returns an updated plan without error.
type memStore struct {
	docs    map[string][]byte
	txCount int
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string][]byte)}
}

func (m *memStore) put(t *testing.T, p *plan.Plan) {
	t.Helper()
	raw, err := plan.Encode(p)
	if err != nil {
		t.Fatalf("encode plan: %v", err)
	}
	m.docs[p.ID] = raw
}

func (m *memStore) snapshot(t *testing.T, planID string) *plan.Plan {
	t.Helper()
	raw, ok := m.docs[planID]
	if !ok {
		t.Fatalf("plan %s not in store", planID)
	}
	p, err := plan.Decode(raw)
	if err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	return p
}

func (m *memStore) GetPlan(_ context.Context, planID string) (*plan.Plan, error) {
	raw, ok := m.docs[planID]
	if !ok {
		return nil, &planstore.PlanNotFoundError{PlanID: planID}
	}
	return plan.Decode(raw)
}

func (m *memStore) WithTransaction(_ context.Context, planID string, fn func(*plan.Plan) (*plan.Plan, error)) error {
	m.txCount++
	raw, ok := m.docs[planID]
	if !ok {
		return &planstore.PlanNotFoundError{PlanID: planID}
	}
	p, err := plan.Decode(raw)
	if err != nil {
		return err
	}
	updated, err := fn(p)
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}
	out, err := plan.Encode(updated)
	if err != nil {
		return err
	}
	m.docs[planID] = out
	return nil
}

// Wednesday of the week containing Monday 2024-03-04.
var wednesday = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func due(days float64, dueAt time.Time) *srs.State {
	return &srs.State{
		IntervalDays: days,
		Due:          dateutil.At(dueAt),
		Repetitions:  3,
		Ease:         srs.DefaultEase,
	}
}

func fixturePlan() *plan.Plan {
	return &plan.Plan{
		ID:        "plan-1",
		StudentID: "student-1",
		Lessons: []*plan.Lesson{
			{
				ID:            "lesson-this-week",
				ScheduledDate: dateutil.At(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)),
				Items: []*plan.Unit{
					{ID: "u-hola", Kind: plan.KindItem, Text: "hola"},
					{ID: "u-adios", Kind: plan.KindItem, Text: "adiós"},
				},
				Structures: []*plan.Unit{
					{ID: "u-ser", Kind: plan.KindStructure, Text: "ser + adjective"},
				},
			},
			{
				ID:            "lesson-next-week",
				ScheduledDate: dateutil.At(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)),
				Items: []*plan.Unit{
					{ID: "u-futuro", Kind: plan.KindItem, Text: "futuro"},
				},
			},
		},
		ReviewQueue: map[string]*plan.Unit{
			"u-queue-due": {
				ID: "u-queue-due", Kind: plan.KindItem, Text: "casa",
				Schedule: due(2, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
			},
			"u-queue-later": {
				ID: "u-queue-later", Kind: plan.KindItem, Text: "puerta",
				Schedule: due(2, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)),
			},
		},
		Mastered: map[string]*plan.Unit{
			"u-done-due": {
				ID: "u-done-due", Kind: plan.KindItem, Text: "agua",
				Schedule: due(14, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			},
			"u-done-later": {
				ID: "u-done-later", Kind: plan.KindItem, Text: "fuego",
				Schedule: due(30, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
			},
		},
	}
}
