package practice

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/glossa/internal/plan"
	"github.com/abhisek/glossa/internal/planstore"
)

func newUnitIDs(units []NewUnit) []string {
	ids := make([]string, len(units))
	for i, u := range units {
		ids[i] = u.Unit.ID
	}
	return ids
}

func reviewUnitIDs(units []ReviewUnit) []string {
	ids := make([]string, len(units))
	for i, u := range units {
		ids[i] = u.Unit.ID
	}
	return ids
}

func TestSelectDailyPractice_NewUnitsFromCurrentWeek(t *testing.T) {
	store := newMemStore()
	store.put(t, fixturePlan())
	svc := NewService(store, fixedClock(wednesday))

	got, err := svc.SelectDailyPractice(context.Background(), "plan-1")
	if err != nil {
		t.Fatalf("SelectDailyPractice: %v", err)
	}

	// Monday's lesson is in this week; next Monday's is not. Items come
	// before structures, in lesson order.
	want := []string{"u-hola", "u-adios", "u-ser"}
	if !reflect.DeepEqual(newUnitIDs(got.NewUnits), want) {
		t.Errorf("new units = %v, want %v", newUnitIDs(got.NewUnits), want)
	}

	for _, nu := range got.NewUnits {
		if nu.LessonID != "lesson-this-week" {
			t.Errorf("unit %s tagged with lesson %s, want lesson-this-week", nu.Unit.ID, nu.LessonID)
		}
	}
	if got.NewUnits[2].Kind != plan.KindStructure {
		t.Errorf("u-ser tagged %s, want structure", got.NewUnits[2].Kind)
	}
}

func TestSelectDailyPractice_LessonExcludedNextWeek(t *testing.T) {
	store := newMemStore()
	store.put(t, fixturePlan())
	// The following Monday: the 2024-03-04 lesson has fallen out of scope,
	// the 2024-03-11 lesson has come in.
	svc := NewService(store, fixedClock(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)))

	got, err := svc.SelectDailyPractice(context.Background(), "plan-1")
	if err != nil {
		t.Fatalf("SelectDailyPractice: %v", err)
	}
	want := []string{"u-futuro"}
	if !reflect.DeepEqual(newUnitIDs(got.NewUnits), want) {
		t.Errorf("new units = %v, want %v", newUnitIDs(got.NewUnits), want)
	}
}

func TestSelectDailyPractice_DueReviewUnits(t *testing.T) {
	store := newMemStore()
	store.put(t, fixturePlan())
	svc := NewService(store, fixedClock(wednesday))

	got, err := svc.SelectDailyPractice(context.Background(), "plan-1")
	if err != nil {
		t.Fatalf("SelectDailyPractice: %v", err)
	}

	// Review-queue units come first, then mastered; only due units appear.
	want := []string{"u-queue-due", "u-done-due"}
	if !reflect.DeepEqual(reviewUnitIDs(got.ReviewUnits), want) {
		t.Errorf("review units = %v, want %v", reviewUnitIDs(got.ReviewUnits), want)
	}

	if got.ReviewUnits[0].Source != plan.PoolReviewQueue {
		t.Errorf("u-queue-due source = %s, want review queue", got.ReviewUnits[0].Source)
	}
	if got.ReviewUnits[1].Source != plan.PoolMastered {
		t.Errorf("u-done-due source = %s, want mastered", got.ReviewUnits[1].Source)
	}
}

// Scenario: an overdue mastered unit stays due days later.
func TestSelectDailyPractice_OverdueMasteredUnit(t *testing.T) {
	p := &plan.Plan{
		ID:      "plan-1",
		Lessons: []*plan.Lesson{},
		Mastered: map[string]*plan.Unit{
			"u-old": {
				ID: "u-old", Kind: plan.KindItem, Text: "viejo",
				Schedule: due(7, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			},
		},
	}
	store := newMemStore()
	store.put(t, p)
	svc := NewService(store, fixedClock(time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)))

	got, err := svc.SelectDailyPractice(context.Background(), "plan-1")
	if err != nil {
		t.Fatalf("SelectDailyPractice: %v", err)
	}
	if !reflect.DeepEqual(reviewUnitIDs(got.ReviewUnits), []string{"u-old"}) {
		t.Errorf("review units = %v, want [u-old]", reviewUnitIDs(got.ReviewUnits))
	}
}

func TestSelectDailyPractice_Idempotent(t *testing.T) {
	store := newMemStore()
	store.put(t, fixturePlan())
	svc := NewService(store, fixedClock(wednesday))
	ctx := context.Background()

	first, err := svc.SelectDailyPractice(ctx, "plan-1")
	if err != nil {
		t.Fatalf("first select: %v", err)
	}
	second, err := svc.SelectDailyPractice(ctx, "plan-1")
	if err != nil {
		t.Fatalf("second select: %v", err)
	}

	if !reflect.DeepEqual(newUnitIDs(first.NewUnits), newUnitIDs(second.NewUnits)) {
		t.Error("new unit selection changed between identical calls")
	}
	if !reflect.DeepEqual(reviewUnitIDs(first.ReviewUnits), reviewUnitIDs(second.ReviewUnits)) {
		t.Error("review unit selection changed between identical calls")
	}
	if store.txCount != 0 {
		t.Errorf("selector opened %d transactions, want 0", store.txCount)
	}
}

func TestSelectDailyPractice_PlanNotFound(t *testing.T) {
	svc := NewService(newMemStore(), fixedClock(wednesday))

	_, err := svc.SelectDailyPractice(context.Background(), "missing")
	var notFound *planstore.PlanNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PlanNotFoundError, got %v", err)
	}
}
