package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/glossa/internal/plan"
	"github.com/abhisek/glossa/internal/planstore"
	"github.com/abhisek/glossa/internal/srs"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [plan-id]",
	Short: "Show stored plans, or one plan's pools",
	Long: "Without arguments, lists the ids of every stored plan. With a plan id, " +
		"summarizes its lessons and the three pools, including how many units are due.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			return listPlans(cmd, store)
		}

		p, err := store.GetPlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printPlan(p, time.Now())
		return nil
	},
}

func listPlans(cmd *cobra.Command, store *planstore.Store) error {
	ids, err := store.ListPlanIDs(cmd.Context())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No plans stored.")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func printPlan(p *plan.Plan, now time.Time) {
	fmt.Printf("Plan %s", p.ID)
	if p.StudentID != "" {
		fmt.Printf(" (student %s)", p.StudentID)
	}
	fmt.Println()

	active := 0
	for _, lesson := range p.Lessons {
		n := len(lesson.Items) + len(lesson.Structures)
		active += n
		fmt.Printf("  lesson %s (%s): %d unit(s)\n",
			lesson.ID, lesson.ScheduledDate.Format("2006-01-02"), n)
	}

	fmt.Printf("  active lessons: %d unit(s)\n", active)
	fmt.Printf("  review queue:   %d unit(s), %d due\n", len(p.ReviewQueue), dueCount(p.ReviewQueue, now))
	fmt.Printf("  mastered:       %d unit(s), %d due\n", len(p.Mastered), dueCount(p.Mastered, now))
}

func dueCount(pool map[string]*plan.Unit, now time.Time) int {
	n := 0
	for _, u := range pool {
		if srs.IsDue(u.Schedule, now) {
			n++
		}
	}
	return n
}
