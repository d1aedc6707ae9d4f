package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/glossa/internal/practice"
)

var todayCmd = &cobra.Command{
	Use:   "today <plan-id>",
	Short: "Show today's practice set for a plan",
	Long: "Selects new units from lessons scheduled in the current calendar week " +
		"(Monday through Sunday) plus every review-queue and mastered unit that is due.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		log, err := newLogger(cmd)
		if err != nil {
			return err
		}

		opts := []practice.Option{practice.WithLogger(log)}
		if at, err := resolveDate(cmd); err != nil {
			return err
		} else if !at.IsZero() {
			opts = append(opts, practice.WithClock(func() time.Time { return at }))
		}

		svc := practice.NewService(store, opts...)
		daily, err := svc.SelectDailyPractice(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(daily)
		}

		printDaily(daily)
		return nil
	},
}

func init() {
	todayCmd.Flags().String("date", "", "Select as of this date (YYYY-MM-DD or RFC3339) instead of now")
	todayCmd.Flags().Bool("json", false, "Emit the practice set as JSON")
}

// resolveDate parses the --date flag; the zero time means "use the real clock".
func resolveDate(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("date")
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if at, err := time.Parse(layout, raw); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD or RFC3339", raw)
}

func printDaily(daily *practice.DailyPractice) {
	if len(daily.NewUnits) == 0 && len(daily.ReviewUnits) == 0 {
		fmt.Println("Nothing to practice today.")
		return
	}

	if len(daily.NewUnits) > 0 {
		fmt.Printf("New units (%d):\n", len(daily.NewUnits))
		for _, nu := range daily.NewUnits {
			fmt.Printf("  [%s] %s — %s (lesson %s)\n", nu.Kind, nu.Unit.ID, nu.Unit.Text, nu.LessonID)
		}
	}
	if len(daily.ReviewUnits) > 0 {
		fmt.Printf("Due for review (%d):\n", len(daily.ReviewUnits))
		for _, ru := range daily.ReviewUnits {
			fmt.Printf("  [%s] %s — %s (due %s)\n",
				ru.Source, ru.Unit.ID, ru.Unit.Text, ru.Unit.Schedule.Due.Format("2006-01-02"))
		}
	}
}
