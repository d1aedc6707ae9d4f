package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/glossa/internal/practice"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <plan-id> [results.json]",
	Short: "Apply a batch of graded results to a plan",
	Long: "Reads a JSON array of graded results — [{\"unitId\": \"...\", \"grade\": 0-5}, ...] — " +
		"from the given file, or from stdin when no file is given, and applies the whole " +
		"batch atomically. Units whose recomputed interval reaches a day graduate to the " +
		"mastered pool.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := readResults(args)
		if err != nil {
			return err
		}

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
		applied, err := svc.ApplyGrades(cmd.Context(), args[0], results)
		if err != nil {
			return err
		}

		if !applied {
			fmt.Println("No results matched the plan; nothing changed.")
			return nil
		}
		fmt.Printf("Applied %d result(s) to plan %s.\n", len(results), args[0])
		return nil
	},
}

func init() {
	gradeCmd.Flags().String("date", "", "Grade as of this date (YYYY-MM-DD or RFC3339) instead of now")
}

func readResults(args []string) ([]practice.Result, error) {
	var raw []byte
	var err error
	if len(args) == 2 {
		raw, err = os.ReadFile(args[1])
		if err != nil {
			return nil, fmt.Errorf("read results file: %w", err)
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read results from stdin: %w", err)
		}
	}

	var results []practice.Result
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to apply")
	}
	return results, nil
}
