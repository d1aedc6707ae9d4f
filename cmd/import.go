package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/glossa/internal/plan"
)

var importCmd = &cobra.Command{
	Use:   "import <plan.json>",
	Short: "Import a curriculum plan document",
	Long: "Validates the plan document against the schema, checks that no unit appears " +
		"in more than one pool, and stores it. Plans and units without ids get fresh ones.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read plan file: %w", err)
		}
		raw, err = mintMissingIDs(raw)
		if err != nil {
			return err
		}

		p, err := plan.Decode(raw)
		if err != nil {
			return fmt.Errorf("invalid plan document: %w", err)
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.PutPlan(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Printf("Imported plan %s.\n", p.ID)
		return nil
	},
}

// mintMissingIDs fills in fresh uuids for the plan and for any unit authored
// without an id, before the strict validation pass rejects them.
func mintMissingIDs(raw []byte) ([]byte, error) {
	var p plan.Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid plan document: %w", err)
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	for _, lesson := range p.Lessons {
		if lesson == nil {
			continue
		}
		for _, u := range append(append([]*plan.Unit{}, lesson.Items...), lesson.Structures...) {
			if u != nil && u.ID == "" {
				u.ID = uuid.NewString()
			}
		}
	}
	// Pool units are keyed by id already; an empty-id entry there is a real
	// authoring error and is left for validation to reject.

	return plan.Encode(&p)
}
