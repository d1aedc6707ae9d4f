package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <plan-id>",
	Short: "Delete a stored plan and all of its schedule state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete plan %s without --yes", args[0])
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeletePlan(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted plan %s.\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
