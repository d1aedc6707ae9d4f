package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/glossa/internal/planstore"
)

var rootCmd = &cobra.Command{
	Use:   "glossa",
	Short: "Spaced-repetition practice scheduler for language curricula",
	Long: "Glossa schedules daily practice for language students: new units from " +
		"this week's lessons plus every previously learned unit that has come due.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GLOSSA_DB env var)")
	rootCmd.PersistentFlags().String("driver", planstore.DriverSQLite, "Database driver: sqlite or postgres")
	rootCmd.PersistentFlags().String("dsn", "", "Database DSN (postgres driver only)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// openStore resolves connection settings from flags and opens the plan store.
func openStore(cmd *cobra.Command) (*planstore.Store, error) {
	driver, _ := cmd.Flags().GetString("driver")

	switch driver {
	case planstore.DriverSQLite:
		dsn, err := resolveDBPath(cmd)
		if err != nil {
			return nil, err
		}
		return planstore.Open(driver, dsn)
	case planstore.DriverPostgres:
		dsn, _ := cmd.Flags().GetString("dsn")
		if dsn == "" {
			return nil, fmt.Errorf("--dsn is required with the postgres driver")
		}
		return planstore.Open(driver, dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// resolveDBPath returns the SQLite path using --db flag (highest priority),
// then GLOSSA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, planstore.EnsureDir(p)
	}
	return planstore.DefaultDBPath()
}

// newLogger builds the CLI logger: silent by default, human-readable debug
// output with --verbose.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}
