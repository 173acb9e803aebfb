package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/killallgit/voicenotes-api/internal/database"
	"github.com/killallgit/voicenotes-api/internal/models"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage database migrations for the Voice Notes API.

The schema is derived from the GORM models, so migrations are applied by
auto-migration rather than numbered scripts.

Available subcommands:
  up      - Create or update every table
  down    - Drop every table
  status  - Show which tables exist`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Long: `Apply all pending database migrations.

Missing tables are created and existing tables gain any new columns
and indexes, bringing the schema up to date.`,
	RunE: runMigrateUp,
}

// migrateDownCmd drops the schema
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback all migrations",
	Long: `Rollback the applied migrations.

Every table owned by the service is dropped, deleting all recordings
and transcripts. Audio already written to blob storage is left in place.`,
	RunE: runMigrateDown,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of database migrations.

Each table owned by the service is listed as applied or pending.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateDownCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func withDatabase(cmd *cobra.Command, fn func(db *database.DB) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openDatabase(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return withDatabase(cmd, func(db *database.DB) error {
		return migrateUp(cmd.OutOrStdout(), db, dryRun)
	})
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	out := cmd.OutOrStdout()

	if !dryRun && !yes {
		fmt.Fprint(out, "WARNING: This will drop every table and delete all recordings. Continue? (y/N): ")
		var response string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Migration rollback cancelled")
			return nil
		}
	}

	return withDatabase(cmd, func(db *database.DB) error {
		return migrateDown(out, db, dryRun)
	})
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	return withDatabase(cmd, func(db *database.DB) error {
		return writeStatus(cmd.OutOrStdout(), db)
	})
}

func migrateUp(out io.Writer, db *database.DB, dryRun bool) error {
	pending, err := tablesWhere(db, false)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		for _, table := range pending {
			fmt.Fprintf(out, "  would create %s\n", table)
		}
		return nil
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrations applied (%d new tables)\n", len(pending))
	return nil
}

func migrateDown(out io.Writer, db *database.DB, dryRun bool) error {
	applied, err := tablesWhere(db, true)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		for _, table := range applied {
			fmt.Fprintf(out, "  would drop %s\n", table)
		}
		return nil
	}

	if err := db.DropAll(models.All()...); err != nil {
		return err
	}
	fmt.Fprintf(out, "Dropped %d tables\n", len(applied))
	return nil
}

func writeStatus(out io.Writer, db *database.DB) error {
	status, err := db.TableStatus(models.All()...)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Driver: %s\n\n", db.Driver)
	for _, table := range sortedKeys(status) {
		state := "pending"
		if status[table] {
			state = "applied"
		}
		fmt.Fprintf(out, "  %-24s %s\n", table, state)
	}
	return nil
}

// tablesWhere returns the model tables whose existence matches exists
func tablesWhere(db *database.DB, exists bool) ([]string, error) {
	status, err := db.TableStatus(models.All()...)
	if err != nil {
		return nil, err
	}
	var tables []string
	for _, table := range sortedKeys(status) {
		if status[table] == exists {
			tables = append(tables, table)
		}
	}
	return tables, nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
