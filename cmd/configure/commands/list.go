package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/benvon/food-delivery/internal/database"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List database migrations",
		Long:  "List every embedded migration and whether it has been applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDatabase(db, cmd.ErrOrStderr())

			statuses, err := database.Status(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("failed to list migrations: %w", err)
			}

			return printMigrations(cmd, statuses)
		},
	}

	return cmd
}

func printMigrations(cmd *cobra.Command, statuses []database.MigrationStatus) error {
	if len(statuses) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations embedded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tSTATUS")
	for _, s := range statuses {
		status := "pending"
		if s.Applied {
			status = "applied"
		}
		fmt.Fprintf(w, "%06d\t%s\t%s\n", s.Version, s.Name, status)
	}
	return w.Flush()
}
