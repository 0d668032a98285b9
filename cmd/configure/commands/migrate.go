package commands

import (
	"fmt"

	"github.com/benvon/food-delivery/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  "Apply every embedded SQL migration that has not been recorded in schema_migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDatabase(db, cmd.ErrOrStderr())

			applied, err := database.Migrate(cmd.Context(), db, zap.NewNop())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "Database is up to date.")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(out, "✓ Applied migration %06d\n", v)
			}
			return nil
		},
	}
}
