package cmd

import (
	"context"
	"fmt"

	"github.com/godilite/overlay-server/internal/repository"
	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/spf13/cobra"
)

func newMigrateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := o.openDB(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			defer db.Close()

			// openDB bootstraps the job log table; the logged run re-applies
			// the schema so the job reflects the real outcome.
			err = o.jobRunner(db).Run(cmd.Context(), "schema migration", "apply schema to "+o.dbDriver, models.EntityKindAll,
				func(ctx context.Context) error {
					return repository.Migrate(ctx, db)
				})
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", o.dbDriver)
			return nil
		},
	}
}
