package cmd

import (
	"github.com/godilite/overlay-server/internal/repository"
	"github.com/spf13/cobra"
)

func newJobsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect the job log",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := o.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			jobs, err := repository.NewJobLogRepository(db).FindRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return o.write(cmd.OutOrStdout(), jobs)
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "Maximum number of jobs to list")

	cmd.AddCommand(list)
	return cmd
}
