package cmd

import (
	"fmt"

	"github.com/godilite/overlay-server/internal/repository"
	"github.com/godilite/overlay-server/internal/service"
	"github.com/spf13/cobra"
)

type importResult struct {
	Source   string `json:"source" yaml:"source"`
	Imported int    `json:"imported" yaml:"imported"`
}

func newImportCostsCmd(o *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import-costs",
		Short: "Import application costs from a YAML file",
		Long: `Import application costs from a YAML file.

Rows replace any existing cost with the same entity, cost kind and year.
The import is recorded in the job log.

  costs:
    - entityId: 1
      costKindId: 1
      year: 2021
      amount: 150.00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			costs, err := service.DecodeCostFile(in)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			db, err := o.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			importer := service.NewCostImporter(repository.NewCostRepository(db), o.jobRunner(db), o.logger)
			n, err := importer.Import(cmd.Context(), file, costs)
			if err != nil {
				return err
			}
			return o.write(cmd.OutOrStdout(), importResult{Source: file, Imported: n})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Cost file to import (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
