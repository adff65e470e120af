package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/godilite/overlay-server/internal/reportgrid"
	"github.com/spf13/cobra"
)

type gridNote struct {
	Grid    reportgrid.GridInfo `json:"grid" yaml:"grid"`
	Filters []reportgrid.Filter `json:"filters" yaml:"filters"`
}

func newGridNoteCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid-note",
		Short: "Work with report grid filter notes",
	}

	var file string
	parse := &cobra.Command{
		Use:   "parse",
		Short: "Parse a report grid filter note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			text, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			note := reportgrid.ParseNoteText(string(text))
			if note == nil {
				return errors.New("note is empty")
			}
			grid, err := note.Grid()
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			filters, err := note.FilterList()
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			return o.write(cmd.OutOrStdout(), gridNote{Grid: grid, Filters: filters})
		},
	}
	parse.Flags().StringVarP(&file, "file", "f", "-", "Note file (- for stdin)")

	cmd.AddCommand(parse)
	return cmd
}
