package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/godilite/overlay-server/internal/repository"
	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type scopeFlags struct {
	kind  string
	id    int64
	scope string
	apps  []int64
}

func (s *scopeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&s.kind, "scope-kind", string(models.EntityKindAll), "Kind of the entity selecting applications (ALL|APPLICATION|ORG_UNIT|MEASURABLE|APP_GROUP)")
	fs.Int64Var(&s.id, "scope-id", 0, "Id of the entity selecting applications")
	fs.StringVar(&s.scope, "scope", string(models.ScopeChildren), "Hierarchy scope of the selecting entity (EXACT|CHILDREN)")
	fs.Int64SliceVar(&s.apps, "apps", nil, "Explicit application ids; overrides --scope-kind")
}

func (s *scopeFlags) selector(fs *pflag.FlagSet) (models.Selector, error) {
	opts := models.IdSelectionOptions{
		Entity: models.EntityReference{Kind: models.EntityKind(strings.ToUpper(s.kind)), ID: s.id},
		Scope:  models.HierarchyScope(strings.ToUpper(s.scope)),
	}
	if fs.Changed("apps") {
		opts.ApplicationIDs = append([]int64{}, s.apps...)
	}
	return repository.ApplicationSelector(opts)
}

func newWidgetCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Compute overlay widget data from the database",
	}
	cmd.AddCommand(newAssessmentWidgetCmd(o), newCostWidgetCmd(o))
	return cmd
}

func newAssessmentWidgetCmd(o *rootOptions) *cobra.Command {
	var (
		diagramID    int64
		definitionID int64
		scope        scopeFlags
	)

	cmd := &cobra.Command{
		Use:   "assessment",
		Short: "Count assessment ratings of in-scope applications per diagram cell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := scope.selector(cmd.Flags())
			if err != nil {
				return err
			}

			db, err := o.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			data, err := o.overlayService(db, o.cfg.CostYear).FindAppAssessmentWidgetData(cmd.Context(), diagramID, definitionID, sel)
			if err != nil {
				return err
			}
			return o.write(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().Int64Var(&diagramID, "diagram", 0, "Aggregate overlay diagram id")
	cmd.Flags().Int64Var(&definitionID, "definition", 0, "Assessment definition id")
	scope.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("diagram")
	_ = cmd.MarkFlagRequired("definition")
	return cmd
}

func newCostWidgetCmd(o *rootOptions) *cobra.Command {
	var (
		diagramID  int64
		targetDate string
		year       int
		scope      scopeFlags
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Sum current and target state costs of in-scope applications per diagram cell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse(time.DateOnly, targetDate)
			if err != nil {
				return fmt.Errorf("target date must be formatted %s", time.DateOnly)
			}
			sel, err := scope.selector(cmd.Flags())
			if err != nil {
				return err
			}

			db, err := o.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			data, err := o.overlayService(db, year).FindTargetAppCostWidgetData(cmd.Context(), diagramID, sel, date)
			if err != nil {
				return err
			}
			return o.write(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().Int64Var(&diagramID, "diagram", 0, "Aggregate overlay diagram id")
	cmd.Flags().StringVar(&targetDate, "target-date", time.Now().Format(time.DateOnly), "Target state date")
	cmd.Flags().IntVar(&year, "year", o.cfg.CostYear, "Cost year")
	scope.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("diagram")
	return cmd
}
