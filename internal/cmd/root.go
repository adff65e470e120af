// Package cmd contains the overlayctl commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/godilite/overlay-server/internal/config"
	"github.com/godilite/overlay-server/internal/repository"
	"github.com/godilite/overlay-server/internal/service"
	"github.com/godilite/overlay-server/pkg/database"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the current version of overlayctl
var Version = "0.1.0"

type rootOptions struct {
	cfg    *config.Config
	logger *zap.Logger

	dbDriver     string
	dbPath       string
	outputFormat string
}

// NewRootCmd builds the command tree with configuration read from the
// environment.
func NewRootCmd() (*cobra.Command, error) {
	cfg := config.LoadFromEnv()
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return newRootCmd(cfg, logger), nil
}

func newRootCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	o := &rootOptions{cfg: cfg, logger: logger.Named("overlayctl")}

	root := &cobra.Command{
		Use:   "overlayctl",
		Short: "Operate the overlay widget database",
		Long: `overlayctl manages the database behind the overlay widget server.

It applies the schema, imports application costs, computes widget data
straight from the database and reads report grid notes.

Output Format:
  Commands print YAML by default. Use --format json for JSON.

Examples:
  overlayctl migrate
  overlayctl import-costs --file costs.yaml
  overlayctl widget assessment --diagram 1 --definition 50 --scope-kind ORG_UNIT --scope-id 10 --scope CHILDREN
  overlayctl widget cost --diagram 1 --target-date 2021-06-01 --apps 1,2,3
  overlayctl jobs list --limit 5`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch o.outputFormat {
			case formatYAML, formatJSON:
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (want yaml or json)", o.outputFormat)
			}
		},
	}

	root.PersistentFlags().StringVar(&o.dbDriver, "db-driver", cfg.DBDriver, "Database driver (sqlite3|postgres)")
	root.PersistentFlags().StringVar(&o.dbPath, "db-path", cfg.DBPath, "Database path or connection string")
	root.PersistentFlags().StringVar(&o.outputFormat, "format", formatYAML, "Output format (yaml|json)")

	root.AddCommand(
		newMigrateCmd(o),
		newImportCostsCmd(o),
		newWidgetCmd(o),
		newGridNoteCmd(o),
		newJobsCmd(o),
	)
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	root, err := NewRootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB connects to the configured database and brings its schema up to
// date. Every statement in the schema is idempotent.
func (o *rootOptions) openDB(ctx context.Context) (*sqlx.DB, error) {
	db, err := database.New(
		database.WithDriver(o.dbDriver),
		database.WithDataSource(o.dbPath),
		database.WithRetry(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (o *rootOptions) jobRunner(db *sqlx.DB) *service.JobRunner {
	return service.NewJobRunner(repository.NewJobLogRepository(db), o.logger)
}

func (o *rootOptions) overlayService(db *sqlx.DB, costYear int) *service.OverlayWidgetService {
	return service.NewOverlayWidgetService(
		service.NewCellMappingResolver(repository.NewOverlayRepository(db)),
		service.NewScopeIntersector(repository.NewApplicationRepository(db)),
		service.NewAssessmentRatingFetcher(repository.NewRatingRepository(db)),
		service.NewCostIndicatorFetcher(repository.NewCostRepository(db), costYear),
		o.logger,
		o.cfg.DBTimeout,
	)
}
