package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/godilite/overlay-server/internal/repository/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const defaultCostProvenance = "import"

// CostFile is the YAML document accepted by the cost importer.
type CostFile struct {
	Costs []models.Cost `yaml:"costs"`
}

// DecodeCostFile reads a cost file. Unknown fields are rejected; a blank
// entity kind means APPLICATION and a blank provenance means "import".
func DecodeCostFile(r io.Reader) ([]models.Cost, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file CostFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.Cost{}, nil
		}
		return nil, fmt.Errorf("%w: decode cost file: %v", ErrInvalidArgument, err)
	}

	for i := range file.Costs {
		c := &file.Costs[i]
		if c.EntityKind == "" {
			c.EntityKind = models.EntityKindApplication
		}
		if c.Provenance == "" {
			c.Provenance = defaultCostProvenance
		}
	}
	if file.Costs == nil {
		file.Costs = []models.Cost{}
	}
	return file.Costs, nil
}

// CostImporter upserts cost rows as a single logged job.
type CostImporter struct {
	store  CostWriter
	jobs   *JobRunner
	logger *zap.Logger
}

func NewCostImporter(store CostWriter, jobs *JobRunner, logger *zap.Logger) *CostImporter {
	if store == nil || jobs == nil {
		panic("cost importer dependencies must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &CostImporter{store: store, jobs: jobs, logger: logger}
}

// Import validates every row before writing any, then upserts them all.
func (c *CostImporter) Import(ctx context.Context, source string, costs []models.Cost) (int, error) {
	for i, cost := range costs {
		if err := validateCost(cost); err != nil {
			return 0, fmt.Errorf("%w: row %d: %v", ErrInvalidArgument, i+1, err)
		}
	}

	var written int
	err := c.jobs.Run(ctx, "cost import", "import costs from "+source, models.EntityKindCostKind, func(ctx context.Context) error {
		n, err := c.store.UpsertCosts(ctx, costs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorageFailure, err)
		}
		written = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	c.logger.Info("imported costs", zap.String("source", source), zap.Int("rows", written))
	return written, nil
}

func validateCost(c models.Cost) error {
	switch {
	case c.EntityID <= 0:
		return errors.New("entityId must be positive")
	case c.EntityKind == "":
		return errors.New("entityKind is required")
	case c.CostKindID <= 0:
		return errors.New("costKindId must be positive")
	case c.Year <= 0:
		return errors.New("year must be positive")
	case c.Amount.IsNegative():
		return errors.New("amount must not be negative")
	}
	return nil
}
