package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godilite/overlay-server/internal/metrics"
	"github.com/godilite/overlay-server/internal/repository/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDBTimeout = 2 * time.Second

	widgetAssessment = "app_assessment"
	widgetTargetCost = "target_app_cost"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrStorageFailure  = errors.New("storage failure")
)

// OverlayWidgetService computes per-cell widget data for aggregate overlay
// diagrams: resolve cells, intersect with scope, fetch the metric, aggregate.
type OverlayWidgetService struct {
	resolver    *CellMappingResolver
	intersector *ScopeIntersector
	ratings     *AssessmentRatingFetcher
	costs       *CostIndicatorFetcher
	logger      *zap.Logger
	dbTimeout   time.Duration
}

// NewOverlayWidgetService creates a new OverlayWidgetService instance.
func NewOverlayWidgetService(
	resolver *CellMappingResolver,
	intersector *ScopeIntersector,
	ratings *AssessmentRatingFetcher,
	costs *CostIndicatorFetcher,
	logger *zap.Logger,
	dbTimeout time.Duration,
) *OverlayWidgetService {
	if resolver == nil || intersector == nil || ratings == nil || costs == nil {
		panic("overlay widget dependencies must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	if dbTimeout <= 0 {
		dbTimeout = defaultDBTimeout
	}
	return &OverlayWidgetService{
		resolver:    resolver,
		intersector: intersector,
		ratings:     ratings,
		costs:       costs,
		logger:      logger,
		dbTimeout:   dbTimeout,
	}
}

// FindAppAssessmentWidgetData returns, per cell, how many in-scope applications
// hold each rating of the assessment definition. A diagram without cell data
// or a definition without rating scheme items yields no data.
func (s *OverlayWidgetService) FindAppAssessmentWidgetData(ctx context.Context, diagramID, assessmentDefinitionID int64, inScope models.Selector) (result []AssessmentRatingsWidgetDatum, err error) {
	if diagramID <= 0 {
		return nil, fmt.Errorf("%w: diagram id must be positive", ErrInvalidArgument)
	}
	if assessmentDefinitionID <= 0 {
		return nil, fmt.Errorf("%w: assessment definition id must be positive", ErrInvalidArgument)
	}
	if inScope.IsZero() {
		return nil, fmt.Errorf("%w: in scope selector is required", ErrInvalidArgument)
	}

	start := time.Now()
	defer func() { s.record(widgetAssessment, len(result), err, time.Since(start)) }()

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	mapping, ok, err := s.resolver.Resolve(dbCtx, diagramID)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug("no cell mapping for diagram", zap.Int64("diagram_id", diagramID))
		return []AssessmentRatingsWidgetDatum{}, nil
	}

	var (
		scoped ScopedCellMapping
		items  map[int64]models.RatingSchemeItem
	)

	g, gCtx := errgroup.WithContext(dbCtx)
	g.Go(func() error {
		var err error
		scoped, err = s.intersector.Intersect(gCtx, mapping, inScope)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.ratings.SchemeItems(gCtx, assessmentDefinitionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		s.logger.Debug("no rating scheme items for assessment definition",
			zap.Int64("assessment_definition_id", assessmentDefinitionID))
		return []AssessmentRatingsWidgetDatum{}, nil
	}

	ratings, err := s.ratings.Ratings(dbCtx, assessmentDefinitionID, scoped.AppIDs, items)
	if err != nil {
		return nil, err
	}

	result = aggregateRatingCounts(scoped, ratings, items)

	s.logger.Info("computed assessment widget",
		zap.Int64("diagram_id", diagramID),
		zap.Int64("assessment_definition_id", assessmentDefinitionID),
		zap.Int("cells", len(result)),
		zap.Int("applications", len(scoped.AppIDs)),
		zap.Int("rated", len(ratings)))

	return result, nil
}

// FindTargetAppCostWidgetData returns, per cell, the summed current cost of the
// in-scope applications and their projected cost at targetStateDate.
func (s *OverlayWidgetService) FindTargetAppCostWidgetData(ctx context.Context, diagramID int64, inScope models.Selector, targetStateDate time.Time) (result []TargetCostWidgetDatum, err error) {
	if diagramID <= 0 {
		return nil, fmt.Errorf("%w: diagram id must be positive", ErrInvalidArgument)
	}
	if inScope.IsZero() {
		return nil, fmt.Errorf("%w: in scope selector is required", ErrInvalidArgument)
	}
	if targetStateDate.IsZero() {
		return nil, fmt.Errorf("%w: target state date is required", ErrInvalidArgument)
	}

	start := time.Now()
	defer func() { s.record(widgetTargetCost, len(result), err, time.Since(start)) }()

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	mapping, ok, err := s.resolver.Resolve(dbCtx, diagramID)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug("no cell mapping for diagram", zap.Int64("diagram_id", diagramID))
		return []TargetCostWidgetDatum{}, nil
	}

	scoped, err := s.intersector.Intersect(dbCtx, mapping, inScope)
	if err != nil {
		return nil, err
	}

	costs, err := s.costs.Fetch(dbCtx, targetStateDate, scoped.AppIDs)
	if err != nil {
		return nil, err
	}

	result = aggregateCosts(scoped, costs)

	s.logger.Info("computed target cost widget",
		zap.Int64("diagram_id", diagramID),
		zap.Time("target_state_date", targetStateDate),
		zap.Int("cells", len(result)),
		zap.Int("applications", len(scoped.AppIDs)))

	return result, nil
}

func (s *OverlayWidgetService) record(widget string, cells int, err error, d time.Duration) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
		s.logger.Error("widget computation failed", zap.String("widget", widget), zap.Error(err))
	case cells == 0:
		outcome = "empty"
	}
	metrics.RecordWidgetComputation(widget, outcome, cells, d)
}
