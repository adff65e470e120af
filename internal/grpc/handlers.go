package grpc

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	pb "github.com/godilite/overlay-server/api/v1"
	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/godilite/overlay-server/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeyAssessmentWidget CacheKeyType = "grpc:app_assessment_widget"
	cacheKeyTargetCostWidget CacheKeyType = "grpc:target_app_cost_widget"
	cacheKeyFlowDiagram      CacheKeyType = "grpc:flow_diagram"
)

type GRPCHandlers struct {
	pb.UnimplementedOverlayWidgetsServer
	widgets   WidgetService
	diagrams  FlowDiagramService
	selectors SelectorFactory
	cache     Cacher
	logger    *zap.Logger
	sfGroup   singleflight.Group
	cacheTTL  time.Duration
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(widgets WidgetService, diagrams FlowDiagramService, selectors SelectorFactory, cache Cacher, logger *zap.Logger, ttl time.Duration) *GRPCHandlers {
	if widgets == nil {
		panic("nil WidgetService provided to NewGRPCHandlers")
	}
	if diagrams == nil {
		panic("nil FlowDiagramService provided to NewGRPCHandlers")
	}
	if selectors == nil {
		panic("nil SelectorFactory provided to NewGRPCHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &GRPCHandlers{
		widgets:   widgets,
		diagrams:  diagrams,
		selectors: selectors,
		cache:     cache,
		logger:    logger.Named("grpc-handler"),
		cacheTTL:  ttl,
	}
}

// parseScope validates the wire selection options and builds the selector.
// It also returns a canonical form of the options for cache keys.
func (s *GRPCHandlers) parseScope(opts *pb.IdSelectionOptions) (models.Selector, string, error) {
	if opts == nil {
		return models.Selector{}, "", status.Error(codes.InvalidArgument, "scope is required")
	}

	var sel models.IdSelectionOptions
	if ids := opts.GetApplicationIDs(); ids != nil {
		sel.ApplicationIDs = slices.Clone(ids)
		slices.Sort(sel.ApplicationIDs)
		sel.ApplicationIDs = slices.Compact(sel.ApplicationIDs)
	} else {
		entity := opts.GetEntity()
		if entity == nil {
			return models.Selector{}, "", status.Error(codes.InvalidArgument, "scope needs an entity or application ids")
		}
		kind := models.EntityKind(strings.ToUpper(strings.TrimSpace(entity.GetKind())))
		if kind != models.EntityKindAll && entity.GetID() <= 0 {
			return models.Selector{}, "", status.Error(codes.InvalidArgument, "scope entity id must be positive")
		}
		sel.Entity = models.EntityReference{Kind: kind, ID: entity.GetID()}

		switch hs := models.HierarchyScope(strings.ToUpper(strings.TrimSpace(opts.GetScope()))); hs {
		case "", models.ScopeExact:
			sel.Scope = models.ScopeExact
		case models.ScopeChildren:
			sel.Scope = models.ScopeChildren
		default:
			return models.Selector{}, "", status.Errorf(codes.InvalidArgument, "unknown hierarchy scope %q", opts.GetScope())
		}
	}

	selector, err := s.selectors(sel)
	if err != nil {
		return models.Selector{}, "", status.Errorf(codes.InvalidArgument, "unsupported scope: %v", err)
	}
	return selector, scopeKey(sel), nil
}

// scopeKey hashes the canonical selection options into a short cache key part.
func scopeKey(sel models.IdSelectionOptions) string {
	var b strings.Builder
	if sel.ApplicationIDs != nil {
		b.WriteString("ids")
		for _, id := range sel.ApplicationIDs {
			b.WriteByte(':')
			b.WriteString(strconv.FormatInt(id, 10))
		}
	} else {
		fmt.Fprintf(&b, "%s:%s", sel.Entity, sel.Scope)
	}
	return strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}

func normalizeKey(prefix CacheKeyType, parts ...string) string {
	return string(prefix) + ":" + strings.Join(parts, ":")
}

func requirePositive(name string, v int64) error {
	if v <= 0 {
		return status.Errorf(codes.InvalidArgument, "%s must be positive", name)
	}
	return nil
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		s.logger.Info("invalid argument", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		s.logger.Info("not found", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func (s *GRPCHandlers) GetAppAssessmentWidgetData(ctx context.Context, req *pb.AssessmentWidgetRequest) (*pb.AssessmentWidgetResponse, error) {
	if err := requirePositive("diagram id", req.GetDiagramID()); err != nil {
		return nil, err
	}
	if err := requirePositive("assessment definition id", req.GetAssessmentDefinitionID()); err != nil {
		return nil, err
	}
	selector, scope, err := s.parseScope(req.GetScope())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyAssessmentWidget,
		strconv.FormatInt(req.GetDiagramID(), 10),
		strconv.FormatInt(req.GetAssessmentDefinitionID(), 10),
		scope)

	data, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKeyAssessmentWidget, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) ([]service.AssessmentRatingsWidgetDatum, error) {
		return s.widgets.FindAppAssessmentWidgetData(fetchCtx, req.GetDiagramID(), req.GetAssessmentDefinitionID(), selector)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetAppAssessmentWidgetData", err)
	}

	return &pb.AssessmentWidgetResponse{CellData: toProtoAssessmentData(data)}, nil
}

func (s *GRPCHandlers) GetTargetAppCostWidgetData(ctx context.Context, req *pb.TargetCostWidgetRequest) (*pb.TargetCostWidgetResponse, error) {
	if err := requirePositive("diagram id", req.GetDiagramID()); err != nil {
		return nil, err
	}
	targetDate, err := time.Parse(pb.DateLayout, req.GetTargetStateDate())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "target state date must be formatted %s", pb.DateLayout)
	}
	selector, scope, err := s.parseScope(req.GetScope())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyTargetCostWidget,
		strconv.FormatInt(req.GetDiagramID(), 10),
		targetDate.Format(pb.DateLayout),
		scope)

	data, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKeyTargetCostWidget, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) ([]service.TargetCostWidgetDatum, error) {
		return s.widgets.FindTargetAppCostWidgetData(fetchCtx, req.GetDiagramID(), selector, targetDate)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetTargetAppCostWidgetData", err)
	}

	out := make([]*pb.TargetCostWidgetDatum, len(data))
	for i, d := range data {
		out[i] = &pb.TargetCostWidgetDatum{
			CellExternalID:   d.CellExternalID,
			CurrentStateCost: d.CurrentStateCost,
			TargetStateCost:  d.TargetStateCost,
		}
	}
	return &pb.TargetCostWidgetResponse{CellData: out}, nil
}

func flowDiagramKey(id int64) string {
	return normalizeKey(cacheKeyFlowDiagram, strconv.FormatInt(id, 10))
}

func (s *GRPCHandlers) GetFlowDiagram(ctx context.Context, req *pb.GetFlowDiagramRequest) (*pb.FlowDiagramResponse, error) {
	if err := requirePositive("id", req.GetID()); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	fd, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKeyFlowDiagram, flowDiagramKey(req.GetID()), s.cacheTTL, s.logger, func(fetchCtx context.Context) (models.FlowDiagram, error) {
		return s.diagrams.GetByID(fetchCtx, req.GetID())
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetFlowDiagram", err)
	}

	return &pb.FlowDiagramResponse{Diagram: toProtoFlowDiagram(fd)}, nil
}

func (s *GRPCHandlers) FindFlowDiagramsByEntity(ctx context.Context, req *pb.FindFlowDiagramsByEntityRequest) (*pb.FlowDiagramsResponse, error) {
	entity := req.GetEntity()
	if entity == nil {
		return nil, status.Error(codes.InvalidArgument, "entity is required")
	}
	ref := models.EntityReference{
		Kind: models.EntityKind(strings.ToUpper(strings.TrimSpace(entity.GetKind()))),
		ID:   entity.GetID(),
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	diagrams, err := s.diagrams.FindByEntityReference(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, "FindFlowDiagramsByEntity", err)
	}

	out := make([]*pb.FlowDiagram, len(diagrams))
	for i, fd := range diagrams {
		out[i] = toProtoFlowDiagram(fd)
	}
	return &pb.FlowDiagramsResponse{Diagrams: out}, nil
}

func (s *GRPCHandlers) CreateFlowDiagram(ctx context.Context, req *pb.CreateFlowDiagramRequest) (*pb.CreateFlowDiagramResponse, error) {
	if req.GetDiagram() == nil {
		return nil, status.Error(codes.InvalidArgument, "diagram is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	fd := fromProtoFlowDiagram(req.GetDiagram())
	fd.ID = 0

	id, err := s.diagrams.Create(ctx, fd)
	if err != nil {
		return nil, s.handleError(ctx, "CreateFlowDiagram", err)
	}
	return &pb.CreateFlowDiagramResponse{ID: id}, nil
}

func (s *GRPCHandlers) UpdateFlowDiagram(ctx context.Context, req *pb.UpdateFlowDiagramRequest) (*pb.UpdateFlowDiagramResponse, error) {
	if req.GetDiagram() == nil {
		return nil, status.Error(codes.InvalidArgument, "diagram is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	fd := fromProtoFlowDiagram(req.GetDiagram())
	updated, err := s.diagrams.Update(ctx, fd)
	if err != nil {
		return nil, s.handleError(ctx, "UpdateFlowDiagram", err)
	}
	if updated {
		invalidate(ctx, s.cache, s.logger, flowDiagramKey(fd.ID))
	}
	return &pb.UpdateFlowDiagramResponse{Updated: updated}, nil
}

func toProtoAssessmentData(data []service.AssessmentRatingsWidgetDatum) []*pb.AssessmentRatingsWidgetDatum {
	out := make([]*pb.AssessmentRatingsWidgetDatum, len(data))
	for i, d := range data {
		counts := make([]*pb.AssessmentRatingCount, len(d.Counts))
		for j, c := range d.Counts {
			counts[j] = &pb.AssessmentRatingCount{
				Rating: &pb.RatingSchemeItem{
					ID:          c.Rating.ID,
					Name:        c.Rating.Name,
					Code:        c.Rating.Code,
					Color:       c.Rating.Color,
					Description: c.Rating.Description,
					Position:    int32(c.Rating.Position),
				},
				Count: int32(c.Count),
			}
		}
		out[i] = &pb.AssessmentRatingsWidgetDatum{CellExternalID: d.CellExternalID, Counts: counts}
	}
	return out
}

func toProtoFlowDiagram(fd models.FlowDiagram) *pb.FlowDiagram {
	return &pb.FlowDiagram{
		ID:            fd.ID,
		Name:          fd.Name,
		Description:   fd.Description,
		LayoutData:    fd.LayoutData,
		LastUpdatedAt: fd.LastUpdatedAt,
		LastUpdatedBy: fd.LastUpdatedBy,
	}
}

func fromProtoFlowDiagram(fd *pb.FlowDiagram) models.FlowDiagram {
	return models.FlowDiagram{
		ID:            fd.ID,
		Name:          fd.Name,
		Description:   fd.Description,
		LayoutData:    fd.LayoutData,
		LastUpdatedBy: fd.LastUpdatedBy,
	}
}
