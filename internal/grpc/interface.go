package grpc

import (
	"context"
	"time"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/godilite/overlay-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type WidgetService interface {
	FindAppAssessmentWidgetData(ctx context.Context, diagramID, assessmentDefinitionID int64, inScope models.Selector) ([]service.AssessmentRatingsWidgetDatum, error)
	FindTargetAppCostWidgetData(ctx context.Context, diagramID int64, inScope models.Selector, targetStateDate time.Time) ([]service.TargetCostWidgetDatum, error)
}

type FlowDiagramService interface {
	GetByID(ctx context.Context, id int64) (models.FlowDiagram, error)
	FindByEntityReference(ctx context.Context, ref models.EntityReference) ([]models.FlowDiagram, error)
	Create(ctx context.Context, fd models.FlowDiagram) (int64, error)
	Update(ctx context.Context, fd models.FlowDiagram) (bool, error)
}

// SelectorFactory turns the caller's selection options into an application
// selector. Errors mean the options describe no supported selection.
type SelectorFactory func(opts models.IdSelectionOptions) (models.Selector, error)
