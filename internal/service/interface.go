package service

import (
	"context"

	"github.com/godilite/overlay-server/internal/repository/models"
)

// CellMappingStore resolves overlay diagram cells to their backing applications.
type CellMappingStore interface {
	FindCellApplications(ctx context.Context, diagramID int64) (map[string][]int64, bool, error)
}

// ScopeStore narrows a candidate id set to the ids a selector yields.
type ScopeStore interface {
	FindIDsInScope(ctx context.Context, candidates []int64, sel models.Selector) ([]int64, error)
}

// RatingStore provides rating scheme items and assessment ratings.
type RatingStore interface {
	FindRatingSchemeItemsForAssessmentDefinition(ctx context.Context, assessmentDefinitionID int64) ([]models.RatingSchemeItem, error)
	FindEntityRatings(ctx context.Context, assessmentDefinitionID int64, kind models.EntityKind, entityIDs []int64) ([]models.EntityRating, error)
}

// CostStore provides point-in-time application costs.
type CostStore interface {
	FindApplicationCosts(ctx context.Context, year int, applicationIDs []int64) ([]models.ApplicationCost, error)
}

// FlowDiagramStore defines the persistence operations for flow diagrams.
type FlowDiagramStore interface {
	GetByID(ctx context.Context, id int64) (models.FlowDiagram, bool, error)
	FindByEntityReference(ctx context.Context, ref models.EntityReference) ([]models.FlowDiagram, error)
	Create(ctx context.Context, fd models.FlowDiagram) (int64, error)
	Update(ctx context.Context, fd models.FlowDiagram) (bool, error)
}

// JobStore records the lifecycle of long running jobs.
type JobStore interface {
	Start(ctx context.Context, name, description string, kind models.EntityKind) (int64, error)
	Complete(ctx context.Context, id int64, status models.JobStatus) error
}

// CostWriter persists imported cost rows.
type CostWriter interface {
	UpsertCosts(ctx context.Context, costs []models.Cost) (int, error)
}
