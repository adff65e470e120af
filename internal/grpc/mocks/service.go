package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/godilite/overlay-server/internal/service"
)

// MockWidgetService is a mock implementation of the WidgetService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockWidgetService struct {
	FindAppAssessmentWidgetDataFunc func(ctx context.Context, diagramID, assessmentDefinitionID int64, inScope models.Selector) ([]service.AssessmentRatingsWidgetDatum, error)
	FindTargetAppCostWidgetDataFunc func(ctx context.Context, diagramID int64, inScope models.Selector, targetStateDate time.Time) ([]service.TargetCostWidgetDatum, error)
}

// FindAppAssessmentWidgetData implements the WidgetService interface
func (m *MockWidgetService) FindAppAssessmentWidgetData(ctx context.Context, diagramID, assessmentDefinitionID int64, inScope models.Selector) ([]service.AssessmentRatingsWidgetDatum, error) {
	if m.FindAppAssessmentWidgetDataFunc != nil {
		return m.FindAppAssessmentWidgetDataFunc(ctx, diagramID, assessmentDefinitionID, inScope)
	}
	return nil, errors.New("FindAppAssessmentWidgetDataFunc not implemented")
}

// FindTargetAppCostWidgetData implements the WidgetService interface
func (m *MockWidgetService) FindTargetAppCostWidgetData(ctx context.Context, diagramID int64, inScope models.Selector, targetStateDate time.Time) ([]service.TargetCostWidgetDatum, error) {
	if m.FindTargetAppCostWidgetDataFunc != nil {
		return m.FindTargetAppCostWidgetDataFunc(ctx, diagramID, inScope, targetStateDate)
	}
	return nil, errors.New("FindTargetAppCostWidgetDataFunc not implemented")
}

// MockFlowDiagramService is a mock implementation of the FlowDiagramService interface.
type MockFlowDiagramService struct {
	GetByIDFunc               func(ctx context.Context, id int64) (models.FlowDiagram, error)
	FindByEntityReferenceFunc func(ctx context.Context, ref models.EntityReference) ([]models.FlowDiagram, error)
	CreateFunc                func(ctx context.Context, fd models.FlowDiagram) (int64, error)
	UpdateFunc                func(ctx context.Context, fd models.FlowDiagram) (bool, error)
}

func (m *MockFlowDiagramService) GetByID(ctx context.Context, id int64) (models.FlowDiagram, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return models.FlowDiagram{}, errors.New("GetByIDFunc not implemented")
}

func (m *MockFlowDiagramService) FindByEntityReference(ctx context.Context, ref models.EntityReference) ([]models.FlowDiagram, error) {
	if m.FindByEntityReferenceFunc != nil {
		return m.FindByEntityReferenceFunc(ctx, ref)
	}
	return nil, errors.New("FindByEntityReferenceFunc not implemented")
}

func (m *MockFlowDiagramService) Create(ctx context.Context, fd models.FlowDiagram) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, fd)
	}
	return 0, errors.New("CreateFunc not implemented")
}

func (m *MockFlowDiagramService) Update(ctx context.Context, fd models.FlowDiagram) (bool, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, fd)
	}
	return false, errors.New("UpdateFunc not implemented")
}
