package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/godilite/overlay-server/internal/repository/models"
)

// MockOverlayStore is a mock implementation of the cell mapping, scope,
// rating and cost stores. It uses function-based mocking for flexibility and
// counts calls so tests can assert on short-circuiting.
type MockOverlayStore struct {
	FindCellApplicationsFunc                         func(ctx context.Context, diagramID int64) (map[string][]int64, bool, error)
	FindIDsInScopeFunc                               func(ctx context.Context, candidates []int64, sel models.Selector) ([]int64, error)
	FindRatingSchemeItemsForAssessmentDefinitionFunc func(ctx context.Context, assessmentDefinitionID int64) ([]models.RatingSchemeItem, error)
	FindEntityRatingsFunc                            func(ctx context.Context, assessmentDefinitionID int64, kind models.EntityKind, entityIDs []int64) ([]models.EntityRating, error)
	FindApplicationCostsFunc                         func(ctx context.Context, year int, applicationIDs []int64) ([]models.ApplicationCost, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockOverlayStore) called(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
}

// Calls returns how many times the named method was invoked.
func (m *MockOverlayStore) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *MockOverlayStore) FindCellApplications(ctx context.Context, diagramID int64) (map[string][]int64, bool, error) {
	m.called("FindCellApplications")
	if m.FindCellApplicationsFunc != nil {
		return m.FindCellApplicationsFunc(ctx, diagramID)
	}
	return nil, false, errors.New("FindCellApplicationsFunc not implemented")
}

func (m *MockOverlayStore) FindIDsInScope(ctx context.Context, candidates []int64, sel models.Selector) ([]int64, error) {
	m.called("FindIDsInScope")
	if m.FindIDsInScopeFunc != nil {
		return m.FindIDsInScopeFunc(ctx, candidates, sel)
	}
	return nil, errors.New("FindIDsInScopeFunc not implemented")
}

func (m *MockOverlayStore) FindRatingSchemeItemsForAssessmentDefinition(ctx context.Context, assessmentDefinitionID int64) ([]models.RatingSchemeItem, error) {
	m.called("FindRatingSchemeItemsForAssessmentDefinition")
	if m.FindRatingSchemeItemsForAssessmentDefinitionFunc != nil {
		return m.FindRatingSchemeItemsForAssessmentDefinitionFunc(ctx, assessmentDefinitionID)
	}
	return nil, errors.New("FindRatingSchemeItemsForAssessmentDefinitionFunc not implemented")
}

func (m *MockOverlayStore) FindEntityRatings(ctx context.Context, assessmentDefinitionID int64, kind models.EntityKind, entityIDs []int64) ([]models.EntityRating, error) {
	m.called("FindEntityRatings")
	if m.FindEntityRatingsFunc != nil {
		return m.FindEntityRatingsFunc(ctx, assessmentDefinitionID, kind, entityIDs)
	}
	return nil, errors.New("FindEntityRatingsFunc not implemented")
}

func (m *MockOverlayStore) FindApplicationCosts(ctx context.Context, year int, applicationIDs []int64) ([]models.ApplicationCost, error) {
	m.called("FindApplicationCosts")
	if m.FindApplicationCostsFunc != nil {
		return m.FindApplicationCostsFunc(ctx, year, applicationIDs)
	}
	return nil, errors.New("FindApplicationCostsFunc not implemented")
}

// MockFlowDiagramStore is a function-based mock of the flow diagram store.
type MockFlowDiagramStore struct {
	GetByIDFunc               func(ctx context.Context, id int64) (models.FlowDiagram, bool, error)
	FindByEntityReferenceFunc func(ctx context.Context, ref models.EntityReference) ([]models.FlowDiagram, error)
	CreateFunc                func(ctx context.Context, fd models.FlowDiagram) (int64, error)
	UpdateFunc                func(ctx context.Context, fd models.FlowDiagram) (bool, error)
}

func (m *MockFlowDiagramStore) GetByID(ctx context.Context, id int64) (models.FlowDiagram, bool, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return models.FlowDiagram{}, false, errors.New("GetByIDFunc not implemented")
}

func (m *MockFlowDiagramStore) FindByEntityReference(ctx context.Context, ref models.EntityReference) ([]models.FlowDiagram, error) {
	if m.FindByEntityReferenceFunc != nil {
		return m.FindByEntityReferenceFunc(ctx, ref)
	}
	return nil, errors.New("FindByEntityReferenceFunc not implemented")
}

func (m *MockFlowDiagramStore) Create(ctx context.Context, fd models.FlowDiagram) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, fd)
	}
	return 0, errors.New("CreateFunc not implemented")
}

func (m *MockFlowDiagramStore) Update(ctx context.Context, fd models.FlowDiagram) (bool, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, fd)
	}
	return false, errors.New("UpdateFunc not implemented")
}

// MockJobStore is a function-based mock of the job log store.
type MockJobStore struct {
	StartFunc    func(ctx context.Context, name, description string, kind models.EntityKind) (int64, error)
	CompleteFunc func(ctx context.Context, id int64, status models.JobStatus) error
}

func (m *MockJobStore) Start(ctx context.Context, name, description string, kind models.EntityKind) (int64, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, name, description, kind)
	}
	return 0, errors.New("StartFunc not implemented")
}

func (m *MockJobStore) Complete(ctx context.Context, id int64, status models.JobStatus) error {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, id, status)
	}
	return errors.New("CompleteFunc not implemented")
}

// MockCostWriter is a function-based mock of the cost writer.
type MockCostWriter struct {
	UpsertCostsFunc func(ctx context.Context, costs []models.Cost) (int, error)
}

func (m *MockCostWriter) UpsertCosts(ctx context.Context, costs []models.Cost) (int, error) {
	if m.UpsertCostsFunc != nil {
		return m.UpsertCostsFunc(ctx, costs)
	}
	return 0, errors.New("UpsertCostsFunc not implemented")
}
