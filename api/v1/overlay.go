// Package v1 holds the wire messages and service bindings of the
// overlay.v1.OverlayWidgets gRPC service. Messages travel JSON encoded; see
// CodecName.
package v1

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout of date-only fields such as TargetStateDate.
const DateLayout = "2006-01-02"

type EntityReference struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

func (x *EntityReference) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

func (x *EntityReference) GetID() int64 {
	if x != nil {
		return x.ID
	}
	return 0
}

// IdSelectionOptions selects the applications in scope. A non-nil
// ApplicationIDs (even empty) wins over Entity.
type IdSelectionOptions struct {
	Entity         *EntityReference `json:"entity,omitempty"`
	Scope          string           `json:"scope,omitempty"`
	ApplicationIDs []int64          `json:"applicationIds"`
}

func (x *IdSelectionOptions) GetEntity() *EntityReference {
	if x != nil {
		return x.Entity
	}
	return nil
}

func (x *IdSelectionOptions) GetScope() string {
	if x != nil {
		return x.Scope
	}
	return ""
}

func (x *IdSelectionOptions) GetApplicationIDs() []int64 {
	if x != nil {
		return x.ApplicationIDs
	}
	return nil
}

type AssessmentWidgetRequest struct {
	DiagramID              int64               `json:"diagramId"`
	AssessmentDefinitionID int64               `json:"assessmentDefinitionId"`
	Scope                  *IdSelectionOptions `json:"scope"`
}

func (x *AssessmentWidgetRequest) GetDiagramID() int64 {
	if x != nil {
		return x.DiagramID
	}
	return 0
}

func (x *AssessmentWidgetRequest) GetAssessmentDefinitionID() int64 {
	if x != nil {
		return x.AssessmentDefinitionID
	}
	return 0
}

func (x *AssessmentWidgetRequest) GetScope() *IdSelectionOptions {
	if x != nil {
		return x.Scope
	}
	return nil
}

type RatingSchemeItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
	Position    int32  `json:"position"`
}

type AssessmentRatingCount struct {
	Rating *RatingSchemeItem `json:"rating"`
	Count  int32             `json:"count"`
}

type AssessmentRatingsWidgetDatum struct {
	CellExternalID string                   `json:"cellExternalId"`
	Counts         []*AssessmentRatingCount `json:"counts"`
}

type AssessmentWidgetResponse struct {
	CellData []*AssessmentRatingsWidgetDatum `json:"cellData"`
}

// TargetCostWidgetRequest carries TargetStateDate in DateLayout.
type TargetCostWidgetRequest struct {
	DiagramID       int64               `json:"diagramId"`
	TargetStateDate string              `json:"targetStateDate"`
	Scope           *IdSelectionOptions `json:"scope"`
}

func (x *TargetCostWidgetRequest) GetDiagramID() int64 {
	if x != nil {
		return x.DiagramID
	}
	return 0
}

func (x *TargetCostWidgetRequest) GetTargetStateDate() string {
	if x != nil {
		return x.TargetStateDate
	}
	return ""
}

func (x *TargetCostWidgetRequest) GetScope() *IdSelectionOptions {
	if x != nil {
		return x.Scope
	}
	return nil
}

type TargetCostWidgetDatum struct {
	CellExternalID   string          `json:"cellExternalId"`
	CurrentStateCost decimal.Decimal `json:"currentStateCost"`
	TargetStateCost  decimal.Decimal `json:"targetStateCost"`
}

type TargetCostWidgetResponse struct {
	CellData []*TargetCostWidgetDatum `json:"cellData"`
}

type FlowDiagram struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	LayoutData    string    `json:"layoutData,omitempty"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

type GetFlowDiagramRequest struct {
	ID int64 `json:"id"`
}

func (x *GetFlowDiagramRequest) GetID() int64 {
	if x != nil {
		return x.ID
	}
	return 0
}

type FlowDiagramResponse struct {
	Diagram *FlowDiagram `json:"diagram"`
}

type FindFlowDiagramsByEntityRequest struct {
	Entity *EntityReference `json:"entity"`
}

func (x *FindFlowDiagramsByEntityRequest) GetEntity() *EntityReference {
	if x != nil {
		return x.Entity
	}
	return nil
}

type FlowDiagramsResponse struct {
	Diagrams []*FlowDiagram `json:"diagrams"`
}

type CreateFlowDiagramRequest struct {
	Diagram *FlowDiagram `json:"diagram"`
}

func (x *CreateFlowDiagramRequest) GetDiagram() *FlowDiagram {
	if x != nil {
		return x.Diagram
	}
	return nil
}

type CreateFlowDiagramResponse struct {
	ID int64 `json:"id"`
}

type UpdateFlowDiagramRequest struct {
	Diagram *FlowDiagram `json:"diagram"`
}

func (x *UpdateFlowDiagramRequest) GetDiagram() *FlowDiagram {
	if x != nil {
		return x.Diagram
	}
	return nil
}

type UpdateFlowDiagramResponse struct {
	Updated bool `json:"updated"`
}
