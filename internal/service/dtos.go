package service

import (
	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/shopspring/decimal"
)

type AssessmentRatingCount struct {
	Rating models.RatingSchemeItem `json:"rating" yaml:"rating"`
	Count  int                     `json:"count" yaml:"count"`
}

// AssessmentRatingsWidgetDatum is the rating distribution of one diagram cell.
type AssessmentRatingsWidgetDatum struct {
	CellExternalID string                  `json:"cellExternalId" yaml:"cellExternalId"`
	Counts         []AssessmentRatingCount `json:"counts" yaml:"counts"`
}

// CostIndicator pairs an application's current cost with its projected cost
// at the target state date.
type CostIndicator struct {
	Current decimal.Decimal `json:"current"`
	Target  decimal.Decimal `json:"target"`
}

var zeroCost = CostIndicator{Current: decimal.Zero, Target: decimal.Zero}

// TargetCostWidgetDatum is the summed current and target state cost of one diagram cell.
type TargetCostWidgetDatum struct {
	CellExternalID   string          `json:"cellExternalId" yaml:"cellExternalId"`
	CurrentStateCost decimal.Decimal `json:"currentStateCost" yaml:"currentStateCost"`
	TargetStateCost  decimal.Decimal `json:"targetStateCost" yaml:"targetStateCost"`
}

// ScopedCellMapping is the cell membership actually rendered for a request:
// each cell's members intersected with the caller's scope.
type ScopedCellMapping struct {
	Cells  map[string][]int64
	AppIDs []int64
}
