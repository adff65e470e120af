package service

import (
	"context"
	"fmt"
	"time"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/shopspring/decimal"
)

// AssessmentRatingFetcher loads rating scheme items and application ratings
// for one assessment definition.
type AssessmentRatingFetcher struct {
	store RatingStore
}

func NewAssessmentRatingFetcher(store RatingStore) *AssessmentRatingFetcher {
	if store == nil {
		panic("rating store must not be nil")
	}
	return &AssessmentRatingFetcher{store: store}
}

// SchemeItems returns the definition's rating scheme items indexed by id.
func (f *AssessmentRatingFetcher) SchemeItems(ctx context.Context, assessmentDefinitionID int64) (map[int64]models.RatingSchemeItem, error) {
	items, err := f.store.FindRatingSchemeItemsForAssessmentDefinition(ctx, assessmentDefinitionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	byID := make(map[int64]models.RatingSchemeItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID, nil
}

// Ratings maps each application to its rating id. Applications without a
// rating, or rated with an id outside items, are left out.
func (f *AssessmentRatingFetcher) Ratings(ctx context.Context, assessmentDefinitionID int64, appIDs []int64, items map[int64]models.RatingSchemeItem) (map[int64]int64, error) {
	if len(appIDs) == 0 {
		return map[int64]int64{}, nil
	}

	rows, err := f.store.FindEntityRatings(ctx, assessmentDefinitionID, models.EntityKindApplication, appIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	byApp := make(map[int64]int64, len(rows))
	for _, r := range rows {
		if _, ok := items[r.RatingID]; !ok {
			continue
		}
		byApp[r.EntityID] = r.RatingID
	}
	return byApp, nil
}

// CostIndicatorFetcher derives current and target state costs per application
// from the default cost kind of a fixed reporting year.
type CostIndicatorFetcher struct {
	store CostStore
	year  int
}

func NewCostIndicatorFetcher(store CostStore, year int) *CostIndicatorFetcher {
	if store == nil {
		panic("cost store must not be nil")
	}
	return &CostIndicatorFetcher{store: store, year: year}
}

// Fetch returns a cost indicator for every application with a cost row.
// Callers treat missing applications as zero cost.
func (f *CostIndicatorFetcher) Fetch(ctx context.Context, targetStateDate time.Time, appIDs []int64) (map[int64]CostIndicator, error) {
	if len(appIDs) == 0 {
		return map[int64]CostIndicator{}, nil
	}

	rows, err := f.store.FindApplicationCosts(ctx, f.year, appIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	target := startOfDay(targetStateDate)
	byApp := make(map[int64]CostIndicator, len(rows))
	for _, row := range rows {
		byApp[row.ApplicationID] = costIndicator(row, target)
	}
	return byApp, nil
}

// costIndicator zeroes the target cost of an application retiring strictly
// before the target state date.
func costIndicator(row models.ApplicationCost, targetStateDate time.Time) CostIndicator {
	if !row.Amount.Valid {
		return zeroCost
	}

	amount := row.Amount.Decimal
	targetAmount := amount
	if retirement, ok := effectiveRetirementDate(row); ok && retirement.Before(targetStateDate) {
		targetAmount = decimal.Zero
	}
	return CostIndicator{Current: amount, Target: targetAmount}
}

// effectiveRetirementDate is the actual retirement date when known, else the planned one.
func effectiveRetirementDate(row models.ApplicationCost) (time.Time, bool) {
	if row.ActualRetirementDate.Valid {
		return row.ActualRetirementDate.Time, true
	}
	if row.PlannedRetirementDate.Valid {
		return row.PlannedRetirementDate.Time, true
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
