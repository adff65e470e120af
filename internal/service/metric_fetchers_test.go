package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCostIndicator(t *testing.T) {
	target := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	on := func(y int, m time.Month, d int) sql.NullTime {
		return sql.NullTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
	}
	amount := decimal.NullDecimal{Decimal: decimal.RequireFromString("12.50"), Valid: true}

	tests := []struct {
		name       string
		row        models.ApplicationCost
		wantTarget string
	}{
		{"no retirement", models.ApplicationCost{Amount: amount}, "12.5"},
		{"retired before", models.ApplicationCost{Amount: amount, ActualRetirementDate: on(2021, 5, 31)}, "0"},
		{"retires on the day", models.ApplicationCost{Amount: amount, ActualRetirementDate: on(2021, 6, 1)}, "12.5"},
		{"planned before", models.ApplicationCost{Amount: amount, PlannedRetirementDate: on(2020, 1, 1)}, "0"},
		{"actual overrides planned", models.ApplicationCost{Amount: amount, ActualRetirementDate: on(2030, 1, 1), PlannedRetirementDate: on(2020, 1, 1)}, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := costIndicator(tt.row, target)
			assert.Equal(t, "12.5", got.Current.String())
			assert.Equal(t, tt.wantTarget, got.Target.String())
		})
	}

	t.Run("missing amount is zero", func(t *testing.T) {
		got := costIndicator(models.ApplicationCost{ActualRetirementDate: on(2000, 1, 1)}, target)
		assert.True(t, got.Current.IsZero())
		assert.True(t, got.Target.IsZero())
	})
}

func TestEffectiveRetirementDate(t *testing.T) {
	actual := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	planned := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	d, ok := effectiveRetirementDate(models.ApplicationCost{
		ActualRetirementDate:  sql.NullTime{Time: actual, Valid: true},
		PlannedRetirementDate: sql.NullTime{Time: planned, Valid: true},
	})
	assert.True(t, ok)
	assert.Equal(t, actual, d)

	d, ok = effectiveRetirementDate(models.ApplicationCost{PlannedRetirementDate: sql.NullTime{Time: planned, Valid: true}})
	assert.True(t, ok)
	assert.Equal(t, planned, d)

	_, ok = effectiveRetirementDate(models.ApplicationCost{})
	assert.False(t, ok)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2021, 6, 1, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), startOfDay(in))
}

func TestAggregateRatingCounts(t *testing.T) {
	items := map[int64]models.RatingSchemeItem{
		1: {ID: 1, Name: "Zeta", Position: 1},
		2: {ID: 2, Name: "Alpha", Position: 1},
		3: {ID: 3, Name: "Last", Position: 9},
	}
	scoped := ScopedCellMapping{
		Cells:  map[string][]int64{"b": {10, 11, 12}, "a": {}},
		AppIDs: []int64{10, 11, 12},
	}
	ratings := map[int64]int64{10: 3, 11: 1, 12: 2}

	out := aggregateRatingCounts(scoped, ratings, items)

	assert.Equal(t, "a", out[0].CellExternalID)
	assert.Empty(t, out[0].Counts)
	var names []string
	for _, c := range out[1].Counts {
		names = append(names, c.Rating.Name)
	}
	assert.Equal(t, []string{"Alpha", "Zeta", "Last"}, names)
}

func TestUnionIDs(t *testing.T) {
	got := unionIDs(map[string][]int64{"x": {3, 1}, "y": {1, 2}, "z": nil})
	assert.Equal(t, []int64{1, 2, 3}, got)
	assert.Empty(t, unionIDs(nil))
}
