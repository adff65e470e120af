package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/godilite/overlay-server/internal/service/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testSelector = models.Selector{Query: "SELECT id FROM application", Args: []any{}}
	ratingGood   = models.RatingSchemeItem{ID: 11, RatingSchemeID: 1, Name: "Good", Code: "G", Position: 1}
	ratingBad    = models.RatingSchemeItem{ID: 12, RatingSchemeID: 1, Name: "Bad", Code: "B", Position: 2}
)

func newTestOverlayService(store *mocks.MockOverlayStore, costYear int) *OverlayWidgetService {
	return NewOverlayWidgetService(
		NewCellMappingResolver(store),
		NewScopeIntersector(store),
		NewAssessmentRatingFetcher(store),
		NewCostIndicatorFetcher(store, costYear),
		zap.NewNop(),
		time.Second,
	)
}

// scopeOf returns a scope lookup that keeps only the candidates in ids.
func scopeOf(ids ...int64) func(ctx context.Context, candidates []int64, sel models.Selector) ([]int64, error) {
	allowed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	return func(ctx context.Context, candidates []int64, sel models.Selector) ([]int64, error) {
		var out []int64
		for _, id := range candidates {
			if allowed[id] {
				out = append(out, id)
			}
		}
		return out, nil
	}
}

func mappingOf(m map[string][]int64) func(ctx context.Context, diagramID int64) (map[string][]int64, bool, error) {
	return func(ctx context.Context, diagramID int64) (map[string][]int64, bool, error) {
		return m, true, nil
	}
}

func ratingsOf(byApp map[int64]int64) func(ctx context.Context, defID int64, kind models.EntityKind, ids []int64) ([]models.EntityRating, error) {
	return func(ctx context.Context, defID int64, kind models.EntityKind, ids []int64) ([]models.EntityRating, error) {
		var out []models.EntityRating
		for _, id := range ids {
			if r, ok := byApp[id]; ok {
				out = append(out, models.EntityRating{EntityID: id, RatingID: r})
			}
		}
		return out, nil
	}
}

func countsByCode(d AssessmentRatingsWidgetDatum) map[string]int {
	out := make(map[string]int)
	for _, c := range d.Counts {
		out[c.Rating.Code] = c.Count
	}
	return out
}

func TestNewOverlayWidgetService(t *testing.T) {
	store := &mocks.MockOverlayStore{}

	t.Run("nil dependency panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewOverlayWidgetService(nil, NewScopeIntersector(store), NewAssessmentRatingFetcher(store), NewCostIndicatorFetcher(store, 2021), zap.NewNop(), time.Second)
		})
		assert.Panics(t, func() { NewCellMappingResolver(nil) })
		assert.Panics(t, func() { NewCostIndicatorFetcher(nil, 2021) })
	})

	t.Run("nil logger and zero timeout get defaults", func(t *testing.T) {
		svc := NewOverlayWidgetService(NewCellMappingResolver(store), NewScopeIntersector(store), NewAssessmentRatingFetcher(store), NewCostIndicatorFetcher(store, 2021), nil, 0)

		assert.NotNil(t, svc.logger)
		assert.Equal(t, defaultDBTimeout, svc.dbTimeout)
	})
}

func TestFindAppAssessmentWidgetData(t *testing.T) {
	ctx := context.Background()

	newStore := func() *mocks.MockOverlayStore {
		return &mocks.MockOverlayStore{
			FindCellApplicationsFunc: mappingOf(map[string][]int64{"C1": {1, 2, 3}, "C2": {4}}),
			FindIDsInScopeFunc:       scopeOf(1, 2, 4),
			FindRatingSchemeItemsForAssessmentDefinitionFunc: func(ctx context.Context, defID int64) ([]models.RatingSchemeItem, error) {
				assert.Equal(t, int64(50), defID)
				return []models.RatingSchemeItem{ratingGood, ratingBad}, nil
			},
			FindEntityRatingsFunc: ratingsOf(map[int64]int64{1: 11, 2: 12, 3: 11}),
		}
	}

	t.Run("counts ratings of in-scope members per cell", func(t *testing.T) {
		svc := newTestOverlayService(newStore(), 2021)

		data, err := svc.FindAppAssessmentWidgetData(ctx, 1, 50, testSelector)
		require.NoError(t, err)
		require.Len(t, data, 2)

		assert.Equal(t, "C1", data[0].CellExternalID)
		assert.Equal(t, map[string]int{"G": 1, "B": 1}, countsByCode(data[0]))
		assert.Equal(t, "Good", data[0].Counts[0].Rating.Name, "counts ordered by rating position")

		assert.Equal(t, "C2", data[1].CellExternalID)
		assert.NotNil(t, data[1].Counts)
		assert.Empty(t, data[1].Counts)
	})

	t.Run("only scoped ids are sent to the ratings store", func(t *testing.T) {
		store := newStore()
		store.FindEntityRatingsFunc = func(ctx context.Context, defID int64, kind models.EntityKind, ids []int64) ([]models.EntityRating, error) {
			assert.Equal(t, models.EntityKindApplication, kind)
			assert.Equal(t, []int64{1, 2, 4}, ids)
			return nil, nil
		}
		svc := newTestOverlayService(store, 2021)

		_, err := svc.FindAppAssessmentWidgetData(ctx, 1, 50, testSelector)
		require.NoError(t, err)
	})

	t.Run("no cell mapping short circuits", func(t *testing.T) {
		store := newStore()
		store.FindCellApplicationsFunc = func(ctx context.Context, diagramID int64) (map[string][]int64, bool, error) {
			return nil, false, nil
		}
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindAppAssessmentWidgetData(ctx, 1, 50, testSelector)
		require.NoError(t, err)
		assert.Empty(t, data)
		assert.Zero(t, store.Calls("FindIDsInScope"))
		assert.Zero(t, store.Calls("FindRatingSchemeItemsForAssessmentDefinition"))
		assert.Zero(t, store.Calls("FindEntityRatings"))
	})

	t.Run("no rating scheme items yields empty", func(t *testing.T) {
		store := newStore()
		store.FindRatingSchemeItemsForAssessmentDefinitionFunc = func(ctx context.Context, defID int64) ([]models.RatingSchemeItem, error) {
			return nil, nil
		}
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindAppAssessmentWidgetData(ctx, 1, 50, testSelector)
		require.NoError(t, err)
		assert.Empty(t, data)
		assert.Zero(t, store.Calls("FindEntityRatings"))
	})

	t.Run("ratings outside the scheme are ignored", func(t *testing.T) {
		store := newStore()
		store.FindEntityRatingsFunc = ratingsOf(map[int64]int64{1: 11, 2: 999})
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindAppAssessmentWidgetData(ctx, 1, 50, testSelector)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"G": 1}, countsByCode(data[0]))
	})

	t.Run("counts never exceed scoped membership", func(t *testing.T) {
		store := newStore()
		store.FindCellApplicationsFunc = mappingOf(map[string][]int64{
			"A": {1, 2, 3, 4, 5, 6},
			"B": {1, 1, 2},
			"C": {7},
		})
		store.FindIDsInScopeFunc = scopeOf(1, 2, 5, 7)
		store.FindEntityRatingsFunc = ratingsOf(map[int64]int64{1: 11, 2: 11, 3: 12, 4: 12, 5: 12, 6: 11, 7: 12})
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindAppAssessmentWidgetData(ctx, 1, 50, testSelector)
		require.NoError(t, err)

		limits := map[string]int{"A": 3, "B": 2, "C": 1}
		for _, d := range data {
			total := 0
			for _, c := range d.Counts {
				total += c.Count
			}
			assert.LessOrEqual(t, total, limits[d.CellExternalID], d.CellExternalID)
		}
		assert.Equal(t, map[string]int{"G": 2, "B": 1}, countsByCode(data[0]))
		assert.Equal(t, map[string]int{"G": 2}, countsByCode(data[1]))
	})

	t.Run("idempotent", func(t *testing.T) {
		svc := newTestOverlayService(newStore(), 2021)

		first, err := svc.FindAppAssessmentWidgetData(ctx, 1, 50, testSelector)
		require.NoError(t, err)
		second, err := svc.FindAppAssessmentWidgetData(ctx, 1, 50, testSelector)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("invalid arguments are rejected before store access", func(t *testing.T) {
		store := newStore()
		svc := newTestOverlayService(store, 2021)

		_, err := svc.FindAppAssessmentWidgetData(ctx, 0, 50, testSelector)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = svc.FindAppAssessmentWidgetData(ctx, 1, 0, testSelector)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = svc.FindAppAssessmentWidgetData(ctx, 1, 50, models.Selector{})
		assert.ErrorIs(t, err, ErrInvalidArgument)

		assert.Zero(t, store.Calls("FindCellApplications"))
	})

	t.Run("storage failure", func(t *testing.T) {
		store := newStore()
		store.FindIDsInScopeFunc = func(ctx context.Context, candidates []int64, sel models.Selector) ([]int64, error) {
			return nil, errors.New("database connection failed")
		}
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindAppAssessmentWidgetData(ctx, 1, 50, testSelector)
		assert.ErrorIs(t, err, ErrStorageFailure)
		assert.Contains(t, err.Error(), "database connection failed")
		assert.Nil(t, data)
	})
}

func TestFindTargetAppCostWidgetData(t *testing.T) {
	ctx := context.Background()
	targetDate := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	date := func(y int, m time.Month, d int) sql.NullTime {
		return sql.NullTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
	}
	amount := func(v int64) decimal.NullDecimal {
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
	}

	costRows := map[int64]models.ApplicationCost{
		1: {ApplicationID: 1, Amount: amount(100), ActualRetirementDate: date(2021, 1, 1)},
		2: {ApplicationID: 2, Amount: amount(50)},
		3: {ApplicationID: 3},
		5: {ApplicationID: 5, Amount: amount(20), PlannedRetirementDate: date(2021, 3, 1)},
		6: {ApplicationID: 6, Amount: amount(30), ActualRetirementDate: date(2022, 1, 1), PlannedRetirementDate: date(2020, 1, 1)},
		7: {ApplicationID: 7, Amount: amount(40), ActualRetirementDate: date(2021, 6, 1)},
	}

	newStore := func(mapping map[string][]int64, scope ...int64) *mocks.MockOverlayStore {
		return &mocks.MockOverlayStore{
			FindCellApplicationsFunc: mappingOf(mapping),
			FindIDsInScopeFunc:       scopeOf(scope...),
			FindApplicationCostsFunc: func(ctx context.Context, year int, ids []int64) ([]models.ApplicationCost, error) {
				assert.Equal(t, 2021, year)
				var out []models.ApplicationCost
				for _, id := range ids {
					if row, ok := costRows[id]; ok {
						out = append(out, row)
					}
				}
				return out, nil
			},
		}
	}

	costOf := func(t *testing.T, data []TargetCostWidgetDatum, cell string) (string, string) {
		for _, d := range data {
			if d.CellExternalID == cell {
				return d.CurrentStateCost.String(), d.TargetStateCost.String()
			}
		}
		t.Fatalf("cell %s missing", cell)
		return "", ""
	}

	t.Run("retiring applications drop out of the target state", func(t *testing.T) {
		store := newStore(map[string][]int64{"C1": {1, 2}, "C2": {2}, "C3": {1, 3}}, 1, 2, 3)
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindTargetAppCostWidgetData(ctx, 1, testSelector, targetDate)
		require.NoError(t, err)
		require.Len(t, data, 3)

		current, target := costOf(t, data, "C1")
		assert.Equal(t, "150", current)
		assert.Equal(t, "50", target)

		current, target = costOf(t, data, "C2")
		assert.Equal(t, "50", current)
		assert.Equal(t, "50", target)

		current, target = costOf(t, data, "C3")
		assert.Equal(t, "100", current)
		assert.Equal(t, "0", target)
	})

	t.Run("effective retirement date", func(t *testing.T) {
		store := newStore(map[string][]int64{"planned": {5}, "actual-wins": {6}, "same-day": {7}}, 5, 6, 7)
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindTargetAppCostWidgetData(ctx, 1, testSelector, targetDate.Add(15*time.Hour))
		require.NoError(t, err)

		current, target := costOf(t, data, "planned")
		assert.Equal(t, "20", current)
		assert.Equal(t, "0", target)

		current, target = costOf(t, data, "actual-wins")
		assert.Equal(t, "30", current)
		assert.Equal(t, "30", target)

		current, target = costOf(t, data, "same-day")
		assert.Equal(t, "40", current)
		assert.Equal(t, "40", target, "retiring on the target date is not before it")
	})

	t.Run("out of scope members and cells are still emitted at zero", func(t *testing.T) {
		store := newStore(map[string][]int64{"C1": {1, 2}, "C2": {9}}, 2)
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindTargetAppCostWidgetData(ctx, 1, testSelector, targetDate)
		require.NoError(t, err)
		require.Len(t, data, 2)

		current, target := costOf(t, data, "C1")
		assert.Equal(t, "50", current)
		assert.Equal(t, "50", target)

		current, target = costOf(t, data, "C2")
		assert.Equal(t, "0", current)
		assert.Equal(t, "0", target)
	})

	t.Run("nothing in scope skips the cost query", func(t *testing.T) {
		store := newStore(map[string][]int64{"C1": {1}})
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindTargetAppCostWidgetData(ctx, 1, testSelector, targetDate)
		require.NoError(t, err)
		require.Len(t, data, 1)
		assert.Zero(t, store.Calls("FindApplicationCosts"))
	})

	t.Run("no cell mapping short circuits", func(t *testing.T) {
		store := newStore(nil)
		store.FindCellApplicationsFunc = func(ctx context.Context, diagramID int64) (map[string][]int64, bool, error) {
			return nil, false, nil
		}
		svc := newTestOverlayService(store, 2021)

		data, err := svc.FindTargetAppCostWidgetData(ctx, 1, testSelector, targetDate)
		require.NoError(t, err)
		assert.Empty(t, data)
		assert.Zero(t, store.Calls("FindIDsInScope"))
		assert.Zero(t, store.Calls("FindApplicationCosts"))
	})

	t.Run("invalid arguments", func(t *testing.T) {
		store := newStore(nil)
		svc := newTestOverlayService(store, 2021)

		_, err := svc.FindTargetAppCostWidgetData(ctx, -1, testSelector, targetDate)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = svc.FindTargetAppCostWidgetData(ctx, 1, models.Selector{}, targetDate)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = svc.FindTargetAppCostWidgetData(ctx, 1, testSelector, time.Time{})
		assert.ErrorIs(t, err, ErrInvalidArgument)

		assert.Zero(t, store.Calls("FindCellApplications"))
	})

	t.Run("storage failure", func(t *testing.T) {
		store := newStore(map[string][]int64{"C1": {1}}, 1)
		store.FindApplicationCostsFunc = func(ctx context.Context, year int, ids []int64) ([]models.ApplicationCost, error) {
			return nil, errors.New("query timeout")
		}
		svc := newTestOverlayService(store, 2021)

		_, err := svc.FindTargetAppCostWidgetData(ctx, 1, testSelector, targetDate)
		assert.ErrorIs(t, err, ErrStorageFailure)
		assert.Contains(t, err.Error(), "query timeout")
	})
}
