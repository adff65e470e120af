package service

import (
	"sort"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/shopspring/decimal"
)

// aggregateRatingCounts counts each cell's members per rating. Ratings nobody
// in the cell holds are omitted; a cell with no rated members gets empty counts.
func aggregateRatingCounts(scoped ScopedCellMapping, ratings map[int64]int64, items map[int64]models.RatingSchemeItem) []AssessmentRatingsWidgetDatum {
	out := make([]AssessmentRatingsWidgetDatum, 0, len(scoped.Cells))

	for cell, members := range scoped.Cells {
		tally := make(map[int64]int)
		for _, id := range members {
			ratingID, ok := ratings[id]
			if !ok {
				continue
			}
			tally[ratingID]++
		}

		counts := make([]AssessmentRatingCount, 0, len(tally))
		for ratingID, n := range tally {
			counts = append(counts, AssessmentRatingCount{Rating: items[ratingID], Count: n})
		}
		sort.Slice(counts, func(i, j int) bool {
			a, b := counts[i].Rating, counts[j].Rating
			if a.Position != b.Position {
				return a.Position < b.Position
			}
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})

		out = append(out, AssessmentRatingsWidgetDatum{CellExternalID: cell, Counts: counts})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CellExternalID < out[j].CellExternalID })
	return out
}

// aggregateCosts sums current and target state cost over each cell's members.
func aggregateCosts(scoped ScopedCellMapping, costs map[int64]CostIndicator) []TargetCostWidgetDatum {
	out := make([]TargetCostWidgetDatum, 0, len(scoped.Cells))

	for cell, members := range scoped.Cells {
		current := decimal.Zero
		target := decimal.Zero
		for _, id := range members {
			c, ok := costs[id]
			if !ok {
				c = zeroCost
			}
			current = current.Add(c.Current)
			target = target.Add(c.Target)
		}

		out = append(out, TargetCostWidgetDatum{
			CellExternalID:   cell,
			CurrentStateCost: current,
			TargetStateCost:  target,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CellExternalID < out[j].CellExternalID })
	return out
}
