package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/godilite/overlay-server/internal/repository/models"
)

// CellMappingResolver looks up which applications sit in which cell of an
// aggregate overlay diagram.
type CellMappingResolver struct {
	store CellMappingStore
}

func NewCellMappingResolver(store CellMappingStore) *CellMappingResolver {
	if store == nil {
		panic("cell mapping store must not be nil")
	}
	return &CellMappingResolver{store: store}
}

// Resolve returns cell external id -> application ids. The boolean is false
// when the diagram has no cell mapping at all.
func (r *CellMappingResolver) Resolve(ctx context.Context, diagramID int64) (map[string][]int64, bool, error) {
	mapping, ok, err := r.store.FindCellApplications(ctx, diagramID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if !ok {
		return nil, false, nil
	}
	return mapping, true, nil
}

// ScopeIntersector restricts a cell mapping to the applications in scope.
type ScopeIntersector struct {
	store ScopeStore
}

func NewScopeIntersector(store ScopeStore) *ScopeIntersector {
	if store == nil {
		panic("scope store must not be nil")
	}
	return &ScopeIntersector{store: store}
}

// Intersect asks the store once for the mapped applications that are in
// scope, then narrows every cell against that single snapshot. Every input
// cell is kept, even when none of its members survive.
func (i *ScopeIntersector) Intersect(ctx context.Context, mapping map[string][]int64, sel models.Selector) (ScopedCellMapping, error) {
	candidates := unionIDs(mapping)

	inScope, err := i.store.FindIDsInScope(ctx, candidates, sel)
	if err != nil {
		return ScopedCellMapping{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	allowed := make(map[int64]struct{}, len(inScope))
	for _, id := range inScope {
		allowed[id] = struct{}{}
	}

	cells := make(map[string][]int64, len(mapping))
	appIDs := make([]int64, 0, len(allowed))
	seen := make(map[int64]struct{}, len(allowed))

	for cell, members := range mapping {
		scoped := make([]int64, 0, len(members))
		dup := make(map[int64]struct{}, len(members))
		for _, id := range members {
			if _, ok := allowed[id]; !ok {
				continue
			}
			if _, ok := dup[id]; ok {
				continue
			}
			dup[id] = struct{}{}
			scoped = append(scoped, id)

			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				appIDs = append(appIDs, id)
			}
		}
		cells[cell] = scoped
	}

	sort.Slice(appIDs, func(a, b int) bool { return appIDs[a] < appIDs[b] })
	return ScopedCellMapping{Cells: cells, AppIDs: appIDs}, nil
}

func unionIDs(mapping map[string][]int64) []int64 {
	set := make(map[int64]struct{})
	for _, members := range mapping {
		for _, id := range members {
			set[id] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}
