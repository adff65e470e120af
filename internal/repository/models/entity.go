package models

import "fmt"

type EntityKind string

const (
	EntityKindApplication EntityKind = "APPLICATION"
	EntityKindMeasurable  EntityKind = "MEASURABLE"
	EntityKindAppGroup    EntityKind = "APP_GROUP"
	EntityKindOrgUnit     EntityKind = "ORG_UNIT"
	EntityKindFlowDiagram EntityKind = "FLOW_DIAGRAM"
	EntityKindCostKind    EntityKind = "COST_KIND"
	EntityKindAll         EntityKind = "ALL"
)

type EntityReference struct {
	Kind EntityKind `json:"kind" yaml:"kind"`
	ID   int64      `json:"id" yaml:"id"`
}

func (r EntityReference) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// HierarchyScope controls whether a selection includes descendants of the
// referenced entity.
type HierarchyScope string

const (
	ScopeExact    HierarchyScope = "EXACT"
	ScopeChildren HierarchyScope = "CHILDREN"
)

// IdSelectionOptions describes which applications are in scope for a request.
// When ApplicationIDs is non-nil it takes precedence over Entity.
type IdSelectionOptions struct {
	Entity         EntityReference
	Scope          HierarchyScope
	ApplicationIDs []int64
}

// Selector is a parameterised SQL subquery yielding a single column of
// entity ids. Query uses `?` placeholders; slice arguments are expanded.
type Selector struct {
	Query string
	Args  []any
}

func (s Selector) IsZero() bool {
	return s.Query == ""
}
