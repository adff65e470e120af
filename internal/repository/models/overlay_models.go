package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type RatingSchemeItem struct {
	ID             int64  `db:"id" json:"id" yaml:"id"`
	RatingSchemeID int64  `db:"scheme_id" json:"ratingSchemeId" yaml:"ratingSchemeId"`
	Name           string `db:"name" json:"name" yaml:"name"`
	Code           string `db:"code" json:"code" yaml:"code"`
	Color          string `db:"color" json:"color" yaml:"color"`
	Description    string `db:"description" json:"description" yaml:"description"`
	Position       int    `db:"position" json:"position" yaml:"position"`
	UserSelectable bool   `db:"user_selectable" json:"userSelectable" yaml:"userSelectable"`
}

// CellApplication is one (cell, application) pair of an overlay diagram.
type CellApplication struct {
	CellExternalID string `db:"cell_external_id"`
	ApplicationID  int64  `db:"application_id"`
}

type EntityRating struct {
	EntityID int64 `db:"entity_id"`
	RatingID int64 `db:"rating_id"`
}

// ApplicationCost is an application joined against its default-kind cost for
// a year. Amount is null when no cost row exists.
type ApplicationCost struct {
	ApplicationID         int64               `db:"id"`
	Amount                decimal.NullDecimal `db:"amount"`
	ActualRetirementDate  sql.NullTime        `db:"actual_retirement_date"`
	PlannedRetirementDate sql.NullTime        `db:"planned_retirement_date"`
}

type Cost struct {
	EntityID   int64           `db:"entity_id" yaml:"entityId"`
	EntityKind EntityKind      `db:"entity_kind" yaml:"entityKind"`
	CostKindID int64           `db:"cost_kind_id" yaml:"costKindId"`
	Year       int             `db:"year" yaml:"year"`
	Amount     decimal.Decimal `db:"amount" yaml:"amount"`
	Provenance string          `db:"provenance" yaml:"provenance"`
}
