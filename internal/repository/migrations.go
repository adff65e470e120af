package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// schema is applied in order. {{pk}} expands to the driver's auto-increment
// primary key column type and {{money}} to its exact decimal column type.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS application (
		id {{pk}},
		name TEXT NOT NULL,
		asset_code TEXT,
		organisational_unit_id BIGINT,
		is_removed BOOLEAN NOT NULL DEFAULT FALSE,
		actual_retirement_date DATE,
		planned_retirement_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS entity_hierarchy (
		id BIGINT NOT NULL,
		ancestor_id BIGINT NOT NULL,
		kind TEXT NOT NULL,
		level INTEGER NOT NULL,
		PRIMARY KEY (id, ancestor_id, kind)
	)`,
	`CREATE TABLE IF NOT EXISTS measurable_rating (
		entity_id BIGINT NOT NULL,
		entity_kind TEXT NOT NULL,
		measurable_id BIGINT NOT NULL,
		rating TEXT,
		PRIMARY KEY (entity_id, entity_kind, measurable_id)
	)`,
	`CREATE TABLE IF NOT EXISTS application_group_entry (
		group_id BIGINT NOT NULL,
		application_id BIGINT NOT NULL,
		PRIMARY KEY (group_id, application_id)
	)`,
	`CREATE TABLE IF NOT EXISTS aggregate_overlay_diagram (
		id {{pk}},
		name TEXT NOT NULL,
		description TEXT,
		svg TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS aggregate_overlay_diagram_cell_data (
		diagram_id BIGINT NOT NULL,
		cell_external_id TEXT NOT NULL,
		related_entity_kind TEXT NOT NULL,
		related_entity_id BIGINT NOT NULL,
		PRIMARY KEY (diagram_id, cell_external_id, related_entity_kind, related_entity_id)
	)`,
	`CREATE TABLE IF NOT EXISTS assessment_definition (
		id {{pk}},
		name TEXT NOT NULL,
		rating_scheme_id BIGINT NOT NULL,
		entity_kind TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rating_scheme_item (
		id {{pk}},
		scheme_id BIGINT NOT NULL,
		name TEXT NOT NULL,
		code TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		user_selectable BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS assessment_rating (
		entity_id BIGINT NOT NULL,
		entity_kind TEXT NOT NULL,
		assessment_definition_id BIGINT NOT NULL,
		rating_id BIGINT NOT NULL,
		PRIMARY KEY (entity_id, entity_kind, assessment_definition_id)
	)`,
	`CREATE TABLE IF NOT EXISTS cost_kind (
		id {{pk}},
		name TEXT NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS cost (
		entity_id BIGINT NOT NULL,
		entity_kind TEXT NOT NULL,
		cost_kind_id BIGINT NOT NULL,
		year INTEGER NOT NULL,
		amount {{money}} NOT NULL,
		provenance TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (entity_id, entity_kind, cost_kind_id, year)
	)`,
	`CREATE TABLE IF NOT EXISTS flow_diagram (
		id {{pk}},
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		layout_data TEXT NOT NULL DEFAULT '',
		last_updated_at TIMESTAMP NOT NULL,
		last_updated_by TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS flow_diagram_entity (
		diagram_id BIGINT NOT NULL,
		entity_kind TEXT NOT NULL,
		entity_id BIGINT NOT NULL,
		PRIMARY KEY (diagram_id, entity_kind, entity_id)
	)`,
	`CREATE TABLE IF NOT EXISTS job_log (
		id {{pk}},
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		entity_kind TEXT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP
	)`,
}

func primaryKeyType(driver string) string {
	if driver == "postgres" {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// moneyType is the column type of decimal amounts. sqlite's NUMERIC affinity
// would store decimal text as REAL, so amounts are kept as text there.
func moneyType(driver string) string {
	if driver == "postgres" {
		return "NUMERIC"
	}
	return "TEXT"
}

// Migrate creates every table the service reads or writes. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	placeholders := strings.NewReplacer(
		"{{pk}}", primaryKeyType(db.DriverName()),
		"{{money}}", moneyType(db.DriverName()),
	)
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, placeholders.Replace(stmt)); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	return nil
}
