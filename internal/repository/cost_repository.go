package repository

import (
	"context"
	"fmt"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/jmoiron/sqlx"
)

type CostRepository struct {
	db *sqlx.DB
}

func NewCostRepository(db *sqlx.DB) *CostRepository {
	return &CostRepository{db: db}
}

// FindApplicationCosts returns one row per existing application in ids, left
// joined to its default cost kind amount for the year.
func (r *CostRepository) FindApplicationCosts(ctx context.Context, year int, applicationIDs []int64) ([]models.ApplicationCost, error) {
	if len(applicationIDs) == 0 {
		return []models.ApplicationCost{}, nil
	}

	const query = `
		SELECT
			a.id,
			c.amount,
			a.actual_retirement_date,
			a.planned_retirement_date
		FROM application AS a
		LEFT JOIN cost AS c
			ON c.entity_id = a.id
			AND c.entity_kind = ?
			AND c.year = ?
			AND c.cost_kind_id IN (SELECT ck.id FROM cost_kind AS ck WHERE ck.is_default = ?)
		WHERE a.id IN (?)
	`

	rows := []models.ApplicationCost{}
	if err := selectIn(ctx, r.db, &rows, query, models.EntityKindApplication, year, true, applicationIDs); err != nil {
		return nil, fmt.Errorf("query FindApplicationCosts: %w", err)
	}
	return rows, nil
}

// UpsertCosts writes every cost in a single transaction, replacing the amount
// of rows that already exist for the same entity, cost kind and year.
func (r *CostRepository) UpsertCosts(ctx context.Context, costs []models.Cost) (int, error) {
	const query = `
		INSERT INTO cost (entity_id, entity_kind, cost_kind_id, year, amount, provenance)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_id, entity_kind, cost_kind_id, year)
		DO UPDATE SET amount = excluded.amount, provenance = excluded.provenance
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin UpsertCosts: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(query))
	if err != nil {
		return 0, fmt.Errorf("prepare UpsertCosts: %w", err)
	}
	defer stmt.Close()

	for _, c := range costs {
		// amounts travel as text; see moneyType for how each driver stores them
		if _, err := stmt.ExecContext(ctx, c.EntityID, c.EntityKind, c.CostKindID, c.Year, c.Amount.String(), c.Provenance); err != nil {
			return 0, fmt.Errorf("exec UpsertCosts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit UpsertCosts: %w", err)
	}
	return len(costs), nil
}
