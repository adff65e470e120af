package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/jmoiron/sqlx"
)

var ErrUnsupportedSelection = errors.New("unsupported selection")

type ApplicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// FindIDsInScope narrows candidates to the ids the selector also yields.
func (r *ApplicationRepository) FindIDsInScope(ctx context.Context, candidates []int64, sel models.Selector) ([]int64, error) {
	if sel.IsZero() {
		return nil, fmt.Errorf("query FindIDsInScope: empty selector")
	}
	if len(candidates) == 0 {
		return []int64{}, nil
	}

	query := `
		SELECT a.id
		FROM application AS a
		WHERE a.id IN (?)
		AND a.id IN (` + sel.Query + `)
	`
	args := append([]any{candidates}, sel.Args...)

	ids := []int64{}
	if err := selectIn(ctx, r.db, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("query FindIDsInScope: %w", err)
	}
	return ids, nil
}

// ApplicationSelector builds the in-scope application selector for the given
// options. Removed applications are never selected.
func ApplicationSelector(opts models.IdSelectionOptions) (models.Selector, error) {
	const base = `SELECT sa.id FROM application AS sa WHERE sa.is_removed = ?`

	if opts.ApplicationIDs != nil {
		if len(opts.ApplicationIDs) == 0 {
			return models.Selector{Query: base + ` AND 1 = 0`, Args: []any{false}}, nil
		}
		ids := append([]int64(nil), opts.ApplicationIDs...)
		return models.Selector{Query: base + ` AND sa.id IN (?)`, Args: []any{false, ids}}, nil
	}

	ref := opts.Entity
	switch ref.Kind {
	case models.EntityKindAll:
		return models.Selector{Query: base, Args: []any{false}}, nil

	case models.EntityKindApplication:
		return models.Selector{Query: base + ` AND sa.id = ?`, Args: []any{false, ref.ID}}, nil

	case models.EntityKindOrgUnit:
		if opts.Scope == models.ScopeChildren {
			return models.Selector{
				Query: base + ` AND sa.organisational_unit_id IN (
					SELECT seh.id FROM entity_hierarchy AS seh WHERE seh.ancestor_id = ? AND seh.kind = ?
				)`,
				Args: []any{false, ref.ID, models.EntityKindOrgUnit},
			}, nil
		}
		return models.Selector{Query: base + ` AND sa.organisational_unit_id = ?`, Args: []any{false, ref.ID}}, nil

	case models.EntityKindMeasurable:
		if opts.Scope == models.ScopeChildren {
			return models.Selector{
				Query: base + ` AND sa.id IN (
					SELECT smr.entity_id FROM measurable_rating AS smr
					INNER JOIN entity_hierarchy AS seh ON seh.id = smr.measurable_id AND seh.kind = ?
					WHERE smr.entity_kind = ? AND seh.ancestor_id = ?
				)`,
				Args: []any{false, models.EntityKindMeasurable, models.EntityKindApplication, ref.ID},
			}, nil
		}
		return models.Selector{
			Query: base + ` AND sa.id IN (
				SELECT smr.entity_id FROM measurable_rating AS smr WHERE smr.entity_kind = ? AND smr.measurable_id = ?
			)`,
			Args: []any{false, models.EntityKindApplication, ref.ID},
		}, nil

	case models.EntityKindAppGroup:
		return models.Selector{
			Query: base + ` AND sa.id IN (
				SELECT sage.application_id FROM application_group_entry AS sage WHERE sage.group_id = ?
			)`,
			Args: []any{false, ref.ID},
		}, nil
	}

	return models.Selector{}, fmt.Errorf("%w: %s", ErrUnsupportedSelection, ref)
}
