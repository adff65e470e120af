package repository

import (
	"context"
	"fmt"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/jmoiron/sqlx"
)

type OverlayRepository struct {
	db *sqlx.DB
}

func NewOverlayRepository(db *sqlx.DB) *OverlayRepository {
	return &OverlayRepository{db: db}
}

// FindCellApplications resolves every cell of a diagram to the applications
// backing it. Cells may be backed directly by applications, by measurables
// (any application rated against the measurable or one of its descendants) or
// by application groups. The boolean is false when the diagram has no cell
// data at all; cells with data but no applications map to an empty slice.
func (r *OverlayRepository) FindCellApplications(ctx context.Context, diagramID int64) (map[string][]int64, bool, error) {
	const cellsQuery = `
		SELECT DISTINCT cell_external_id
		FROM aggregate_overlay_diagram_cell_data
		WHERE diagram_id = ?
	`

	var cells []string
	if err := r.db.SelectContext(ctx, &cells, r.db.Rebind(cellsQuery), diagramID); err != nil {
		return nil, false, fmt.Errorf("query FindCellApplications cells: %w", err)
	}
	if len(cells) == 0 {
		return nil, false, nil
	}

	const query = `
		SELECT cd.cell_external_id, cd.related_entity_id AS application_id
		FROM aggregate_overlay_diagram_cell_data AS cd
		WHERE cd.diagram_id = ? AND cd.related_entity_kind = ?
		UNION
		SELECT cd.cell_external_id, mr.entity_id AS application_id
		FROM aggregate_overlay_diagram_cell_data AS cd
		JOIN measurable_rating AS mr ON mr.measurable_id = cd.related_entity_id AND mr.entity_kind = ?
		WHERE cd.diagram_id = ? AND cd.related_entity_kind = ?
		UNION
		SELECT cd.cell_external_id, mr.entity_id AS application_id
		FROM aggregate_overlay_diagram_cell_data AS cd
		JOIN entity_hierarchy AS eh ON eh.ancestor_id = cd.related_entity_id AND eh.kind = ?
		JOIN measurable_rating AS mr ON mr.measurable_id = eh.id AND mr.entity_kind = ?
		WHERE cd.diagram_id = ? AND cd.related_entity_kind = ?
		UNION
		SELECT cd.cell_external_id, age.application_id
		FROM aggregate_overlay_diagram_cell_data AS cd
		JOIN application_group_entry AS age ON age.group_id = cd.related_entity_id
		WHERE cd.diagram_id = ? AND cd.related_entity_kind = ?
	`

	app := models.EntityKindApplication
	measurable := models.EntityKindMeasurable

	var pairs []models.CellApplication
	err := r.db.SelectContext(ctx, &pairs, r.db.Rebind(query),
		diagramID, app,
		app, diagramID, measurable,
		measurable, app, diagramID, measurable,
		diagramID, models.EntityKindAppGroup,
	)
	if err != nil {
		return nil, false, fmt.Errorf("query FindCellApplications: %w", err)
	}

	result := make(map[string][]int64, len(cells))
	for _, c := range cells {
		result[c] = []int64{}
	}
	for _, p := range pairs {
		result[p.CellExternalID] = append(result[p.CellExternalID], p.ApplicationID)
	}
	return result, true, nil
}
