package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/jmoiron/sqlx"
)

type FlowDiagramRepository struct {
	db *sqlx.DB
}

func NewFlowDiagramRepository(db *sqlx.DB) *FlowDiagramRepository {
	return &FlowDiagramRepository{db: db}
}

const flowDiagramColumns = `fd.id, fd.name, fd.description, fd.layout_data, fd.last_updated_at, fd.last_updated_by`

// GetByID returns the diagram, or false when it does not exist.
func (r *FlowDiagramRepository) GetByID(ctx context.Context, id int64) (models.FlowDiagram, bool, error) {
	query := `SELECT ` + flowDiagramColumns + ` FROM flow_diagram AS fd WHERE fd.id = ?`

	var fd models.FlowDiagram
	err := r.db.GetContext(ctx, &fd, r.db.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FlowDiagram{}, false, nil
		}
		return models.FlowDiagram{}, false, fmt.Errorf("query GetByID: %w", err)
	}
	return fd, true, nil
}

// FindByEntityReference returns the diagrams the entity appears on.
func (r *FlowDiagramRepository) FindByEntityReference(ctx context.Context, ref models.EntityReference) ([]models.FlowDiagram, error) {
	query := `
		SELECT DISTINCT ` + flowDiagramColumns + `
		FROM flow_diagram AS fd
		JOIN flow_diagram_entity AS fde ON fde.diagram_id = fd.id
		WHERE fde.entity_id = ? AND fde.entity_kind = ?
		ORDER BY fd.name, fd.id
	`

	diagrams := []models.FlowDiagram{}
	if err := r.db.SelectContext(ctx, &diagrams, r.db.Rebind(query), ref.ID, ref.Kind); err != nil {
		return nil, fmt.Errorf("query FindByEntityReference: %w", err)
	}
	return diagrams, nil
}

// Create inserts the diagram and returns its generated id.
func (r *FlowDiagramRepository) Create(ctx context.Context, fd models.FlowDiagram) (int64, error) {
	const query = `
		INSERT INTO flow_diagram (name, description, layout_data, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		fd.Name, fd.Description, fd.LayoutData, fd.LastUpdatedAt.UTC(), fd.LastUpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("exec Create: %w", err)
	}
	return id, nil
}

// Update overwrites the stored diagram, reporting whether exactly one row changed.
func (r *FlowDiagramRepository) Update(ctx context.Context, fd models.FlowDiagram) (bool, error) {
	const query = `
		UPDATE flow_diagram
		SET name = ?, description = ?, layout_data = ?, last_updated_at = ?, last_updated_by = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		fd.Name, fd.Description, fd.LayoutData, fd.LastUpdatedAt.UTC(), fd.LastUpdatedBy, fd.ID,
	)
	if err != nil {
		return false, fmt.Errorf("exec Update: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected Update: %w", err)
	}
	return n == 1, nil
}

// AddEntity links an entity to a diagram. Linking twice is a no-op.
func (r *FlowDiagramRepository) AddEntity(ctx context.Context, diagramID int64, ref models.EntityReference) error {
	const query = `
		INSERT INTO flow_diagram_entity (diagram_id, entity_kind, entity_id)
		VALUES (?, ?, ?)
		ON CONFLICT (diagram_id, entity_kind, entity_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), diagramID, ref.Kind, ref.ID); err != nil {
		return fmt.Errorf("exec AddEntity: %w", err)
	}
	return nil
}
