package models

import "time"

type FlowDiagram struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	LayoutData    string    `db:"layout_data"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
