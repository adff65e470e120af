package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// selectIn expands slice arguments into `IN (?, ?, ...)` lists, rebinds the
// placeholders for the driver and scans every row into dest.
func selectIn(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return fmt.Errorf("expand query: %w", err)
	}
	return db.SelectContext(ctx, dest, db.Rebind(expanded), expandedArgs...)
}
