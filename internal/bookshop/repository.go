// internal/bookshop/repository.go
//
// sqlx queries over the `bookshop` table.
//
// The repository is deliberately thin: the interesting work (slug
// indexing, state normalization, collision detection) happens in the
// collection layer, not in SQL.  County is COALESCEd because the column
// is nullable and Record keeps it as a plain string.

package bookshop

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const selectColumns = `
        id, name, city, state,
        COALESCE(county, '')      AS county,
        COALESCE(description, '') AS description,
        COALESCE(hours, '')       AS hours,
        COALESCE(website, '')     AS website,
        COALESCE(latitude, 0)     AS latitude,
        COALESCE(longitude, 0)    AS longitude,
        deleted_at, created_at, updated_at`

// AllActive returns every bookshop that has not been soft-deleted.  The
// caller supplies a context so the query respects request deadlines.
func AllActive(ctx context.Context, db *sqlx.DB) ([]Record, error) {
	const q = `
        SELECT` + selectColumns + `
        FROM   bookshop
        WHERE  deleted_at IS NULL
        ORDER  BY id`
	var rows []Record
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// ByID fetches a single non-deleted bookshop row.
func ByID(ctx context.Context, db *sqlx.DB, id uint64) (*Record, error) {
	const q = `
        SELECT` + selectColumns + `
        FROM   bookshop
        WHERE  id = ?
          AND  deleted_at IS NULL
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		return nil, err
	}
	return &rec, nil
}
