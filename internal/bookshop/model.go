// internal/bookshop/model.go
//
// The bookshop entity record.
//
// Context
// -------
// Record mirrors one row in the persistent `bookshop` table.  Fields that
// matter to URL resolution are ID, Name, City, State, and County; the
// rest are descriptive and ride along for page rendering.  Upstream data
// quality is uneven: State is sometimes a two-letter code and sometimes a
// full name, and County is free text that may or may not carry a
// trailing "County".  Resolution code must never assume either field is
// clean.

package bookshop

import (
	"strings"
	"time"

	"github.com/indiebookshop/directory/internal/geo"
)

// Record is immutable once loaded into the collection.  Handlers and the
// resolver treat it as read-only.
type Record struct {
	ID          uint64     `db:"id"`
	Name        string     `db:"name"`
	City        string     `db:"city"`
	State       string     `db:"state"`  // "OR" or "Oregon", inconsistent upstream
	County      string     `db:"county"` // optional, free text
	Description string     `db:"description"`
	Hours       string     `db:"hours"`
	Website     string     `db:"website"`
	Latitude    float64    `db:"latitude"`
	Longitude   float64    `db:"longitude"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// StateCode returns the two-letter code for the record's state when the
// stored value is a recognized full name, otherwise the stored value
// uppercased.  This is the single ingestion-time normalization point for
// the mixed-representation problem; the resolver still carries its own
// defensive dual check for records that bypass the collection.
func (r Record) StateCode() string {
	if code, ok := geo.Abbreviation(r.State); ok {
		return code
	}
	return strings.ToUpper(strings.TrimSpace(r.State))
}
