package entity

import (
	"github.com/google/uuid"
)

type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`

	// Rating is the average review score, nil while the title has no
	// reviews. Populated by the aggregate query, not a stored column.
	Rating *float64 `db:"rating"`
}
