package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is the row header of every mutable table.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BaseSimple is the row header of append-only tables.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// NewBase assigns a fresh id and stamps both timestamps with now.
func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func NewBaseSimple(now time.Time) BaseSimple {
	return BaseSimple{ID: uuid.New(), CreatedAt: now}
}

// Touch marks the row as modified at now.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}
