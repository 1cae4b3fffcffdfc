package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile shares its id with the owning user.
type Profile struct {
	ID        uuid.UUID `db:"id"`
	FirstName *string   `db:"first_name"`
	LastName  *string   `db:"last_name"`
	Phone     *string   `db:"phone"`
	AvatarURL *string   `db:"avatar_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
