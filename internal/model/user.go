package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The password column holds a bcrypt
// digest and is never serialized. There is no role column: a user is the
// administrator iff their email matches the configured developer email.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
