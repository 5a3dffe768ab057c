package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an instructor account. Students never register; they join sessions
// anonymously with an access code.
type User struct {
	ID           uuid.UUID `json:"_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the authenticated identity the transport layer hands to
// mutating operations. Services trust it without re-checking credentials.
type Principal struct {
	ID       uuid.UUID
	Username string
}
