package domain

import "time"

type ID string

// User is an account record. Token is the opaque bearer token minted at
// signup/login and cleared at logout; nil means no active session. A non-nil
// token identifies exactly one user.
type User struct {
	ID           ID
	Email        string
	PasswordHash string
	Token        *string
	CreatedAt    time.Time
}
