package domain

import (
	"time"

	userdomain "github.com/rakhimovb/staylist/internal/user/domain"
)

type ID string

// Item is a user-owned record. Every query is scoped by OwnerID so one
// account can never see or touch another account's items.
type Item struct {
	ID          ID
	OwnerID     userdomain.ID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
