package crypto

import "github.com/google/uuid"

// IDGenerator mints primary keys for new records.
type IDGenerator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func (g *UUIDGenerator) NewID() (string, error) {
	return uuid.NewString(), nil
}
