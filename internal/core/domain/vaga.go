package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidVaga   = errors.New("invalid vaga")
	ErrDuplicateVaga = errors.New("vaga already exists")
)

// Vaga is a parking spot. ID is assigned by the repository on create and never
// changes afterwards.
type Vaga struct {
	ID        int64
	Number    int
	Floor     int
	Occupied  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v Vaga) Validate() error {
	if v.Number < 1 {
		return fmt.Errorf("%w: number must be greater than zero", ErrInvalidVaga)
	}
	return nil
}

// ValidID reports whether id can refer to a stored vaga.
func ValidID(id int64) bool {
	return id > 0
}
