package roster

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("doctor not found")
	ErrDuplicate = errors.New("doctor id already exists")
)

// Repository stores doctors. List returns them in a stable order; the
// assignment engine breaks workload ties by that order.
type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id string) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)
}
