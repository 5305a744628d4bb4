package shift

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Shift, error)
}
