package notes

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, note *Note) (*Note, error)
	Edit(ctx context.Context, id string, text string, x, y float64, user UserRef) error
	Move(ctx context.Context, id string, x, y float64) error
	Delete(ctx context.Context, id string) error
	ListByBoard(ctx context.Context, boardID string) ([]*Note, error)
}
