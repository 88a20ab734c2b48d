package visit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no visit exists for the requested id.
var ErrNotFound = errors.New("visit not found")

// Repository is the storage contract for visits. Implementations assign
// the id and timestamps on Create and preserve line-item order.
type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*Visit, error)
	// List returns visits in reverse chronological order of creation.
	// limit <= 0 means no limit.
	List(ctx context.Context, limit, offset int) ([]*Visit, int, error)
	// ListByDate returns visits whose date falls inside [start, end], or
	// [start, end) when endExclusive is set, newest first.
	ListByDate(ctx context.Context, start, end time.Time, endExclusive bool) ([]*Visit, error)
	Update(ctx context.Context, v *Visit) error
	Delete(ctx context.Context, id uuid.UUID) error
}
