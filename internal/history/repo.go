package history

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Repo defines persistence operations for shared records.
type Repo interface {
	Create(ctx context.Context, record SharedRecord) error
	GetByID(ctx context.Context, recordID string) (SharedRecord, error)
	Delete(ctx context.Context, recordID string) error
	ListViewable(ctx context.Context, viewerID string) ([]SharedRecord, error)
	ListPublicSince(ctx context.Context, since time.Time) ([]SharedRecord, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]SharedRecord, error)
	IncrementLikes(ctx context.Context, recordID string) (int, error)
	IncrementSaves(ctx context.Context, recordID string) (int, error)
}
