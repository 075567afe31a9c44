// Package store holds the server-side persistence contract for the reference
// todo collection.
package store

import (
	"context"
	"errors"

	"github.com/idilsaglam/tada/internal/model"
)

var ErrNotFound = errors.New("todo not found")

// Store is the persistence behind the collection endpoint.
// Create assigns the id; Update replaces title, description and completed.
type Store interface {
	List(ctx context.Context) ([]model.Todo, error)
	Get(ctx context.Context, id int64) (model.Todo, error)
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	Update(ctx context.Context, id int64, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}

// Kinds accepted by config and the serve command.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)
