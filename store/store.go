package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
var ErrNotFound = errors.New("store: no matching document")

// Collection is the slice of document-database capability the controllers
// need: insert, single lookup, filtered listing, partial update, count and
// distinct values.
type Collection interface {
	InsertOne(ctx context.Context, doc interface{}) (interface{}, error)
	FindOne(ctx context.Context, filter interface{}, out interface{}) error
	Find(ctx context.Context, filter interface{}, out interface{}, opts ...*options.FindOptions) error
	UpdateOne(ctx context.Context, filter, update interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, field string, filter interface{}) ([]interface{}, error)
}

// Store hands out named collections.
type Store interface {
	Collection(name string) Collection
}
