package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned by ParseID for anything that is not a well-formed
// document id.
var ErrInvalidID = errors.New("invalid document id")

// Document is a schemaless record as stored in a collection. Field names and
// types are enforced at the validation boundary, not here.
type Document struct {
	ID        primitive.ObjectID
	Fields    map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseID validates a client-supplied id string and converts it to the native
// id form (a 24-character hex ObjectID). It never touches the store.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// Store is a thin collection-scoped gateway over a document store.
//
// FindOne reports a missing document as (nil, nil); an error always means the
// store itself failed. UpdatePartial merges only the given fields ($set
// semantics) and bumps updatedAt; it never creates a document. The matched and
// deleted counts are 0 or 1.
type Store interface {
	Insert(ctx context.Context, collection string, fields map[string]interface{}) (primitive.ObjectID, error)
	FindOne(ctx context.Context, collection string, id primitive.ObjectID) (*Document, error)
	FindAll(ctx context.Context, collection string) ([]Document, error)
	UpdatePartial(ctx context.Context, collection string, id primitive.ObjectID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, collection string, id primitive.ObjectID) (int64, error)
}
