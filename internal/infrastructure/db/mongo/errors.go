package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// storeErr classifies a driver error. ErrNoDocuments becomes notFound, anything
// else is reported as the store being unavailable.
func storeErr(op string, err error, notFound error) error {
	if errors.Is(err, mongo.ErrNoDocuments) && notFound != nil {
		return notFound
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// objectID parses a hex id. Only the canonical lowercase form is accepted, so
// every id that resolves to a document compares equal to the one the store
// hands out. Anything else is reported with the caller's not-found error.
func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil || oid.Hex() != id {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}
