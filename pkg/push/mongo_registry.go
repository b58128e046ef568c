package push

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const registrationsCollection = "push_tokens"

// MongoRegistry persists registrations in the application document store.
// Upserts are keyed by (user, token) so re-registering the same device is
// a refresh, not a duplicate.
type MongoRegistry struct {
	coll *mongo.Collection
}

// NewMongoRegistry creates a registry on the given database.
func NewMongoRegistry(db *mongo.Database) *MongoRegistry {
	return &MongoRegistry{
		coll: db.Collection(registrationsCollection),
	}
}

// Register upserts the registration.
func (r *MongoRegistry) Register(ctx context.Context, reg Registration) error {
	if reg.Token == "" {
		return errors.New("push.empty_token")
	}

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"user_id": reg.UserID.String(), "token": reg.Token},
		bson.M{
			"user_id":  reg.UserID.String(),
			"role":     string(reg.Role),
			"token":    reg.Token,
			"platform": reg.Platform,
		},
		options.Replace().SetUpsert(true),
	)
	return err
}

var _ Registry = (*MongoRegistry)(nil)
